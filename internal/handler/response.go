package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
)

func (h *Handler) HelloWorld(w http.ResponseWriter, r *http.Request) {
	h.plainText(w, http.StatusOK, "Hello world!")
}

// HandleShiftResponse 处理候选人点击邮件里的接受 / 拒绝链接
// 校验参数和当前状态后把结果落到文档库里，整个过程保证幂等
func (h *Handler) HandleShiftResponse(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ShiftID  string `validate:"required"`
		UserID   string `validate:"required"`
		Response string `validate:"required,oneof=accept decline"`
	}{
		ShiftID:  r.URL.Query().Get("shift_id"),
		UserID:   r.URL.Query().Get("user_id"),
		Response: r.URL.Query().Get("response"),
	}

	// 参数不合法时直接返回，完全不碰文档库
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.store.GetShift(r.Context(), req.ShiftID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.plainText(w, http.StatusNotFound, "班次不存在")
		case errors.Is(err, store.ErrEmptyDocument):
			h.plainText(w, http.StatusForbidden, "班次文档中没有数据")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	employee, err := h.store.GetEmployee(r.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.plainText(w, http.StatusNotFound, "员工不存在")
		case errors.Is(err, store.ErrEmptyDocument):
			h.plainText(w, http.StatusForbidden, "员工文档中没有数据")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 已招满的班次不允许再接受或拒绝
	if shift.EffectiveStatus() == domain.ShiftStatusFilled {
		h.plainText(w, http.StatusConflict, "班次已经招满")
		return
	}

	if domain.ShiftResponse(req.Response) == domain.ShiftResponseAccept {
		// 文档库的集合语义保证重复接受不会追加重复的记录
		if err := h.store.AppendAcceptedUser(r.Context(), req.ShiftID, employee.Profile); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.plainText(w, http.StatusOK, fmt.Sprintf("%s 已接受该班次，感谢确认", employee.Profile.FullName))
		return
	}

	// 拒绝不改动任何文档，只做确认
	h.plainText(w, http.StatusOK, fmt.Sprintf("%s 已拒绝该班次，感谢确认", employee.Profile.FullName))
}
