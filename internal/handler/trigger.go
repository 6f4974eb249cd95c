package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
)

// HandleShiftCreated 接收文档创建事件并执行候选人挑选流程
// 派发器不消费返回值，这里的响应正文只是给人看的
func (h *Handler) HandleShiftCreated(w http.ResponseWriter, r *http.Request) {
	event := &domain.ShiftCreatedEvent{}
	if err := json.NewDecoder(r.Body).Decode(event); err != nil {
		// 空请求体和 null 文档一样按无操作处理
		if !errors.Is(err, io.EOF) {
			h.plainText(w, http.StatusBadRequest, "无法解析事件")
			return
		}
	}

	result, err := h.selection.OnShiftCreated(r.Context(), event)
	if err != nil {
		// 文档库读取失败，流程已经干净地终止，不需要派发器做任何事
		slog.Error("候选人挑选流程执行失败", "shiftID", event.ID, "error", err)
		h.plainText(w, http.StatusOK, "事件已收到，但流程执行失败，详见日志")
		return
	}

	slog.Info("候选人挑选流程已完成",
		"shiftID", result.ShiftID,
		"poolSize", result.PoolSize,
		"selected", result.Selected,
		"skipped", result.Skipped,
		"notified", result.NotifiedCount(),
	)

	h.plainText(w, http.StatusOK, fmt.Sprintf("事件已处理，发出 %d 条通知", result.NotifiedCount()))
}
