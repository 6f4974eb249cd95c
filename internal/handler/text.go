package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

// plainText 响应体按要求是纯文本，没有结构化的格式
func (h *Handler) plainText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintln(w, msg)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.plainText(w, http.StatusBadRequest, err.Error())
		return
	}

	h.plainText(w, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

// internalServerError 具体原因只进日志，响应里只给一句笼统的提示
func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.plainText(w, http.StatusInternalServerError, "服务器内部错误")
}
