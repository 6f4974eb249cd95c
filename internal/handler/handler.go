package handler

import (
	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
	"github.com/dailyshift-dev/shift-notify/backend/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	store      store.Store
	selection  *workflow.Selection
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, st store.Store, selection *workflow.Selection) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		store:      st,
		selection:  selection,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/", h.HelloWorld)

	// 邮件里的接受 / 拒绝链接指向这里，只允许 GET，其他方法 chi 会回 405
	h.Mux.Get("/shift-response", h.HandleShiftResponse)

	// 文档库的创建事件由外部派发器 POST 过来
	h.Mux.Post("/triggers/shift-created", h.HandleShiftCreated)
}
