package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
	"github.com/dailyshift-dev/shift-notify/backend/internal/workflow"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Selection.CandidatePoolSize = 5
	cfg.Selection.SelectCount = 3
	cfg.Selection.CallbackBaseURL = "https://dailyshift.example.com"
	return cfg
}

func newTestHandler(t testing.TB, st store.Store) *Handler {
	t.Helper()

	cfg := testConfig()
	ranker := &MockRanker{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			return "[0,1,2]", nil
		},
	}
	m := &MockMailer{
		SendFunc: func(ctx context.Context, msg *domain.MailMessage) error {
			return nil
		},
	}
	selection := workflow.NewSelection(cfg, st, ranker, m, nil)

	h, err := NewHandler(cfg, st, selection)
	if err != nil {
		t.Fatalf("无法创建 handler: %v", err)
	}
	h.RegisterRoutes()

	return h
}

func doShiftResponse(h *Handler, params url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/shift-response?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func responseParams(shiftID string, userID string, response string) url.Values {
	params := url.Values{}
	if shiftID != "" {
		params.Set("shift_id", shiftID)
	}
	if userID != "" {
		params.Set("user_id", userID)
	}
	if response != "" {
		params.Set("response", response)
	}
	return params
}

func TestShiftResponse_MissingParams(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			t.Error("参数不合法时不应该访问文档库")
			return nil, store.ErrNotFound
		},
	}
	h := newTestHandler(t, st)

	cases := []url.Values{
		responseParams("", "user-1", "accept"),
		responseParams("shift-1", "", "accept"),
		responseParams("shift-1", "user-1", ""),
		{},
	}
	for _, params := range cases {
		rec := doShiftResponse(h, params)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("参数 %v 应该返回 400，实际 %d", params, rec.Code)
		}
	}
}

func TestShiftResponse_InvalidResponseValue(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			t.Error("参数不合法时不应该访问文档库")
			return nil, store.ErrNotFound
		},
	}
	h := newTestHandler(t, st)

	for _, value := range []string{"maybe", "ACCEPT", "yes"} {
		rec := doShiftResponse(h, responseParams("shift-1", "user-1", value))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("response=%s 应该返回 400，实际 %d", value, rec.Code)
		}
	}
}

func TestShiftResponse_ShiftNotFound(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return nil, store.ErrNotFound
		},
		GetEmployeeFunc: func(ctx context.Context, id string) (*domain.Employee, error) {
			t.Error("班次不存在时不应该再查员工")
			return nil, store.ErrNotFound
		},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("missing", "user-1", "accept"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("应该返回 404，实际 %d", rec.Code)
	}
}

func TestShiftResponse_EmployeeNotFound(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return &domain.Shift{ID: id}, nil
		},
		GetEmployeeFunc: func(ctx context.Context, id string) (*domain.Employee, error) {
			return nil, store.ErrNotFound
		},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("shift-1", "missing", "accept"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("应该返回 404，实际 %d", rec.Code)
	}
}

func TestShiftResponse_EmptyDocuments(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return nil, store.ErrEmptyDocument
		},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("shift-1", "user-1", "accept"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("空班次文档应该返回 403，实际 %d", rec.Code)
	}

	st = &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return &domain.Shift{ID: id}, nil
		},
		GetEmployeeFunc: func(ctx context.Context, id string) (*domain.Employee, error) {
			return nil, store.ErrEmptyDocument
		},
	}
	h = newTestHandler(t, st)

	rec = doShiftResponse(h, responseParams("shift-1", "user-1", "accept"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("空员工文档应该返回 403，实际 %d", rec.Code)
	}
}

func TestShiftResponse_ShiftAlreadyFilled(t *testing.T) {
	appendCalled := false
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return &domain.Shift{ID: id, Status: domain.ShiftStatusFilled}, nil
		},
		GetEmployeeFunc: func(ctx context.Context, id string) (*domain.Employee, error) {
			return &domain.Employee{ID: id, Profile: domain.EmployeeProfile{UUID: id}}, nil
		},
		AppendAcceptedUserFunc: func(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error {
			appendCalled = true
			return nil
		},
	}
	h := newTestHandler(t, st)

	for _, response := range []string{"accept", "decline"} {
		rec := doShiftResponse(h, responseParams("shift-1", "user-1", response))
		if rec.Code != http.StatusConflict {
			t.Errorf("已招满的班次 response=%s 应该返回 409，实际 %d", response, rec.Code)
		}
	}
	if appendCalled {
		t.Error("已招满的班次不应该有任何写入")
	}
}

func TestShiftResponse_Accept(t *testing.T) {
	st := NewFakeSetStore()
	st.Shifts["shift-1"] = &domain.Shift{ID: "shift-1"}
	st.Employees["user-1"] = &domain.Employee{
		ID:      "user-1",
		Profile: domain.EmployeeProfile{UUID: "user-1", FullName: "张伟", Email: "zhangwei@example.com"},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("shift-1", "user-1", "accept"))
	if rec.Code != http.StatusOK {
		t.Fatalf("应该返回 200，实际 %d，响应: %s", rec.Code, rec.Body.String())
	}
	if len(st.Shifts["shift-1"].AcceptedUsers) != 1 {
		t.Fatalf("accepted_users 里应该有一条记录，实际 %d 条", len(st.Shifts["shift-1"].AcceptedUsers))
	}
	if st.Shifts["shift-1"].AcceptedUsers[0].UUID != "user-1" {
		t.Errorf("accepted_users 里应该是接受者本人")
	}
}

func TestShiftResponse_AcceptIsIdempotent(t *testing.T) {
	st := NewFakeSetStore()
	st.Shifts["shift-1"] = &domain.Shift{ID: "shift-1"}
	st.Employees["user-1"] = &domain.Employee{
		ID:      "user-1",
		Profile: domain.EmployeeProfile{UUID: "user-1", FullName: "张伟"},
	}
	h := newTestHandler(t, st)

	for i := 0; i < 2; i++ {
		rec := doShiftResponse(h, responseParams("shift-1", "user-1", "accept"))
		if rec.Code != http.StatusOK {
			t.Fatalf("第 %d 次接受应该返回 200，实际 %d", i+1, rec.Code)
		}
	}
	if len(st.Shifts["shift-1"].AcceptedUsers) != 1 {
		t.Errorf("重复接受后 accepted_users 里应该只有一条记录，实际 %d 条", len(st.Shifts["shift-1"].AcceptedUsers))
	}
}

func TestShiftResponse_DeclineDoesNotMutate(t *testing.T) {
	st := NewFakeSetStore()
	st.Shifts["shift-1"] = &domain.Shift{ID: "shift-1"}
	st.Employees["user-1"] = &domain.Employee{
		ID:      "user-1",
		Profile: domain.EmployeeProfile{UUID: "user-1", FullName: "李敏"},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("shift-1", "user-1", "decline"))
	if rec.Code != http.StatusOK {
		t.Fatalf("应该返回 200，实际 %d", rec.Code)
	}
	if len(st.Shifts["shift-1"].AcceptedUsers) != 0 {
		t.Errorf("拒绝不应该改动 accepted_users")
	}
}

func TestShiftResponse_StoreFault(t *testing.T) {
	st := &MockStore{
		GetShiftFunc: func(ctx context.Context, id string) (*domain.Shift, error) {
			return nil, errors.New("连接被重置")
		},
	}
	h := newTestHandler(t, st)

	rec := doShiftResponse(h, responseParams("shift-1", "user-1", "accept"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("文档库故障应该返回 500，实际 %d", rec.Code)
	}
	// 具体原因不应该出现在响应里
	if strings.Contains(rec.Body.String(), "连接被重置") {
		t.Errorf("内部错误的细节不应该泄露到响应里: %s", rec.Body.String())
	}
}

func TestShiftResponse_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/shift-response?shift_id=s&user_id=u&response=accept", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST 应该返回 405，实际 %d", rec.Code)
	}
}

func TestHelloWorld(t *testing.T) {
	h := newTestHandler(t, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("应该返回 200，实际 %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Hello world!") {
		t.Errorf("响应应该是 Hello world!，实际: %s", rec.Body.String())
	}
}
