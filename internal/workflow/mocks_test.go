package workflow

import (
	"context"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
)

type MockStore struct {
	GetShiftFunc           func(ctx context.Context, id string) (*domain.Shift, error)
	GetEmployeeFunc        func(ctx context.Context, id string) (*domain.Employee, error)
	ListEmployeesFunc      func(ctx context.Context, limit int) ([]*domain.Employee, error)
	AppendAcceptedUserFunc func(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error
	CreateShiftFunc        func(ctx context.Context, shift *domain.Shift) (string, error)
	CreateEmployeeFunc     func(ctx context.Context, employee *domain.Employee) error
}

func (m *MockStore) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	return m.GetShiftFunc(ctx, id)
}

func (m *MockStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return m.GetEmployeeFunc(ctx, id)
}

func (m *MockStore) ListEmployees(ctx context.Context, limit int) ([]*domain.Employee, error) {
	return m.ListEmployeesFunc(ctx, limit)
}

func (m *MockStore) AppendAcceptedUser(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error {
	return m.AppendAcceptedUserFunc(ctx, shiftID, profile)
}

func (m *MockStore) CreateShift(ctx context.Context, shift *domain.Shift) (string, error) {
	return m.CreateShiftFunc(ctx, shift)
}

func (m *MockStore) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	return m.CreateEmployeeFunc(ctx, employee)
}

type MockRanker struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockRanker) GenerateText(ctx context.Context, prompt string) (string, error) {
	return m.GenerateTextFunc(ctx, prompt)
}

type MockMailer struct {
	SendFunc func(ctx context.Context, msg *domain.MailMessage) error
}

func (m *MockMailer) Send(ctx context.Context, msg *domain.MailMessage) error {
	return m.SendFunc(ctx, msg)
}
