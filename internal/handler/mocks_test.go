package handler

import (
	"context"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
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

// FakeSetStore 在内存里模拟文档库的集合语义，用来验证幂等性
type FakeSetStore struct {
	MockStore
	Shifts    map[string]*domain.Shift
	Employees map[string]*domain.Employee
}

func NewFakeSetStore() *FakeSetStore {
	return &FakeSetStore{
		Shifts:    make(map[string]*domain.Shift),
		Employees: make(map[string]*domain.Employee),
	}
}

func (f *FakeSetStore) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	shift, ok := f.Shifts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return shift, nil
}

func (f *FakeSetStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	employee, ok := f.Employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return employee, nil
}

func (f *FakeSetStore) AppendAcceptedUser(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error {
	shift, ok := f.Shifts[shiftID]
	if !ok {
		return store.ErrNotFound
	}
	// 和真实文档库一样按集合语义去重
	for _, existing := range shift.AcceptedUsers {
		if existing == profile {
			return nil
		}
	}
	shift.AcceptedUsers = append(shift.AcceptedUsers, profile)
	return nil
}
