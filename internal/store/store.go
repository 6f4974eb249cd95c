package store

import (
	"context"
	"errors"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
)

var (
	// ErrNotFound 文档不存在
	ErrNotFound = errors.New("文档不存在")
	// ErrEmptyDocument 文档存在但里面没有可用的数据
	ErrEmptyDocument = errors.New("文档中没有数据")
)

// Store 是文档库的访问接口，实现见 firestore.go 和 postgres.go
type Store interface {
	GetShift(ctx context.Context, id string) (*domain.Shift, error)
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	// ListEmployees 按文档库的原生顺序返回最多 limit 个员工，不保证任何相关性排序
	ListEmployees(ctx context.Context, limit int) ([]*domain.Employee, error)
	// AppendAcceptedUser 把 profile 原子地并入班次的 accepted_users 集合
	// 重复并入同一个 profile 不会产生重复元素
	AppendAcceptedUser(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error
	CreateShift(ctx context.Context, shift *domain.Shift) (string, error)
	CreateEmployee(ctx context.Context, employee *domain.Employee) error
}
