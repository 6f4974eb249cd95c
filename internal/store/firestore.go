package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore 把 Store 接口落在 Firestore 上，集合名来自配置
type FirestoreStore struct {
	cfg    *config.Config
	client *firestore.Client
}

func NewFirestoreStore(cfg *config.Config, client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{
		cfg:    cfg,
		client: client,
	}
}

func (s *FirestoreStore) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.cfg.Store.QueryTimeout)*time.Second)
}

func (s *FirestoreStore) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	snap, err := s.client.Collection(s.cfg.Firestore.ShiftCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(snap.Data()) == 0 {
		return nil, ErrEmptyDocument
	}

	shift := &domain.Shift{ID: snap.Ref.ID}
	if err := snap.DataTo(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (s *FirestoreStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	snap, err := s.client.Collection(s.cfg.Firestore.EmployeeCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(snap.Data()) == 0 {
		return nil, ErrEmptyDocument
	}

	employee := &domain.Employee{ID: snap.Ref.ID}
	if err := snap.DataTo(employee); err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *FirestoreStore) ListEmployees(ctx context.Context, limit int) ([]*domain.Employee, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	iter := s.client.Collection(s.cfg.Firestore.EmployeeCollection).Limit(limit).Documents(ctx)
	defer iter.Stop()

	employees := make([]*domain.Employee, 0, limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		// 空文档没法作为候选人，跳过
		if len(snap.Data()) == 0 {
			continue
		}

		employee := &domain.Employee{ID: snap.Ref.ID}
		if err := snap.DataTo(employee); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	return employees, nil
}

func (s *FirestoreStore) AppendAcceptedUser(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	// ArrayUnion 由 Firestore 保证集合语义，重复元素不会被再次追加
	_, err := s.client.Collection(s.cfg.Firestore.ShiftCollection).Doc(shiftID).Update(ctx, []firestore.Update{
		{Path: "accepted_users", Value: firestore.ArrayUnion(profile)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *FirestoreStore) CreateShift(ctx context.Context, shift *domain.Shift) (string, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	ref := s.client.Collection(s.cfg.Firestore.ShiftCollection).NewDoc()
	if _, err := ref.Set(ctx, shift); err != nil {
		return "", err
	}

	return ref.ID, nil
}

func (s *FirestoreStore) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	// 和 mock 数据导入脚本一样，文档 ID 用员工的 uuid
	_, err := s.client.Collection(s.cfg.Firestore.EmployeeCollection).Doc(employee.Profile.UUID).Set(ctx, employee)
	return err
}
