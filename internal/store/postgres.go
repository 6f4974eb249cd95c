package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/google/uuid"
)

const (
	collectionShift    = "shift"
	collectionEmployee = "EmployeeData"
)

// PostgresStore 用一张 JSONB 文档表模拟文档库，主要给本地开发用
// 表结构见 EnsureSchema
type PostgresStore struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewPostgresStore(cfg *config.Config, dbpool *sql.DB) *PostgresStore {
	return &PostgresStore{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (s *PostgresStore) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.cfg.Store.QueryTimeout)*time.Second)
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id text NOT NULL,
			doc jsonb NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	_, err := s.dbpool.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) getDocument(ctx context.Context, collection string, id string) ([]byte, error) {
	query := `
		SELECT doc FROM documents WHERE collection = $1 AND id = $2
	`

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	var raw []byte
	if err := s.dbpool.QueryRowContext(ctx, query, collection, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// 文档存在但没有数据的情况要和不存在区分开
	if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
		return nil, ErrEmptyDocument
	}

	return raw, nil
}

func (s *PostgresStore) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	raw, err := s.getDocument(ctx, collectionShift, id)
	if err != nil {
		return nil, err
	}

	shift := &domain.Shift{ID: id}
	if err := json.Unmarshal(raw, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (s *PostgresStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	raw, err := s.getDocument(ctx, collectionEmployee, id)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{ID: id}
	if err := json.Unmarshal(raw, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context, limit int) ([]*domain.Employee, error) {
	query := `
		SELECT id, doc FROM documents WHERE collection = $1 ORDER BY id LIMIT $2
	`

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.dbpool.QueryContext(ctx, query, collectionEmployee, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0, limit)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		// 空文档没法作为候选人，跳过
		if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
			continue
		}

		employee := &domain.Employee{ID: id}
		if err := json.Unmarshal(raw, employee); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (s *PostgresStore) AppendAcceptedUser(ctx context.Context, shiftID string, profile domain.EmployeeProfile) error {
	// 包含判断和追加放在同一条 UPDATE 里，并发的 accept 不会产生重复元素
	query := `
		UPDATE documents
		SET doc = jsonb_set(doc, '{accepted_users}', COALESCE(doc->'accepted_users', '[]'::jsonb) || $3::jsonb)
		WHERE collection = $1 AND id = $2 AND NOT COALESCE(doc->'accepted_users', '[]'::jsonb) @> $3::jsonb
	`

	// 用单元素数组的形式，既能做 || 拼接又能做 @> 包含判断
	element, err := json.Marshal([]domain.EmployeeProfile{profile})
	if err != nil {
		return err
	}

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	// 影响行数为 0 只说明集合中已经有这个 profile 了
	// 班次是否存在由调用方在这之前通过 GetShift 确认
	_, err = s.dbpool.ExecContext(ctx, query, collectionShift, shiftID, element)
	return err
}

func (s *PostgresStore) CreateShift(ctx context.Context, shift *domain.Shift) (string, error) {
	query := `
		INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)
	`

	doc, err := json.Marshal(shift)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	id := uuid.NewString()
	if _, err := s.dbpool.ExecContext(ctx, query, collectionShift, id, doc); err != nil {
		return "", err
	}

	return id, nil
}

func (s *PostgresStore) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	// 和 mock 数据导入脚本一样，文档 ID 用员工的 uuid，重复导入时覆盖
	query := `
		INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc
	`

	doc, err := json.Marshal(employee)
	if err != nil {
		return err
	}

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	_, err = s.dbpool.ExecContext(ctx, query, collectionEmployee, employee.Profile.UUID, doc)
	return err
}
