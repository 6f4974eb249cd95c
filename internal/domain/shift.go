package domain

import (
	"time"
)

type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusFilled ShiftStatus = "filled"
)

type ShiftResponse string

const (
	ShiftResponseAccept  ShiftResponse = "accept"
	ShiftResponseDecline ShiftResponse = "decline"
)

// Shift 对应文档库 shift 集合中的一个文档
// ID 不存储在文档内部，由文档库在创建时分配
type Shift struct {
	ID            string            `firestore:"-" json:"-"`
	StartTime     time.Time         `firestore:"startTime" json:"startTime"`
	EndTime       time.Time         `firestore:"endTime" json:"endTime"`
	Description   string            `firestore:"description" json:"description"`
	Status        ShiftStatus       `firestore:"status" json:"status,omitempty"`
	AcceptedUsers []EmployeeProfile `firestore:"accepted_users" json:"accepted_users,omitempty"`
}

// EffectiveStatus 文档中缺失 status 字段时视为 open
func (s *Shift) EffectiveStatus() ShiftStatus {
	if s.Status == "" {
		return ShiftStatusOpen
	}
	return s.Status
}
