package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index"`
	UserName    string      `gorm:"size:100"`
	EntityType  string      `gorm:"size:50;index;not null"`
	EntityID    uint        `gorm:"index"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:text"` // JSON snapshot sebelum perubahan, "null" jika create
	AfterData   string      `gorm:"type:text"` // JSON snapshot sesudah perubahan, "null" jika delete
	CreatedAt   time.Time
}
