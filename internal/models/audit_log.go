package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Actor    string `gorm:"size:100;not null" json:"actor"`   // сотрудник, "api" или заголовок X-Actor
	Entity   string `gorm:"size:50;not null" json:"entity"`   // "asset", "starter_kit"
	EntityID string `gorm:"size:64;index" json:"entityId"`
	Action   string `gorm:"size:50;not null" json:"action"`   // "assign", "create", "kit_saved"
	Details  string `gorm:"type:text" json:"details,omitempty"`
}
