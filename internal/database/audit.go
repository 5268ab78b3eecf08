package database

import (
	"context"

	"kit-allocator/internal/models"

	"gorm.io/gorm"
)

// AuditWriter пишет записи журнала аудита в таблицу audit_logs.
type AuditWriter struct {
	db *gorm.DB
}

func NewAuditWriter(db *gorm.DB) *AuditWriter {
	return &AuditWriter{db: db}
}

func (w *AuditWriter) Record(ctx context.Context, entry models.AuditLog) error {
	if w == nil || w.db == nil {
		return nil
	}
	return w.db.WithContext(ctx).Create(&entry).Error
}

// Recent returns the latest entries, newest first.
func (w *AuditWriter) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}
	var logs []models.AuditLog
	err := w.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
