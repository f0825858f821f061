package storage

import (
	"context"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

// Ensure compliance
var _ ports.AuditRepository = (*SQLiteAdapter)(nil)

func (a *SQLiteAdapter) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	model := toAuditModel(log)
	return a.db.WithContext(ctx).Create(&model).Error
}

// ListAuditLogs returns the newest entries first.
func (a *SQLiteAdapter) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	var models []AuditLogModel
	query := a.db.WithContext(ctx).Order("timestamp desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]domain.AuditLog, len(models))
	for i, m := range models {
		logs[i] = toAuditLog(m)
	}
	return logs, nil
}
