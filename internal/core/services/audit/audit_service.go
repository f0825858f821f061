package audit

import (
	"context"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

const systemActor = "system"

type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records a change. Actor, client IP and request id are read from the
// context when the web layer put them there.
func (s *AuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	actor := ctxString(ctx, domain.AuditActorKey)
	if actor == "" {
		actor = systemActor
	}

	// Use Domain Factory to ensure business rules
	entry, err := domain.NewAuditLog(actor, action, target, details,
		ctxString(ctx, domain.AuditIPKey), ctxString(ctx, domain.AuditRequestIDKey))
	if err != nil {
		return err
	}

	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}

func ctxString(ctx context.Context, key any) string {
	v, _ := ctx.Value(key).(string)
	return v
}
