package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"user_accounts/internal/logger"
	"user_accounts/internal/models"
	"user_accounts/internal/repository"
)

// AuditService maintains the append-only account audit trail.
type AuditService struct {
	auditRepo repository.AuditLog
	log       *logger.Logger
}

func NewAuditService(auditRepo repository.AuditLog, log *logger.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, log: log}
}

var _ AuditLog = (*AuditService)(nil)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f AuditFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// Record appends an event best-effort: the audit trail must never fail the
// user-facing operation it describes, so append errors are only logged.
func (s *AuditService) Record(ctx context.Context, e models.AuditEvent) {
	if err := s.auditRepo.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("audit_append_failed", "type", e.Type, "err", err)
	}
}

func (s *AuditService) List(ctx context.Context, f AuditFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.auditRepo.List(ctx, from, to, typ)
}
