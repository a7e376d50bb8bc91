package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

type ActivityUC struct {
	Logs domain.ActivityRepo
}

// Record appends an activity entry. It is best-effort: a persistence failure
// is logged and never propagates into the operation that triggered it.
func (uc *ActivityUC) Record(ctx context.Context, entry domain.ActivityLog) {
	if uc == nil || uc.Logs == nil {
		return
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.UserName == "" {
		entry.UserName = "Admin"
	}
	if entry.Severity == "" {
		entry.Severity = domain.SeverityInfo
	}
	if err := uc.Logs.Save(ctx, &entry); err != nil {
		log.Warn().Err(err).Str("module", entry.Module).Str("action", entry.Action).Msg("activity log write failed")
	}
}

func (uc *ActivityUC) List(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	return uc.Logs.List(ctx, f)
}

func (uc *ActivityUC) ByRecord(ctx context.Context, module, recordID string) ([]domain.ActivityLog, error) {
	return uc.Logs.ByRecord(ctx, module, recordID)
}

func (uc *ActivityUC) Stats(ctx context.Context) (*domain.ActivityStats, error) {
	return uc.Logs.Stats(ctx)
}
