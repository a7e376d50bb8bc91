package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

type OrderUC struct {
	Ecommerce domain.EcommerceOrderRepo
	Exports   domain.ExportOrderRepo
	Activity  *ActivityUC
}

func (uc *OrderUC) ListEcommerce(ctx context.Context) ([]domain.EcommerceOrder, error) {
	return uc.Ecommerce.List(ctx)
}

func (uc *OrderUC) SaveEcommerce(ctx context.Context, o *domain.EcommerceOrder) error {
	if o.Code == "" {
		return errors.New("order code is required")
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	return uc.Ecommerce.Save(ctx, o)
}

func (uc *OrderUC) DeleteEcommerce(ctx context.Context, id uuid.UUID) error {
	return uc.Ecommerce.Delete(ctx, id)
}

// ImportBatch is the parsed content of one marketplace spreadsheet.
type ImportBatch struct {
	Source            string
	Orders            []domain.EcommerceOrder
	SkippedNoTracking int
}

type ImportResult struct {
	Source            string `json:"source"`
	Created           int    `json:"created"`
	SkippedDuplicate  int    `json:"skippedDuplicate"`
	SkippedNoTracking int    `json:"skippedNoTracking"`
}

// ImportEcommerce persists a parsed batch. Orders whose code already exists
// are skipped and counted rather than overwritten.
func (uc *OrderUC) ImportEcommerce(ctx context.Context, batch *ImportBatch) (*ImportResult, error) {
	res := &ImportResult{Source: batch.Source, SkippedNoTracking: batch.SkippedNoTracking}
	for i := range batch.Orders {
		o := batch.Orders[i]
		existing, err := uc.Ecommerce.FindByCode(ctx, o.Code)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return res, err
		}
		if existing != nil {
			res.SkippedDuplicate++
			continue
		}
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		if o.Status == "" {
			o.Status = domain.OrderStatusPending
		}
		if err := uc.Ecommerce.Save(ctx, &o); err != nil {
			return res, err
		}
		res.Created++
	}
	log.Info().Str("source", batch.Source).Int("created", res.Created).
		Int("skipped_duplicate", res.SkippedDuplicate).
		Int("skipped_no_tracking", res.SkippedNoTracking).
		Msg("marketplace import finished")
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "ecommerce-export", Action: "import",
		Description: fmt.Sprintf("Import %d phiếu xuất từ %s (bỏ qua %d trùng, %d thiếu mã vận đơn)",
			res.Created, batch.Source, res.SkippedDuplicate, res.SkippedNoTracking),
	})
	return res, nil
}

// --- Manual export slips ---

func (uc *OrderUC) ListExports(ctx context.Context) ([]domain.ExportOrder, error) {
	return uc.Exports.List(ctx)
}

func (uc *OrderUC) SaveExport(ctx context.Context, o *domain.ExportOrder) error {
	if o.Code == "" {
		return errors.New("order code is required")
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	return uc.Exports.Save(ctx, o)
}

// DeleteExport removes a manual slip. Completed slips may only be deleted by
// an admin.
func (uc *OrderUC) DeleteExport(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	o, err := uc.Exports.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == domain.OrderStatusCompleted && (actor == nil || actor.Role != domain.RoleAdmin) {
		return fmt.Errorf("%w: completed slips require admin", domain.ErrForbidden)
	}
	if err := uc.Exports.Delete(ctx, id); err != nil {
		return err
	}
	name := ""
	if actor != nil {
		name = actor.Username
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "export", Action: "delete",
		RecordID: id.String(), RecordName: o.Code, UserName: name,
		Description: fmt.Sprintf("Xóa phiếu xuất %s", o.Code),
	})
	return nil
}
