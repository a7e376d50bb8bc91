package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

type PurchaseUC struct {
	Purchases domain.PurchaseRepo
	Stock     StockAdjuster
	Activity  *ActivityUC
}

func (uc *PurchaseUC) List(ctx context.Context) ([]domain.Purchase, error) {
	return uc.Purchases.List(ctx)
}

// Create persists a purchase; a received purchase immediately increments
// stock for every line with a SKU (best-effort per line).
func (uc *PurchaseUC) Create(ctx context.Context, p *domain.Purchase) error {
	if p.Code == "" {
		return errors.New("purchase code is required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.PurchaseStatusReceived
	}
	if err := uc.Purchases.Save(ctx, p); err != nil {
		return err
	}
	if p.Status == domain.PurchaseStatusReceived {
		uc.applyStock(ctx, p, true)
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "purchase", Action: "create",
		RecordID: p.ID.String(), RecordName: p.Code,
		Description: fmt.Sprintf("Tạo phiếu nhập %s", p.Code),
	})
	return nil
}

func (uc *PurchaseUC) Update(ctx context.Context, p *domain.Purchase) error {
	if p.ID == uuid.Nil {
		return errors.New("purchase id is required")
	}
	return uc.Purchases.Save(ctx, p)
}

// Delete removes a purchase and reverses its stock increments when it had
// been received.
func (uc *PurchaseUC) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := uc.Purchases.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Purchases.Delete(ctx, id); err != nil {
		return err
	}
	if p.Status == domain.PurchaseStatusReceived {
		uc.applyStock(ctx, p, false)
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "purchase", Action: "delete",
		RecordID: id.String(), RecordName: p.Code,
		Description: fmt.Sprintf("Xóa phiếu nhập %s", p.Code),
	})
	return nil
}

func (uc *PurchaseUC) applyStock(ctx context.Context, p *domain.Purchase, isAdd bool) {
	if uc.Stock == nil {
		return
	}
	for _, item := range p.Items {
		if item.SKU == "" {
			continue
		}
		adj := domain.StockAdjustment{SKU: item.SKU, Quantity: item.Quantity, IsAdd: isAdd}
		if err := uc.Stock.UpdateStock(ctx, adj); err != nil {
			log.Error().Err(err).Str("sku", item.SKU).Bool("is_add", isAdd).
				Str("code", p.Code).Msg("purchase stock adjustment failed")
		}
	}
}
