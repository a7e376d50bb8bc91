package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

// StockAdjuster applies signed inventory deltas keyed by SKU.
type StockAdjuster interface {
	UpdateStock(ctx context.Context, adj domain.StockAdjustment) error
}

// Notifier delivers the handover notification for a fulfilled order.
type Notifier interface {
	OrderHandedOver(ctx context.Context, o *domain.EcommerceOrder) error
}

type ScanOutcome string

const (
	ScanSuccess   ScanOutcome = "success"
	ScanDuplicate ScanOutcome = "duplicate"
	ScanNotFound  ScanOutcome = "not_found"
)

type ScanResult struct {
	Outcome ScanOutcome            `json:"outcome"`
	Order   *domain.EcommerceOrder `json:"order,omitempty"`
	// FailedSKUs lists line items whose stock decrement failed; the order is
	// still marked completed (partial application, by contract).
	FailedSKUs []string `json:"failedSkus,omitempty"`
}

type FulfillmentUC struct {
	Orders   domain.EcommerceOrderRepo
	Stock    StockAdjuster
	Notifier Notifier
	Activity *ActivityUC

	queue     chan *domain.EcommerceOrder
	startOnce sync.Once
	wg        sync.WaitGroup
}

// Start spins up the notification worker. Notifications are queued so the
// scan response is never delayed by the webhook call; failures are logged and
// swallowed, never retried.
func (uc *FulfillmentUC) Start() {
	uc.startOnce.Do(func() {
		uc.queue = make(chan *domain.EcommerceOrder, 32)
		uc.wg.Add(1)
		go func() {
			defer uc.wg.Done()
			for o := range uc.queue {
				if uc.Notifier == nil {
					continue
				}
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				if err := uc.Notifier.OrderHandedOver(ctx, o); err != nil {
					log.Warn().Err(err).Str("code", o.Code).Msg("handover notification failed")
				}
				cancel()
			}
		}()
	})
}

func (uc *FulfillmentUC) Close() {
	if uc.queue != nil {
		close(uc.queue)
		uc.wg.Wait()
	}
}

// Scan resolves a scanned tracking identifier to a pending slip and applies
// the fulfillment transition. Matching is exact and case-sensitive after
// trimming; the first structural match in load order wins when tracking
// values collide. The sequence is not transactional: a decrement failure on
// one line does not stop the rest, and the status flip is attempted
// regardless.
func (uc *FulfillmentUC) Scan(ctx context.Context, code string) (*ScanResult, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, errors.New("empty scan code")
	}

	orders, err := uc.Orders.List(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.EcommerceOrder
	for i := range orders {
		if orders[i].TrackingID() == trimmed {
			found = &orders[i]
			break
		}
	}
	if found == nil {
		log.Info().Str("tracking", trimmed).Msg("scan: no matching slip")
		return &ScanResult{Outcome: ScanNotFound}, nil
	}

	if found.Status == domain.OrderStatusCompleted {
		return &ScanResult{Outcome: ScanDuplicate, Order: found}, nil
	}

	result := &ScanResult{Outcome: ScanSuccess, Order: found}
	for _, item := range found.Items {
		if item.VariantSKU == "" {
			continue
		}
		adj := domain.StockAdjustment{SKU: item.VariantSKU, Quantity: item.Quantity}
		if err := uc.Stock.UpdateStock(ctx, adj); err != nil {
			log.Error().Err(err).Str("sku", item.VariantSKU).Int("quantity", item.Quantity).
				Str("code", found.Code).Msg("stock decrement failed")
			result.FailedSKUs = append(result.FailedSKUs, item.VariantSKU)
		}
	}

	found.Status = domain.OrderStatusCompleted
	if err := uc.Orders.Save(ctx, found); err != nil {
		// Decrements already applied are not rolled back.
		log.Error().Err(err).Str("code", found.Code).Msg("status flip failed after stock deduction")
		return result, err
	}

	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "ecommerce-export", Action: "fulfill",
		RecordID: found.ID.String(), RecordName: found.Code,
		Description: fmt.Sprintf("Bàn giao DVVC đơn %s (tracking %s)", found.Code, trimmed),
	})
	uc.enqueueNotification(found)
	return result, nil
}

func (uc *FulfillmentUC) enqueueNotification(o *domain.EcommerceOrder) {
	if uc.queue == nil {
		return
	}
	select {
	case uc.queue <- o:
	default:
		log.Warn().Str("code", o.Code).Msg("notification queue full, dropping")
	}
}
