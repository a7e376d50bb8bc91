package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusReceived PurchaseStatus = "received"
)

type PurchaseItem struct {
	ProductName string  `json:"productName"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	Total       float64 `json:"total"`
}

// Purchase is an inbound order from a supplier. Receiving it increments
// stock; deleting a received purchase reverses the increments.
type Purchase struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string         `gorm:"size:64;uniqueIndex" json:"code"`
	SupplierID  *uuid.UUID     `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Date        time.Time      `json:"date"`
	Status      PurchaseStatus `gorm:"type:varchar(20);index" json:"status"`
	Items       []PurchaseItem `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalAmount float64        `gorm:"type:decimal(12,2);default:0" json:"totalAmount"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type PurchaseRepo interface {
	List(ctx context.Context) ([]Purchase, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	Save(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}
