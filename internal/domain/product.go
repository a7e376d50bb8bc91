package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SKU        string        `gorm:"size:100;uniqueIndex" json:"sku"`
	Barcode    string        `gorm:"size:64;index" json:"barcode,omitempty"`
	Name       string        `gorm:"size:180" json:"name"`
	CategoryID *uuid.UUID    `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	Price      float64       `gorm:"type:decimal(12,2);default:0" json:"price"`
	Cost       float64       `gorm:"type:decimal(12,2);default:0" json:"cost"`
	Stock      int           `gorm:"type:int;default:0" json:"stock"`
	MinStock   int           `gorm:"type:int;default:10" json:"minStock"`
	Unit       string        `gorm:"size:30" json:"unit"`
	Status     ProductStatus `gorm:"type:varchar(20);default:active" json:"status"`
	// Variants live inside the product row as a serialized array; they are
	// not independently persisted.
	Variants  []Variant `gorm:"type:jsonb;serializer:json" json:"variants,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Variant struct {
	Color string  `json:"color"`
	SKU   string  `json:"sku"`
	Cost  float64 `json:"cost"`
	Stock int     `json:"stock"`
}

// VariantIndexBySKU returns the position of the variant with the given SKU,
// or -1 when the product has no such variant.
func (p *Product) VariantIndexBySKU(sku string) int {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return i
		}
	}
	return -1
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:140" json:"name"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	// FindByVariantSKU resolves a variant-level SKU to its owning product and
	// the variant's index within the serialized array.
	FindByVariantSKU(ctx context.Context, sku string) (*Product, int, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepo interface {
	List(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SupplierRepo interface {
	List(ctx context.Context) ([]Supplier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Save(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockAdjustment is a signed inventory delta keyed by SKU. The SKU may name
// a product, a variant inside a product, or a combo.
type StockAdjustment struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	IsAdd    bool   `json:"isAdd"`
}
