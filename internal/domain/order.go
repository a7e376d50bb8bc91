package domain

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// Shipment is the structured form of what the order's free-text notes used to
/// carry as "Shipping: X | Tracking: Y | N SKU | SL: M" segments.
type Shipment struct {
	Carrier       string `json:"carrier,omitempty"`
	TrackingID    string `json:"trackingId,omitempty"`
	SKUCount      int    `json:"skuCount,omitempty"`
	TotalQuantity int    `json:"totalQuantity,omitempty"`
}

// NotesLine renders the legacy pipe-delimited wire form, used when exporting
// to spreadsheets and for display.
func (s Shipment) NotesLine() string {
	carrier := s.Carrier
	if carrier == "" {
		carrier = "N/A"
	}
	tracking := s.TrackingID
	if tracking == "" {
		tracking = "N/A"
	}
	return fmt.Sprintf("Shipping: %s | Tracking: %s | %d SKU | SL: %d",
		carrier, tracking, s.SKUCount, s.TotalQuantity)
}

var (
	shippingRe = regexp.MustCompile(`Shipping: ([^|]+)`)
	trackingRe = regexp.MustCompile(`Tracking: ([^|]+)`)
	skuCountRe = regexp.MustCompile(`(\d+) SKU`)
	qtyRe      = regexp.MustCompile(`SL: (\d+)`)
)

// ParseShipmentNotes extracts the shipment sub-fields from a legacy notes
// string. Values are bounded by the next pipe or end of string and trimmed;
// "N/A" counts as absent.
func ParseShipmentNotes(notes string) Shipment {
	var s Shipment
	pick := func(re *regexp.Regexp) string {
		m := re.FindStringSubmatch(notes)
		if len(m) != 2 {
			return ""
		}
		v := strings.TrimSpace(m[1])
		if v == "N/A" {
			return ""
		}
		return v
	}
	s.Carrier = pick(shippingRe)
	s.TrackingID = pick(trackingRe)
	if m := skuCountRe.FindStringSubmatch(notes); len(m) == 2 {
		s.SKUCount, _ = strconv.Atoi(m[1])
	}
	if m := qtyRe.FindStringSubmatch(notes); len(m) == 2 {
		s.TotalQuantity, _ = strconv.Atoi(m[1])
	}
	return s
}

type OrderItem struct {
	ProductName string  `json:"productName"`
	Color       string  `json:"color,omitempty"`
	VariantSKU  string  `json:"variantSku,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// EcommerceOrder is a marketplace return/export slip ingested from TikTok or
// Shopee spreadsheet exports and fulfilled by tracking-id scans.
type EcommerceOrder struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string      `gorm:"size:64;uniqueIndex" json:"code"`
	CustomerName string      `gorm:"size:140" json:"customerName"`
	Reason       string      `gorm:"size:180" json:"reason,omitempty"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `gorm:"type:varchar(20);index" json:"status"`
	Items        []OrderItem `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalAmount  float64     `gorm:"type:decimal(12,2);default:0" json:"totalAmount"`
	Shipment     Shipment    `gorm:"type:jsonb;serializer:json" json:"shipment"`
	Notes        string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// TrackingID returns the shipment tracking id, falling back to the legacy
// notes encoding for rows persisted before the structured field existed.
func (o *EcommerceOrder) TrackingID() string {
	if o.Shipment.TrackingID != "" {
		return o.Shipment.TrackingID
	}
	return ParseShipmentNotes(o.Notes).TrackingID
}

// Source infers the marketplace from the customer label on the slip.
func (o *EcommerceOrder) Source() string {
	if strings.Contains(strings.ToLower(o.CustomerName), "tiktok") {
		return "TIKTOK"
	}
	return "SHOPEE"
}

// ExportOrder is a manually entered outbound slip. Same shape as the
// marketplace slip minus the marketplace attribution.
type ExportOrder struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string      `gorm:"size:64;uniqueIndex" json:"code"`
	CustomerName string      `gorm:"size:140" json:"customerName"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `gorm:"type:varchar(20);index" json:"status"`
	Items        []OrderItem `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalAmount  float64     `gorm:"type:decimal(12,2);default:0" json:"totalAmount"`
	Shipment     Shipment    `gorm:"type:jsonb;serializer:json" json:"shipment"`
	Notes        string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// EcommerceOrderRepo lists orders most-recent-first; scan matching relies on
// that load order when tracking ids collide.
type EcommerceOrderRepo interface {
	List(ctx context.Context) ([]EcommerceOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EcommerceOrder, error)
	FindByCode(ctx context.Context, code string) (*EcommerceOrder, error)
	Save(ctx context.Context, o *EcommerceOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ExportOrderRepo interface {
	List(ctx context.Context) ([]ExportOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ExportOrder, error)
	Save(ctx context.Context, o *ExportOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
