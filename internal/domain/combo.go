package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Combo is a composite SKU bundling fixed quantities of one or more variants
// of a single parent product. Its stock is tracked independently of the
// component variants.
type Combo struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	SKU       string      `gorm:"size:120;uniqueIndex" json:"sku"`
	Name      string      `gorm:"size:255" json:"name"`
	Items     []ComboItem `gorm:"type:jsonb;serializer:json" json:"items"`
	Price     float64     `gorm:"type:decimal(12,2);default:0" json:"price"`
	Cost      float64     `gorm:"type:decimal(12,2);default:0" json:"cost"`
	Stock     int         `gorm:"type:int;default:0" json:"stock"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type ComboItem struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName,omitempty"`
	VariantIndex int       `json:"variantIndex"`
	Color        string    `json:"variantName,omitempty"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`
}

type ComboRepo interface {
	List(ctx context.Context) ([]Combo, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Combo, error)
	FindBySKU(ctx context.Context, sku string) (*Combo, error)
	Save(ctx context.Context, c *Combo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Selection maps variant indices to chosen quantities. Entries keep the order
// they were first set in, which drives the token order of derived SKUs and
// names.
type Selection struct {
	entries []SelectionEntry
}

type SelectionEntry struct {
	Index    int `json:"index"`
	Quantity int `json:"quantity"`
}

func NewSelection(entries ...SelectionEntry) Selection {
	var s Selection
	for _, e := range entries {
		s.Set(e.Index, e.Quantity)
	}
	return s
}

func (s *Selection) Set(index, quantity int) {
	for i := range s.entries {
		if s.entries[i].Index == index {
			s.entries[i].Quantity = quantity
			return
		}
	}
	s.entries = append(s.entries, SelectionEntry{Index: index, Quantity: quantity})
}

func (s *Selection) Get(index int) int {
	for _, e := range s.entries {
		if e.Index == index {
			return e.Quantity
		}
	}
	return 0
}

// Picked returns the entries with quantity > 0, in insertion order.
func (s *Selection) Picked() []SelectionEntry {
	out := make([]SelectionEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Quantity > 0 {
			out = append(out, e)
		}
	}
	return out
}

func (s *Selection) TotalQuantity() int {
	total := 0
	for _, e := range s.entries {
		if e.Quantity > 0 {
			total += e.Quantity
		}
	}
	return total
}

func (s *Selection) Empty() bool { return len(s.Picked()) == 0 }

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes Vietnamese diacritics: canonical decomposition with
// combining marks dropped, plus the đ/Đ letters that decomposition does not
// cover.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "đ", "d")
	out = strings.ReplaceAll(out, "Đ", "D")
	return out
}

func colorToken(color string) string {
	t := StripDiacritics(color)
	t = strings.ToUpper(t)
	return strings.Join(strings.Fields(t), "")
}

// GenerateComboSKU derives a combo SKU from the picked variants. A single
// picked variant yields "{qty}-{variantSKU}"; a mix yields
// "CB-{qty}{COLOR}-{qty}{COLOR}-...". An empty selection yields "".
func GenerateComboSKU(variants []Variant, sel Selection) string {
	picked := validPicks(variants, sel)
	if len(picked) == 0 {
		return ""
	}
	if len(picked) == 1 {
		return fmt.Sprintf("%d-%s", picked[0].Quantity, variants[picked[0].Index].SKU)
	}
	parts := make([]string, 0, len(picked))
	for _, e := range picked {
		parts = append(parts, fmt.Sprintf("%d%s", e.Quantity, colorToken(variants[e.Index].Color)))
	}
	return "CB-" + strings.Join(parts, "-")
}

// GenerateComboName derives a display name from the picked variants, with
// diacritics stripped from color labels. An empty selection yields "".
func GenerateComboName(productName string, variants []Variant, sel Selection) string {
	picked := validPicks(variants, sel)
	if len(picked) == 0 {
		return ""
	}
	if len(picked) == 1 {
		total := 0
		for _, e := range picked {
			total += e.Quantity
		}
		color := StripDiacritics(variants[picked[0].Index].Color)
		return fmt.Sprintf("Combo %d Goi %s - %s", total, productName, color)
	}
	colors := make([]string, 0, len(picked))
	for _, e := range picked {
		colors = append(colors, StripDiacritics(variants[e.Index].Color))
	}
	return fmt.Sprintf("Combo %s - %s", productName, strings.Join(colors, " + "))
}

// CalculateComboCost sums variant cost × quantity over the picked entries.
// It is a cost aggregate; callers decide whether to use it as the sale price.
func CalculateComboCost(variants []Variant, sel Selection) float64 {
	total := 0.0
	for _, e := range validPicks(variants, sel) {
		total += variants[e.Index].Cost * float64(e.Quantity)
	}
	return total
}

// validPicks filters the selection to quantity>0 entries whose index resolves
// against the variant list. Out-of-range entries are skipped rather than
// failing the derivation.
func validPicks(variants []Variant, sel Selection) []SelectionEntry {
	picked := sel.Picked()
	out := make([]SelectionEntry, 0, len(picked))
	for _, e := range picked {
		if e.Index >= 0 && e.Index < len(variants) {
			out = append(out, e)
		}
	}
	return out
}
