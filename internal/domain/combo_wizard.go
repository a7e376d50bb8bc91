package domain

import (
	"errors"

	"github.com/google/uuid"
)

type WizardStep int

const (
	StepSelectProduct WizardStep = iota + 1
	StepSelectQuantities
	StepConfirm
)

var (
	ErrNoProductSelected = errors.New("no product selected")
	ErrEmptySelection    = errors.New("selection has no quantity")
)

// ComboWizard walks the three-step combo flow: pick a product, pick
// per-variant quantities, confirm. Transitions are strictly one step forward
// or backward; editing an existing combo enters directly at the confirm step.
type ComboWizard struct {
	Step      WizardStep
	Product   *Product
	Selection Selection

	// User overrides; empty/nil means "use the derived value".
	SKUOverride   string
	NameOverride  string
	PriceOverride *float64

	// Unresolved holds stored combo items whose variant SKU no longer matches
	// the product's current variant list when editing.
	Unresolved []ComboItem

	existing *Combo
}

func NewComboWizard() *ComboWizard {
	return &ComboWizard{Step: StepSelectProduct}
}

// EditComboWizard reconstructs the selection of an existing combo against the
// product's current variant list. Items whose SKU no longer resolves are
// reported in Unresolved instead of being silently dropped.
func EditComboWizard(c *Combo, p *Product) *ComboWizard {
	w := &ComboWizard{
		Step:         StepConfirm,
		Product:      p,
		SKUOverride:  c.SKU,
		NameOverride: c.Name,
		existing:     c,
	}
	price := c.Price
	w.PriceOverride = &price
	for _, item := range c.Items {
		idx := p.VariantIndexBySKU(item.SKU)
		if idx < 0 {
			w.Unresolved = append(w.Unresolved, item)
			continue
		}
		w.Selection.Set(idx, item.Quantity)
	}
	return w
}

func (w *ComboWizard) SelectProduct(p *Product) { w.Product = p }

func (w *ComboWizard) Next() error {
	switch w.Step {
	case StepSelectProduct:
		if w.Product == nil {
			return ErrNoProductSelected
		}
		w.Step = StepSelectQuantities
	case StepSelectQuantities:
		if w.Selection.Empty() {
			return ErrEmptySelection
		}
		w.Step = StepConfirm
	}
	return nil
}

func (w *ComboWizard) Back() {
	if w.Step > StepSelectProduct {
		w.Step--
	}
}

func (w *ComboWizard) Editing() bool { return w.existing != nil }

func (w *ComboWizard) PreviewSKU() string {
	if w.Product == nil {
		return ""
	}
	return GenerateComboSKU(w.Product.Variants, w.Selection)
}

func (w *ComboWizard) PreviewName() string {
	if w.Product == nil {
		return ""
	}
	return GenerateComboName(w.Product.Name, w.Product.Variants, w.Selection)
}

func (w *ComboWizard) PreviewCost() float64 {
	if w.Product == nil {
		return 0
	}
	return CalculateComboCost(w.Product.Variants, w.Selection)
}

// Build packages the selection into a Combo, applying override-or-derived
// SKU, name and price. When editing, the existing combo's identity is kept.
func (w *ComboWizard) Build() (*Combo, error) {
	if w.Product == nil {
		return nil, ErrNoProductSelected
	}
	if w.Selection.Empty() {
		return nil, ErrEmptySelection
	}

	cost := w.PreviewCost()
	sku := w.SKUOverride
	if sku == "" {
		sku = w.PreviewSKU()
	}
	name := w.NameOverride
	if name == "" {
		name = w.PreviewName()
	}
	price := cost
	if w.PriceOverride != nil && *w.PriceOverride > 0 {
		price = *w.PriceOverride
	}

	c := &Combo{SKU: sku, Name: name, Price: price, Cost: cost}
	if w.existing != nil {
		c.ID = w.existing.ID
		c.Stock = w.existing.Stock
		c.CreatedAt = w.existing.CreatedAt
	} else {
		c.ID = uuid.New()
	}
	for _, e := range w.Selection.Picked() {
		if e.Index < 0 || e.Index >= len(w.Product.Variants) {
			continue
		}
		v := w.Product.Variants[e.Index]
		c.Items = append(c.Items, ComboItem{
			ProductID:    w.Product.ID,
			ProductName:  w.Product.Name,
			VariantIndex: e.Index,
			Color:        v.Color,
			SKU:          v.SKU,
			Quantity:     e.Quantity,
		})
	}
	return c, nil
}
