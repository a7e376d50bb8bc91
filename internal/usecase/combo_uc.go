package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndtrung/khoban/internal/domain"
)

type ComboUC struct {
	Combos   domain.ComboRepo
	Products domain.ProductRepo
	Activity *ActivityUC
}

type ComboPreview struct {
	SKU  string  `json:"sku"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Preview recomputes the derived SKU/name/cost for the current selection.
// Pure and synchronous; the UI calls it on every quantity edit.
func (uc *ComboUC) Preview(ctx context.Context, productID uuid.UUID, sel domain.Selection) (*ComboPreview, error) {
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ComboPreview{
		SKU:  domain.GenerateComboSKU(p.Variants, sel),
		Name: domain.GenerateComboName(p.Name, p.Variants, sel),
		Cost: domain.CalculateComboCost(p.Variants, sel),
	}, nil
}

type SaveComboInput struct {
	ComboID       *uuid.UUID
	ProductID     uuid.UUID
	Selection     domain.Selection
	SKUOverride   string
	NameOverride  string
	PriceOverride *float64
}

// Save runs the wizard's terminal action: derived-or-overridden SKU, name and
// price are computed and the combo is created or updated depending on whether
// an existing combo id was supplied.
func (uc *ComboUC) Save(ctx context.Context, in SaveComboInput) (*domain.Combo, error) {
	p, err := uc.Products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	var w *domain.ComboWizard
	action := "create"
	if in.ComboID != nil {
		existing, err := uc.Combos.FindByID(ctx, *in.ComboID)
		if err != nil {
			return nil, err
		}
		w = domain.EditComboWizard(existing, p)
		w.Selection = domain.Selection{}
		action = "update"
	} else {
		w = domain.NewComboWizard()
		w.SelectProduct(p)
	}
	for _, e := range in.Selection.Picked() {
		w.Selection.Set(e.Index, e.Quantity)
	}
	w.SKUOverride = in.SKUOverride
	w.NameOverride = in.NameOverride
	w.PriceOverride = in.PriceOverride

	combo, err := w.Build()
	if err != nil {
		return nil, err
	}
	if err := uc.Combos.Save(ctx, combo); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: combo sku %q already exists", domain.ErrDuplicate, combo.SKU)
		}
		return nil, err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "combos", Action: action,
		RecordID: combo.ID.String(), RecordName: combo.Name,
		Description: fmt.Sprintf("Lưu combo %s (%s)", combo.Name, combo.SKU),
	})
	return combo, nil
}

type WizardState struct {
	Combo      *domain.Combo      `json:"combo"`
	Selection  []domain.SelectionEntry `json:"selection"`
	Unresolved []domain.ComboItem `json:"unresolved,omitempty"`
	Preview    ComboPreview       `json:"preview"`
}

// BeginEdit reconstructs the wizard state for an existing combo against the
// originating product's current variant list. Items whose variant SKU no
// longer resolves are returned in Unresolved.
func (uc *ComboUC) BeginEdit(ctx context.Context, comboID uuid.UUID) (*WizardState, error) {
	combo, err := uc.Combos.FindByID(ctx, comboID)
	if err != nil {
		return nil, err
	}
	if len(combo.Items) == 0 {
		return nil, errors.New("combo has no items")
	}
	p, err := uc.Products.FindByID(ctx, combo.Items[0].ProductID)
	if err != nil {
		return nil, err
	}
	w := domain.EditComboWizard(combo, p)
	return &WizardState{
		Combo:      combo,
		Selection:  w.Selection.Picked(),
		Unresolved: w.Unresolved,
		Preview: ComboPreview{
			SKU:  w.PreviewSKU(),
			Name: w.PreviewName(),
			Cost: w.PreviewCost(),
		},
	}, nil
}

func (uc *ComboUC) List(ctx context.Context) ([]domain.Combo, error) {
	return uc.Combos.List(ctx)
}

func (uc *ComboUC) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.Combos.Delete(ctx, id); err != nil {
		return err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "combos", Action: "delete",
		RecordID:    id.String(),
		Description: "Xóa combo",
	})
	return nil
}
