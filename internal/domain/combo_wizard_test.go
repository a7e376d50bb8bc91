package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shirtProduct() *Product {
	return &Product{
		ID:       uuid.New(),
		SKU:      "SHIRT",
		Name:     "Shirt",
		Variants: shirtVariants,
	}
}

func TestWizardBlocksWithoutProduct(t *testing.T) {
	w := NewComboWizard()
	assert.ErrorIs(t, w.Next(), ErrNoProductSelected)
	assert.Equal(t, StepSelectProduct, w.Step)
}

func TestWizardBlocksEmptySelection(t *testing.T) {
	w := NewComboWizard()
	w.SelectProduct(shirtProduct())
	require.NoError(t, w.Next())

	w.Selection.Set(0, 0)
	assert.ErrorIs(t, w.Next(), ErrEmptySelection)
	assert.Equal(t, StepSelectQuantities, w.Step)

	w.Selection.Set(0, 2)
	assert.NoError(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step)
}

func TestWizardBackStopsAtFirstStep(t *testing.T) {
	w := NewComboWizard()
	w.Back()
	assert.Equal(t, StepSelectProduct, w.Step)
}

func TestWizardBuildDerivedValues(t *testing.T) {
	w := NewComboWizard()
	w.SelectProduct(shirtProduct())
	w.Selection.Set(0, 3)

	c, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, "3-SH-BLK", c.SKU)
	assert.Equal(t, "Combo 3 Goi Shirt - Den", c.Name)
	assert.Equal(t, 150000.0, c.Cost)
	assert.Equal(t, 150000.0, c.Price) // no override: derived cost is the default sale price
	require.Len(t, c.Items, 1)
	assert.Equal(t, "SH-BLK", c.Items[0].SKU)
	assert.Equal(t, 0, c.Items[0].VariantIndex)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestWizardBuildOverrides(t *testing.T) {
	w := NewComboWizard()
	w.SelectProduct(shirtProduct())
	w.Selection.Set(1, 2)
	w.SKUOverride = "CUSTOM-1"
	w.NameOverride = "Bundle trắng"
	price := 99000.0
	w.PriceOverride = &price

	c, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-1", c.SKU)
	assert.Equal(t, "Bundle trắng", c.Name)
	assert.Equal(t, 99000.0, c.Price)
	assert.Equal(t, 110000.0, c.Cost) // cost stays derived even when price is overridden
}

func TestEditWizardReconstructsSelection(t *testing.T) {
	p := shirtProduct()
	combo := &Combo{
		ID:   uuid.New(),
		SKU:  "CB-2DEN-1TRANG",
		Name: "Combo Shirt - Den + Trang",
		Items: []ComboItem{
			{ProductID: p.ID, VariantIndex: 0, SKU: "SH-BLK", Quantity: 2},
			{ProductID: p.ID, VariantIndex: 1, SKU: "SH-WHT", Quantity: 1},
		},
		Price: 155000,
		Stock: 7,
	}

	w := EditComboWizard(combo, p)
	assert.Equal(t, StepConfirm, w.Step)
	assert.True(t, w.Editing())
	assert.Empty(t, w.Unresolved)
	assert.Equal(t, 2, w.Selection.Get(0))
	assert.Equal(t, 1, w.Selection.Get(1))

	c, err := w.Build()
	require.NoError(t, err)
	assert.Equal(t, combo.ID, c.ID)
	assert.Equal(t, 7, c.Stock)
}

func TestEditWizardReportsUnresolvedItems(t *testing.T) {
	p := shirtProduct()
	combo := &Combo{
		ID: uuid.New(),
		Items: []ComboItem{
			{ProductID: p.ID, VariantIndex: 0, SKU: "SH-BLK", Quantity: 2},
			// Variant removed from the product since the combo was saved.
			{ProductID: p.ID, VariantIndex: 5, SKU: "SH-GONE", Quantity: 4},
		},
	}

	w := EditComboWizard(combo, p)
	require.Len(t, w.Unresolved, 1)
	assert.Equal(t, "SH-GONE", w.Unresolved[0].SKU)
	assert.Equal(t, 2, w.Selection.Get(0))
	assert.Equal(t, 2, w.Selection.TotalQuantity())
}
