package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var shirtVariants = []Variant{
	{Color: "Đen", SKU: "SH-BLK", Cost: 50000, Stock: 12},
	{Color: "Trắng", SKU: "SH-WHT", Cost: 55000, Stock: 8},
	{Color: "Đỏ", SKU: "SH-RED", Cost: 52000, Stock: 4},
}

func TestStripDiacritics(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Đỏ", "Do"},
		{"Trắng", "Trang"},
		{"Xanh Dương", "Xanh Duong"},
		{"đen", "den"},
		{"Do", "Do"}, // already stripped
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StripDiacritics(c.in), "input %q", c.in)
	}
}

func TestStripDiacriticsIdempotent(t *testing.T) {
	for _, s := range []string{"Đỏ", "Trắng", "Hồng Phấn", "plain"} {
		once := StripDiacritics(s)
		assert.Equal(t, once, StripDiacritics(once))
	}
}

func TestGenerateComboSKUSingleVariant(t *testing.T) {
	sel := NewSelection(SelectionEntry{Index: 0, Quantity: 3})
	assert.Equal(t, "3-SH-BLK", GenerateComboSKU(shirtVariants, sel))
}

func TestGenerateComboSKUMix(t *testing.T) {
	sel := NewSelection(
		SelectionEntry{Index: 2, Quantity: 1},
		SelectionEntry{Index: 1, Quantity: 2},
	)
	// Tokens follow selection insertion order, not variant index order.
	assert.Equal(t, "CB-1DO-2TRANG", GenerateComboSKU(shirtVariants, sel))
}

func TestGenerateComboSKUDeterministic(t *testing.T) {
	sel := NewSelection(
		SelectionEntry{Index: 0, Quantity: 2},
		SelectionEntry{Index: 1, Quantity: 5},
	)
	first := GenerateComboSKU(shirtVariants, sel)
	assert.Equal(t, first, GenerateComboSKU(shirtVariants, sel))
}

func TestGenerateComboSKUEmptySelection(t *testing.T) {
	var empty Selection
	assert.Equal(t, "", GenerateComboSKU(shirtVariants, empty))

	allZero := NewSelection(SelectionEntry{Index: 0, Quantity: 0}, SelectionEntry{Index: 1, Quantity: 0})
	assert.Equal(t, "", GenerateComboSKU(shirtVariants, allZero))
	assert.Equal(t, "", GenerateComboName("Shirt", shirtVariants, allZero))
}

func TestGenerateComboSKUSkipsOutOfRangeIndex(t *testing.T) {
	sel := NewSelection(
		SelectionEntry{Index: 99, Quantity: 2},
		SelectionEntry{Index: 0, Quantity: 3},
	)
	assert.Equal(t, "3-SH-BLK", GenerateComboSKU(shirtVariants, sel))
}

func TestGenerateComboName(t *testing.T) {
	single := NewSelection(SelectionEntry{Index: 0, Quantity: 3})
	assert.Equal(t, "Combo 3 Goi Shirt - Den", GenerateComboName("Shirt", shirtVariants, single))

	mix := NewSelection(
		SelectionEntry{Index: 1, Quantity: 2},
		SelectionEntry{Index: 2, Quantity: 1},
	)
	assert.Equal(t, "Combo Shirt - Trang + Do", GenerateComboName("Shirt", shirtVariants, mix))
}

func TestCalculateComboCost(t *testing.T) {
	variants := []Variant{{SKU: "A", Cost: 1000}, {SKU: "B", Cost: 2000}}
	sel := NewSelection(
		SelectionEntry{Index: 0, Quantity: 2},
		SelectionEntry{Index: 1, Quantity: 3},
	)
	assert.Equal(t, 8000.0, CalculateComboCost(variants, sel))
}

// End-to-end example: one product, one variant picked three times.
func TestComboDerivationEndToEnd(t *testing.T) {
	variants := []Variant{
		{Color: "Đen", SKU: "SH-BLK", Cost: 50000},
		{Color: "Trắng", SKU: "SH-WHT", Cost: 55000},
	}
	sel := NewSelection(SelectionEntry{Index: 0, Quantity: 3})

	assert.Equal(t, "3-SH-BLK", GenerateComboSKU(variants, sel))
	assert.Equal(t, "Combo 3 Goi Shirt - Den", GenerateComboName("Shirt", variants, sel))
	assert.Equal(t, 150000.0, CalculateComboCost(variants, sel))
}

func TestSelectionSetKeepsInsertionOrder(t *testing.T) {
	var sel Selection
	sel.Set(2, 1)
	sel.Set(0, 4)
	sel.Set(2, 5) // update must not move the entry

	picked := sel.Picked()
	assert.Equal(t, []SelectionEntry{{Index: 2, Quantity: 5}, {Index: 0, Quantity: 4}}, picked)
	assert.Equal(t, 9, sel.TotalQuantity())
	assert.Equal(t, 5, sel.Get(2))
	assert.Equal(t, 0, sel.Get(7))
}
