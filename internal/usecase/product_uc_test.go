package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtrung/khoban/internal/domain"
)

func seedProducts() *memProductRepo {
	return &memProductRepo{products: []domain.Product{
		{
			ID: uuid.New(), SKU: "SHIRT", Name: "Áo Thun", Stock: 20,
			Variants: []domain.Variant{
				{Color: "Đen", SKU: "SH-BLK", Stock: 10},
				{Color: "Trắng", SKU: "SH-WHT", Stock: 5},
			},
		},
		{ID: uuid.New(), SKU: "BAG", Name: "Túi Vải", Stock: 3},
	}}
}

func TestCreate_DefaultsAndDuplicate(t *testing.T) {
	repo := &memProductRepo{}
	uc := &ProductUC{Products: repo}

	p := &domain.Product{SKU: " NEW-1 ", Name: "Hộp Carton"}
	require.NoError(t, uc.Create(context.Background(), p))
	assert.Equal(t, "NEW-1", p.SKU)
	assert.Equal(t, "Cái", p.Unit)
	assert.Equal(t, 10, p.MinStock)
	assert.Equal(t, domain.ProductStatusActive, p.Status)
	assert.NotEqual(t, uuid.Nil, p.ID)

	repo.saveErr = domain.ErrDuplicate
	err := uc.Create(context.Background(), &domain.Product{SKU: "NEW-1", Name: "Hộp Carton"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateStock_ProductSKU(t *testing.T) {
	repo := seedProducts()
	uc := &ProductUC{Products: repo}

	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "BAG", Quantity: 2}))
	assert.Equal(t, 1, repo.products[1].Stock)

	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "BAG", Quantity: 4, IsAdd: true}))
	assert.Equal(t, 5, repo.products[1].Stock)
}

func TestUpdateStock_ResolvesVariantSKU(t *testing.T) {
	repo := seedProducts()
	uc := &ProductUC{Products: repo}

	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "SH-WHT", Quantity: 3}))
	assert.Equal(t, 2, repo.products[0].Variants[1].Stock)
	assert.Equal(t, 10, repo.products[0].Variants[0].Stock)
	assert.Equal(t, 20, repo.products[0].Stock)
}

func TestUpdateStock_FloorsAtZero(t *testing.T) {
	repo := seedProducts()
	uc := &ProductUC{Products: repo}

	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "SH-WHT", Quantity: 99}))
	assert.Equal(t, 0, repo.products[0].Variants[1].Stock)
}

func TestUpdateStock_ComboExpandsToComponents(t *testing.T) {
	repo := seedProducts()
	combos := &memComboRepo{combos: []domain.Combo{{
		ID: uuid.New(), SKU: "CB-1DEN-2TRANG",
		Items: []domain.ComboItem{
			{SKU: "SH-BLK", Quantity: 1},
			{SKU: "SH-WHT", Quantity: 2},
		},
	}}}
	uc := &ProductUC{Products: repo, Combos: combos}

	// Deducting 2 combos deducts 2x each component.
	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "CB-1DEN-2TRANG", Quantity: 2}))
	assert.Equal(t, 8, repo.products[0].Variants[0].Stock)
	assert.Equal(t, 1, repo.products[0].Variants[1].Stock)
}

func TestUpdateStock_ComboMissingComponentContinues(t *testing.T) {
	repo := seedProducts()
	combos := &memComboRepo{combos: []domain.Combo{{
		ID: uuid.New(), SKU: "CB-X",
		Items: []domain.ComboItem{
			{SKU: "GONE", Quantity: 1},
			{SKU: "SH-BLK", Quantity: 1},
		},
	}}}
	uc := &ProductUC{Products: repo, Combos: combos}

	require.NoError(t, uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "CB-X", Quantity: 1}))
	assert.Equal(t, 9, repo.products[0].Variants[0].Stock)
}

func TestUpdateStock_UnknownSKU(t *testing.T) {
	uc := &ProductUC{Products: seedProducts()}
	err := uc.UpdateStock(context.Background(), domain.StockAdjustment{SKU: "NOPE", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
