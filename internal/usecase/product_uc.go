package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

type ProductUC struct {
	Products   domain.ProductRepo
	Combos     domain.ComboRepo
	Categories domain.CategoryRepo
	Suppliers  domain.SupplierRepo
	Activity   *ActivityUC
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		return errors.New("sku is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Unit == "" {
		p.Unit = "Cái"
	}
	if p.MinStock == 0 {
		p.MinStock = 10
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicate, p.SKU)
		}
		return err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "products", Action: "create",
		RecordID: p.ID.String(), RecordName: p.Name,
		Description: fmt.Sprintf("Tạo sản phẩm %s (%s)", p.Name, p.SKU),
	})
	return nil
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		return errors.New("product id is required")
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicate, p.SKU)
		}
		return err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "products", Action: "update",
		RecordID: p.ID.String(), RecordName: p.Name,
		Description: fmt.Sprintf("Cập nhật sản phẩm %s", p.Name),
	})
	return nil
}

func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.Products.Delete(ctx, id); err != nil {
		return err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "products", Action: "delete",
		RecordID:    id.String(),
		Description: "Xóa sản phẩm",
	})
	return nil
}

// UpdateStock applies a signed inventory delta keyed by SKU. A combo SKU
// being deducted expands into per-component deltas; a failure on one
// component is logged and does not stop the rest.
func (uc *ProductUC) UpdateStock(ctx context.Context, adj domain.StockAdjustment) error {
	sku := strings.TrimSpace(adj.SKU)
	if sku == "" {
		return errors.New("sku is required")
	}

	if uc.Combos != nil && !adj.IsAdd {
		combo, err := uc.Combos.FindBySKU(ctx, sku)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if combo != nil {
			for _, item := range combo.Items {
				componentQty := item.Quantity * adj.Quantity
				if err := uc.adjustSingle(ctx, item.SKU, componentQty, false); err != nil {
					log.Error().Err(err).Str("sku", item.SKU).Int("quantity", componentQty).
						Msg("combo component stock deduction failed")
				}
			}
			return nil
		}
	}

	return uc.adjustSingle(ctx, sku, adj.Quantity, adj.IsAdd)
}

// adjustSingle resolves the SKU to a product or a variant inside a product
// and applies the delta. Stock never goes below zero.
func (uc *ProductUC) adjustSingle(ctx context.Context, sku string, quantity int, isAdd bool) error {
	delta := quantity
	if !isAdd {
		delta = -quantity
	}

	p, err := uc.Products.FindBySKU(ctx, sku)
	if err == nil {
		p.Stock = clampStock(p.Stock + delta)
		return uc.Products.Save(ctx, p)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	p, idx, err := uc.Products.FindByVariantSKU(ctx, sku)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: sku %q", domain.ErrNotFound, sku)
		}
		return err
	}
	p.Variants[idx].Stock = clampStock(p.Variants[idx].Stock + delta)
	return uc.Products.Save(ctx, p)
}

func clampStock(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// --- Categories / suppliers ---

func (uc *ProductUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.List(ctx)
}

func (uc *ProductUC) SaveCategory(ctx context.Context, c *domain.Category) error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return uc.Categories.Save(ctx, c)
}

func (uc *ProductUC) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return uc.Categories.Delete(ctx, id)
}

func (uc *ProductUC) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return uc.Suppliers.List(ctx)
}

func (uc *ProductUC) SaveSupplier(ctx context.Context, s *domain.Supplier) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return uc.Suppliers.Save(ctx, s)
}

func (uc *ProductUC) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return uc.Suppliers.Delete(ctx, id)
}
