package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ndtrung/khoban/internal/domain"
)

// In-memory repositories used across the usecase tests.

type memProductRepo struct {
	products []domain.Product
	saveErr  error
}

func (m *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return m.products, nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].SKU == sku {
			return &m.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memProductRepo) FindByVariantSKU(ctx context.Context, sku string) (*domain.Product, int, error) {
	for i := range m.products {
		if idx := m.products[i].VariantIndexBySKU(sku); idx >= 0 {
			return &m.products[i], idx, nil
		}
	}
	return nil, -1, domain.ErrNotFound
}

func (m *memProductRepo) Save(ctx context.Context, p *domain.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	m.products = append(m.products, *p)
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memComboRepo struct {
	combos []domain.Combo
}

func (m *memComboRepo) List(ctx context.Context) ([]domain.Combo, error) { return m.combos, nil }

func (m *memComboRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Combo, error) {
	for i := range m.combos {
		if m.combos[i].ID == id {
			return &m.combos[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memComboRepo) FindBySKU(ctx context.Context, sku string) (*domain.Combo, error) {
	for i := range m.combos {
		if m.combos[i].SKU == sku {
			return &m.combos[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memComboRepo) Save(ctx context.Context, c *domain.Combo) error {
	for i := range m.combos {
		if m.combos[i].ID == c.ID {
			m.combos[i] = *c
			return nil
		}
	}
	m.combos = append(m.combos, *c)
	return nil
}

func (m *memComboRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.combos {
		if m.combos[i].ID == id {
			m.combos = append(m.combos[:i], m.combos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memOrderRepo struct {
	orders  []domain.EcommerceOrder
	saveErr error
}

func (m *memOrderRepo) List(ctx context.Context) ([]domain.EcommerceOrder, error) {
	return m.orders, nil
}

func (m *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.EcommerceOrder, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderRepo) FindByCode(ctx context.Context, code string) (*domain.EcommerceOrder, error) {
	for i := range m.orders {
		if m.orders[i].Code == code {
			return &m.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderRepo) Save(ctx context.Context, o *domain.EcommerceOrder) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.orders {
		if m.orders[i].ID == o.ID {
			m.orders[i] = *o
			return nil
		}
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memUserRepo struct {
	users []domain.User
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) { return m.users, nil }

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].Username == username {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) Save(ctx context.Context, u *domain.User) error {
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// recordingStock captures stock adjustments instead of applying them.
type recordingStock struct {
	mu      sync.Mutex
	calls   []domain.StockAdjustment
	failSKU string
	err     error
}

func (r *recordingStock) UpdateStock(ctx context.Context, adj domain.StockAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSKU != "" && adj.SKU == r.failSKU {
		return r.err
	}
	r.calls = append(r.calls, adj)
	return nil
}

// recordingNotifier signals through a channel so tests can wait for the
// async dispatch.
type recordingNotifier struct {
	notified chan string
	err      error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notified: make(chan string, 8)}
}

func (r *recordingNotifier) OrderHandedOver(ctx context.Context, o *domain.EcommerceOrder) error {
	r.notified <- o.Code
	return r.err
}
