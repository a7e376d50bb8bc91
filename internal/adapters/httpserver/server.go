package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/adapters/importer/excel"
	"github.com/ndtrung/khoban/internal/domain"
	"github.com/ndtrung/khoban/internal/usecase"
)

type Server struct {
	mux         *http.ServeMux
	products    *usecase.ProductUC
	combos      *usecase.ComboUC
	orders      *usecase.OrderUC
	fulfillment *usecase.FulfillmentUC
	purchases   *usecase.PurchaseUC
	users       *usecase.UserUC
	activity    *usecase.ActivityUC
	cfg         domain.ConfigRepo
}

func New(p *usecase.ProductUC, c *usecase.ComboUC, o *usecase.OrderUC, f *usecase.FulfillmentUC,
	pu *usecase.PurchaseUC, u *usecase.UserUC, a *usecase.ActivityUC, cfg domain.ConfigRepo) http.Handler {
	s := &Server{
		mux:         http.NewServeMux(),
		products:    p,
		combos:      c,
		orders:      o,
		fulfillment: f,
		purchases:   pu,
		users:       u,
		activity:    a,
		cfg:         cfg,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
		s.Authenticate("/api/auth/login", "/healthz"),
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"status": "ok"})
	})

	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/change-password", s.handleChangePassword)

	s.mux.HandleFunc("GET /api/products", s.handleProductList)
	s.mux.HandleFunc("POST /api/products", s.handleProductCreate)
	s.mux.HandleFunc("GET /api/products/{id}", s.handleProductGet)
	s.mux.HandleFunc("PUT /api/products/{id}", s.handleProductUpdate)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.handleProductDelete)
	s.mux.HandleFunc("POST /api/stock/adjust", s.handleStockAdjust)

	s.mux.HandleFunc("GET /api/categories", s.handleCategoryList)
	s.mux.HandleFunc("POST /api/categories", s.handleCategorySave)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleCategoryDelete)

	s.mux.HandleFunc("GET /api/suppliers", s.handleSupplierList)
	s.mux.HandleFunc("POST /api/suppliers", s.handleSupplierSave)
	s.mux.HandleFunc("DELETE /api/suppliers/{id}", s.handleSupplierDelete)

	s.mux.HandleFunc("GET /api/combos", s.handleComboList)
	s.mux.HandleFunc("POST /api/combos", s.handleComboSave)
	s.mux.HandleFunc("POST /api/combos/preview", s.handleComboPreview)
	s.mux.HandleFunc("GET /api/combos/{id}/wizard", s.handleComboWizard)
	s.mux.HandleFunc("DELETE /api/combos/{id}", s.handleComboDelete)

	s.mux.HandleFunc("GET /api/orders/ecommerce", s.handleEcomList)
	s.mux.HandleFunc("POST /api/orders/ecommerce", s.handleEcomSave)
	s.mux.HandleFunc("DELETE /api/orders/ecommerce/{id}", s.handleEcomDelete)
	s.mux.HandleFunc("POST /api/orders/ecommerce/import", s.handleEcomImport)
	s.mux.HandleFunc("GET /api/orders/ecommerce/export", s.handleEcomExport)
	s.mux.HandleFunc("POST /api/scan", s.handleScan)

	s.mux.HandleFunc("GET /api/orders/export", s.handleExportList)
	s.mux.HandleFunc("POST /api/orders/export", s.handleExportSave)
	s.mux.HandleFunc("DELETE /api/orders/export/{id}", s.handleExportDelete)

	s.mux.HandleFunc("GET /api/purchases", s.handlePurchaseList)
	s.mux.HandleFunc("POST /api/purchases", s.handlePurchaseCreate)
	s.mux.HandleFunc("PUT /api/purchases/{id}", s.handlePurchaseUpdate)
	s.mux.HandleFunc("DELETE /api/purchases/{id}", s.handlePurchaseDelete)

	s.mux.HandleFunc("GET /api/users", s.handleUserList)
	s.mux.HandleFunc("POST /api/users", s.handleUserCreate)
	s.mux.HandleFunc("PUT /api/users/{id}", s.handleUserUpdate)
	s.mux.HandleFunc("DELETE /api/users/{id}", s.handleUserDelete)
	s.mux.HandleFunc("POST /api/users/{id}/reset-password", s.handleResetPassword)

	s.mux.HandleFunc("GET /api/activity", s.handleActivityList)
	s.mux.HandleFunc("GET /api/activity/stats", s.handleActivityStats)

	s.mux.HandleFunc("GET /api/settings/{key}", s.handleSettingGet)
	s.mux.HandleFunc("PUT /api/settings/{key}", s.handleSettingSet)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrAccountDisabled):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func claimsFrom(r *http.Request) *usecase.Claims {
	c, _ := r.Context().Value(ctxClaims).(*usecase.Claims)
	return c
}

// actorFrom rebuilds a minimal user from the token claims for permission
// checks and activity attribution.
func actorFrom(r *http.Request) *domain.User {
	c := claimsFrom(r)
	if c == nil {
		return nil
	}
	return &domain.User{Username: c.Username, Role: c.Role}
}

func (s *Server) allow(w http.ResponseWriter, r *http.Request, perm domain.Permission) bool {
	c := claimsFrom(r)
	if c == nil || !domain.HasPermission(c.Role, perm) {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "insufficient permissions"})
		return false
	}
	return true
}

// --- auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	u, token, err := s.users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"user": u, "token": token})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	var in struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.users.ChangePassword(r.Context(), id, in.OldPassword, in.NewPassword); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- products ---

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsView) {
		return
	}
	list, err := s.products.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsView) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, p)
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsCreate) {
		return
	}
	var p domain.Product
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.Create(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 201, p)
}

func (s *Server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsUpdate) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var p domain.Product
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	p.ID = id
	if err := s.products.Update(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, p)
}

func (s *Server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsDelete) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleStockAdjust(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsUpdate) {
		return
	}
	var adj domain.StockAdjustment
	if err := decode(r, &adj); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.UpdateStock(r.Context(), adj); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- categories / suppliers ---

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsView) {
		return
	}
	list, err := s.products.ListCategories(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleCategorySave(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsUpdate) {
		return
	}
	var c domain.Category
	if err := decode(r, &c); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.SaveCategory(r.Context(), &c); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, c)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermProductsDelete) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.DeleteCategory(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleSupplierList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseView) {
		return
	}
	list, err := s.products.ListSuppliers(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleSupplierSave(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseUpdate) {
		return
	}
	var sup domain.Supplier
	if err := decode(r, &sup); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.SaveSupplier(r.Context(), &sup); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, sup)
}

func (s *Server) handleSupplierDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseDelete) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.products.DeleteSupplier(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- combos ---

type comboPayload struct {
	ComboID       *uuid.UUID              `json:"comboId,omitempty"`
	ProductID     uuid.UUID               `json:"productId"`
	Selection     []domain.SelectionEntry `json:"selection"`
	SKUOverride   string                  `json:"skuOverride,omitempty"`
	NameOverride  string                  `json:"nameOverride,omitempty"`
	PriceOverride *float64                `json:"priceOverride,omitempty"`
}

func (s *Server) handleComboList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermCombosView) {
		return
	}
	list, err := s.combos.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleComboPreview(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermCombosView) {
		return
	}
	var in comboPayload
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	preview, err := s.combos.Preview(r.Context(), in.ProductID, domain.NewSelection(in.Selection...))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, preview)
}

func (s *Server) handleComboSave(w http.ResponseWriter, r *http.Request) {
	perm := domain.PermCombosCreate
	var in comboPayload
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	if in.ComboID != nil {
		perm = domain.PermCombosUpdate
	}
	if !s.allow(w, r, perm) {
		return
	}
	combo, err := s.combos.Save(r.Context(), usecase.SaveComboInput{
		ComboID:       in.ComboID,
		ProductID:     in.ProductID,
		Selection:     domain.NewSelection(in.Selection...),
		SKUOverride:   in.SKUOverride,
		NameOverride:  in.NameOverride,
		PriceOverride: in.PriceOverride,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	code := 201
	if in.ComboID != nil {
		code = 200
	}
	writeJSON(w, code, combo)
}

func (s *Server) handleComboWizard(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermCombosUpdate) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	state, err := s.combos.BeginEdit(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, state)
}

func (s *Server) handleComboDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermCombosDelete) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.combos.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- ecommerce orders / scan ---

func (s *Server) handleEcomList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceView) {
		return
	}
	list, err := s.orders.ListEcommerce(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleEcomSave(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceCreate) {
		return
	}
	var o domain.EcommerceOrder
	if err := decode(r, &o); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.orders.SaveEcommerce(r.Context(), &o); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, o)
}

func (s *Server) handleEcomDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceCreate) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.orders.DeleteEcommerce(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleEcomImport(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceCreate) {
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeErr(w, err)
		return
	}
	defer file.Close()

	batch, err := excel.ReadOrders(file)
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := s.orders.ImportEcommerce(r.Context(), batch)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, res)
}

func (s *Server) handleEcomExport(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceView) {
		return
	}
	list, err := s.orders.ListEcommerce(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	switch r.URL.Query().Get("status") {
	case "completed":
		list = filterStatus(list, domain.OrderStatusCompleted)
	case "processing":
		list = filterStatus(list, domain.OrderStatusPending)
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		`attachment; filename="xuat-hang-tmdt-`+time.Now().Format("20060102")+`.xlsx"`)
	if err := excel.WriteOrders(w, list); err != nil {
		log.Error().Err(err).Msg("spreadsheet export failed")
	}
}

func filterStatus(list []domain.EcommerceOrder, st domain.OrderStatus) []domain.EcommerceOrder {
	out := list[:0]
	for _, o := range list {
		if o.Status == st {
			out = append(out, o)
		}
	}
	return out
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermEcommerceCreate) {
		return
	}
	var in struct {
		Code string `json:"code"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	res, err := s.fulfillment.Scan(r.Context(), in.Code)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, res)
}

// --- manual export slips ---

func (s *Server) handleExportList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermExportView) {
		return
	}
	list, err := s.orders.ListExports(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleExportSave(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermExportCreate) {
		return
	}
	var o domain.ExportOrder
	if err := decode(r, &o); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.orders.SaveExport(r.Context(), &o); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, o)
}

func (s *Server) handleExportDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermExportCreate) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.orders.DeleteExport(r.Context(), actorFrom(r), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- purchases ---

func (s *Server) handlePurchaseList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseView) {
		return
	}
	list, err := s.purchases.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handlePurchaseCreate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseCreate) {
		return
	}
	var p domain.Purchase
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.purchases.Create(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 201, p)
}

func (s *Server) handlePurchaseUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseUpdate) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var p domain.Purchase
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	p.ID = id
	if err := s.purchases.Update(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, p)
}

func (s *Server) handlePurchaseDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPurchaseDelete) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.purchases.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- users ---

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPermissions) {
		return
	}
	list, err := s.users.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPermissions) {
		return
	}
	var in struct {
		Username    string      `json:"username"`
		Password    string      `json:"password"`
		Role        domain.Role `json:"role"`
		DisplayName string      `json:"displayName"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	u, err := s.users.Create(r.Context(), in.Username, in.Password, in.Role, in.DisplayName)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 201, u)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPermissions) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	u, err := s.users.Users.FindByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	var in struct {
		Role        *domain.Role `json:"role,omitempty"`
		DisplayName *string      `json:"displayName,omitempty"`
		Active      *bool        `json:"active,omitempty"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.DisplayName != nil {
		u.DisplayName = *in.DisplayName
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if err := s.users.Update(r.Context(), u); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, u)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermPermissions) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var in struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.users.ResetPassword(r.Context(), actorFrom(r), id, in.NewPassword); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- activity / settings ---

func (s *Server) handleActivityList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermHistory) {
		return
	}
	q := r.URL.Query()
	f := domain.ActivityFilter{Module: q.Get("module"), Action: q.Get("action")}
	if raw := q.Get("start"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			f.Start = &t
		}
	}
	if raw := q.Get("end"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			f.End = &t
		}
	}
	list, err := s.activity.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) handleActivityStats(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermHistory) {
		return
	}
	stats, err := s.activity.Stats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, stats)
}

func (s *Server) handleSettingGet(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermSettings) {
		return
	}
	key := r.PathValue("key")
	value, err := s.cfg.Get(r.Context(), key)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"key": key, "value": value})
}

func (s *Server) handleSettingSet(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.PermSettings) {
		return
	}
	var in struct {
		Value string `json:"value"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	key := r.PathValue("key")
	if err := s.cfg.Set(r.Context(), key, in.Value); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"key": key, "value": in.Value})
}
