package app

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ndtrung/khoban/internal/adapters/httpserver"
	"github.com/ndtrung/khoban/internal/adapters/notify/telegram"
	"github.com/ndtrung/khoban/internal/adapters/repo/gormdb"
	"github.com/ndtrung/khoban/internal/domain"
	"github.com/ndtrung/khoban/internal/usecase"
)

type App struct {
	DB *gorm.DB

	ProductUC     *usecase.ProductUC
	ComboUC       *usecase.ComboUC
	OrderUC       *usecase.OrderUC
	FulfillmentUC *usecase.FulfillmentUC
	PurchaseUC    *usecase.PurchaseUC
	UserUC        *usecase.UserUC
	ActivityUC    *usecase.ActivityUC
	Config        domain.ConfigRepo
}

func NewApp(db *gorm.DB) (*App, error) {
	productRepo := gormdb.NewProductRepo(db)
	categoryRepo := gormdb.NewCategoryRepo(db)
	supplierRepo := gormdb.NewSupplierRepo(db)
	comboRepo := gormdb.NewComboRepo(db)
	ecomRepo := gormdb.NewEcommerceOrderRepo(db)
	exportRepo := gormdb.NewExportOrderRepo(db)
	purchaseRepo := gormdb.NewPurchaseRepo(db)
	userRepo := gormdb.NewUserRepo(db)
	activityRepo := gormdb.NewActivityRepo(db)
	configRepo := gormdb.NewConfigRepo(db)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret"
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	activity := &usecase.ActivityUC{Logs: activityRepo}
	products := &usecase.ProductUC{
		Products:   productRepo,
		Combos:     comboRepo,
		Categories: categoryRepo,
		Suppliers:  supplierRepo,
		Activity:   activity,
	}
	combos := &usecase.ComboUC{Combos: comboRepo, Products: productRepo, Activity: activity}
	orders := &usecase.OrderUC{Ecommerce: ecomRepo, Exports: exportRepo, Activity: activity}
	fulfillment := &usecase.FulfillmentUC{
		Orders:   ecomRepo,
		Stock:    products,
		Notifier: telegram.NewGateway(configRepo),
		Activity: activity,
	}
	purchases := &usecase.PurchaseUC{Purchases: purchaseRepo, Stock: products, Activity: activity}
	users := &usecase.UserUC{Users: userRepo, Activity: activity, Secret: []byte(secret)}

	return &App{
		DB:            db,
		ProductUC:     products,
		ComboUC:       combos,
		OrderUC:       orders,
		FulfillmentUC: fulfillment,
		PurchaseUC:    purchases,
		UserUC:        users,
		ActivityUC:    activity,
		Config:        configRepo,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ProductUC, a.ComboUC, a.OrderUC, a.FulfillmentUC,
		a.PurchaseUC, a.UserUC, a.ActivityUC, a.Config)
}

// Start launches the background workers. Close stops them.
func (a *App) Start() { a.FulfillmentUC.Start() }

func (a *App) Close() { a.FulfillmentUC.Close() }

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Category{}, &domain.Supplier{},
		&domain.Combo{}, &domain.EcommerceOrder{}, &domain.ExportOrder{},
		&domain.Purchase{}, &domain.User{}, &domain.ActivityLog{},
		&domain.AppConfig{},
	); err != nil {
		return err
	}
	return a.seedAdmin()
}

// seedAdmin creates the initial admin account when the user table is empty.
func (a *App) seedAdmin() error {
	var count int64
	if err := a.DB.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Warn().Msg("ADMIN_PASSWORD not set, seeding admin with the default password")
	}
	admin, err := domain.NewUser("admin", password, domain.RoleAdmin)
	if err != nil {
		return err
	}
	admin.DisplayName = "Quản trị viên"
	if err := a.DB.Create(admin).Error; err != nil {
		return err
	}
	log.Info().Msg("seeded initial admin account")

	ctx := context.Background()
	for _, name := range []string{"Áo", "Túi", "Phụ kiện"} {
		if err := a.ProductUC.SaveCategory(ctx, &domain.Category{Name: name}); err != nil {
			log.Warn().Err(err).Str("category", name).Msg("category seed failed")
		}
	}
	return nil
}
