package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

type Permission string

const (
	PermAll Permission = "all"

	PermDashboard       Permission = "dashboard"
	PermProductsView    Permission = "products.view"
	PermProductsCreate  Permission = "products.create"
	PermProductsUpdate  Permission = "products.update"
	PermProductsDelete  Permission = "products.delete"
	PermPurchaseView    Permission = "purchase.view"
	PermPurchaseCreate  Permission = "purchase.create"
	PermPurchaseUpdate  Permission = "purchase.update"
	PermPurchaseDelete  Permission = "purchase.delete"
	PermExportView      Permission = "export.view"
	PermExportCreate    Permission = "export.create"
	PermEcommerceView   Permission = "ecommerce-export.view"
	PermEcommerceCreate Permission = "ecommerce-export.create"
	PermCombosView      Permission = "combos.view"
	PermCombosCreate    Permission = "combos.create"
	PermCombosUpdate    Permission = "combos.update"
	PermCombosDelete    Permission = "combos.delete"
	PermHistory         Permission = "history"
	PermPermissions     Permission = "permissions"
	PermSettings        Permission = "settings"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {PermAll},
	RoleManager: {
		PermDashboard,
		PermProductsView, PermProductsCreate, PermProductsUpdate, PermProductsDelete,
		PermPurchaseView, PermPurchaseCreate, PermPurchaseUpdate, PermPurchaseDelete,
		PermExportView, PermExportCreate,
		PermEcommerceView, PermEcommerceCreate,
		PermCombosView, PermCombosCreate, PermCombosUpdate, PermCombosDelete,
		PermHistory,
	},
	RoleStaff: {
		PermDashboard,
		PermProductsView, PermProductsCreate, PermProductsUpdate,
		PermPurchaseView, PermPurchaseCreate,
		PermExportView, PermExportCreate,
		PermEcommerceView, PermEcommerceCreate,
		PermCombosView, PermCombosCreate,
	},
	RoleViewer: {
		PermDashboard,
		PermProductsView, PermPurchaseView, PermExportView, PermEcommerceView,
		PermCombosView,
		PermHistory,
	},
}

func HasPermission(role Role, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == PermAll || p == perm {
			return true
		}
	}
	return false
}

const bcryptCost = 10

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:60;uniqueIndex" json:"username"`
	DisplayName  string     `gorm:"size:140" json:"displayName"`
	PasswordHash string     `gorm:"size:100" json:"-"`
	Role         Role       `gorm:"type:varchar(20)" json:"role"`
	Active       bool       `gorm:"default:true" json:"active"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func NewUser(username, password string, role Role) (*User, error) {
	u := &User{
		ID:       uuid.New(),
		Username: strings.ToLower(strings.TrimSpace(username)),
		Role:     role,
		Active:   true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) Can(perm Permission) bool { return HasPermission(u.Role, perm) }

type UserRepo interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
