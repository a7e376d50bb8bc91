package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndtrung/khoban/internal/domain"
)

type UserUC struct {
	Users    domain.UserRepo
	Activity *ActivityUC

	Secret   []byte
	TokenTTL time.Duration
}

type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies credentials and issues a signed session token.
func (uc *UserUC) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := uc.Users.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.Active {
		return nil, "", domain.ErrAccountDisabled
	}
	if !u.CheckPassword(password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := uc.Users.Save(ctx, u); err != nil {
		log.Warn().Err(err).Str("username", u.Username).Msg("last login update failed")
	}

	token, err := uc.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "auth", Action: "login",
		RecordID: u.ID.String(), RecordName: u.Username, UserName: u.Username,
		Description: fmt.Sprintf("Đăng nhập: %s", u.Username),
	})
	return u, token, nil
}

func (uc *UserUC) issueToken(u *domain.User) (string, error) {
	ttl := uc.TokenTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    "khoban",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.Secret)
}

// VerifyToken parses and validates a session token.
func (uc *UserUC) VerifyToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (uc *UserUC) List(ctx context.Context) ([]domain.User, error) {
	return uc.Users.List(ctx)
}

func (uc *UserUC) Create(ctx context.Context, username, password string, role domain.Role, displayName string) (*domain.User, error) {
	u, err := domain.NewUser(username, password, role)
	if err != nil {
		return nil, err
	}
	u.DisplayName = displayName
	if err := uc.Users.Save(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q already exists", domain.ErrDuplicate, u.Username)
		}
		return nil, err
	}
	return u, nil
}

func (uc *UserUC) Update(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		return errors.New("user id is required")
	}
	return uc.Users.Save(ctx, u)
}

func (uc *UserUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Users.Delete(ctx, id)
}

// ChangePassword lets a user rotate their own password after proving the old
// one.
func (uc *UserUC) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.CheckPassword(oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	return uc.Users.Save(ctx, u)
}

// ResetPassword lets an admin overwrite another user's password.
func (uc *UserUC) ResetPassword(ctx context.Context, actor *domain.User, userID uuid.UUID, newPassword string) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	if err := uc.Users.Save(ctx, u); err != nil {
		return err
	}
	uc.Activity.Record(ctx, domain.ActivityLog{
		Module: "permissions", Action: "reset-password",
		RecordID: u.ID.String(), RecordName: u.Username, UserName: actor.Username,
		Severity:    domain.SeverityWarning,
		Description: fmt.Sprintf("Reset mật khẩu cho %s", u.Username),
	})
	return nil
}
