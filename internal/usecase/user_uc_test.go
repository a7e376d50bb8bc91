package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtrung/khoban/internal/domain"
)

func userFixture(t *testing.T) (*UserUC, *memUserRepo, *domain.User) {
	t.Helper()
	u, err := domain.NewUser("Staff01", "s3cret", domain.RoleStaff)
	require.NoError(t, err)
	repo := &memUserRepo{users: []domain.User{*u}}
	return &UserUC{Users: repo, Secret: []byte("test-secret")}, repo, u
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	uc, repo, _ := userFixture(t)

	// Username is normalized on login too.
	u, token, err := uc.Login(context.Background(), "  STAFF01 ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "staff01", u.Username)
	require.NotNil(t, repo.users[0].LastLoginAt)

	claims, err := uc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff01", claims.Username)
	assert.Equal(t, domain.RoleStaff, claims.Role)
	assert.Equal(t, u.ID.String(), claims.Subject)
}

func TestLogin_BadPassword(t *testing.T) {
	uc, _, _ := userFixture(t)
	_, _, err := uc.Login(context.Background(), "staff01", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	uc, _, _ := userFixture(t)
	_, _, err := uc.Login(context.Background(), "ghost", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	uc, repo, _ := userFixture(t)
	repo.users[0].Active = false
	_, _, err := uc.Login(context.Background(), "staff01", "s3cret")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestVerifyToken_RejectsForeignSignature(t *testing.T) {
	uc, _, u := userFixture(t)
	token, err := uc.issueToken(u)
	require.NoError(t, err)

	other := &UserUC{Secret: []byte("different-secret")}
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestChangePassword_RequiresOld(t *testing.T) {
	uc, _, u := userFixture(t)

	err := uc.ChangePassword(context.Background(), u.ID, "wrong", "newpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, uc.ChangePassword(context.Background(), u.ID, "s3cret", "newpass"))
	_, _, err = uc.Login(context.Background(), "staff01", "newpass")
	assert.NoError(t, err)
}

func TestResetPassword_AdminOnly(t *testing.T) {
	uc, _, u := userFixture(t)

	manager := &domain.User{Username: "boss", Role: domain.RoleManager}
	err := uc.ResetPassword(context.Background(), manager, u.ID, "forced")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := &domain.User{Username: "root", Role: domain.RoleAdmin}
	require.NoError(t, uc.ResetPassword(context.Background(), admin, u.ID, "forced"))
	_, _, err = uc.Login(context.Background(), "staff01", "forced")
	assert.NoError(t, err)
}
