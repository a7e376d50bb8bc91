package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	u, err := NewUser("  Thu.Ha ", "matkhau123", RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "thu.ha", u.Username)
	assert.True(t, u.CheckPassword("matkhau123"))
	assert.False(t, u.CheckPassword("matkhau124"))
	assert.NotContains(t, u.PasswordHash, "matkhau")
}

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdmin, PermSettings, true},
		{RoleAdmin, PermProductsDelete, true},
		{RoleManager, PermProductsDelete, true},
		{RoleManager, PermSettings, false},
		{RoleManager, PermPermissions, false},
		{RoleStaff, PermProductsUpdate, true},
		{RoleStaff, PermProductsDelete, false},
		{RoleViewer, PermProductsView, true},
		{RoleViewer, PermProductsCreate, false},
		{Role("ghost"), PermDashboard, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HasPermission(c.role, c.perm), "%s / %s", c.role, c.perm)
	}
}
