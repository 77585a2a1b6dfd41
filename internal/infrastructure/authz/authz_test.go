package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
)

func TestRoleMapper_DefaultRoles(t *testing.T) {
	m := authz.NewDefaultRoleMapper()

	tests := []struct {
		role       string
		manage     bool
		appearance bool
	}{
		{role: "administrator", manage: true, appearance: true},
		{role: "Editor", manage: true, appearance: true},
		{role: "options_manager", manage: true},
		{role: "subscriber"},
		{role: ""},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			caps, err := m.CurrentCapabilities(authz.WithRole(context.Background(), tt.role))
			require.NoError(t, err)
			assert.Equal(t, tt.manage, caps.Has(entity.CapabilityManageOptions))
			assert.Equal(t, tt.appearance, caps.Has(entity.CapabilityEditAppearance))
		})
	}
}

func TestRoleMapper_ReturnsCopies(t *testing.T) {
	m := authz.NewDefaultRoleMapper()
	ctx := authz.WithRole(context.Background(), "editor")

	caps, err := m.CurrentCapabilities(ctx)
	require.NoError(t, err)
	delete(caps, entity.CapabilityEditAppearance)

	again, err := m.CurrentCapabilities(ctx)
	require.NoError(t, err)
	assert.True(t, again.Has(entity.CapabilityEditAppearance))
}

func TestNewRoleMapper(t *testing.T) {
	m, err := authz.NewRoleMapper(map[string][]string{
		"Shop_Manager": {"manage_options"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"shop_manager"}, m.Roles())

	caps, err := m.CurrentCapabilities(authz.WithRole(context.Background(), "shop_manager"))
	require.NoError(t, err)
	assert.True(t, caps.Has(entity.CapabilityManageOptions))
	assert.False(t, caps.Has(entity.CapabilityEditAppearance))

	_, err = authz.NewRoleMapper(map[string][]string{"x": {"delete_everything"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `role "x"`)
}

func TestStatic(t *testing.T) {
	caps, err := authz.AllCapabilities().CurrentCapabilities(context.Background())
	require.NoError(t, err)
	assert.Len(t, caps, 2)
}
