// Package authz maps the caller's host role to settings capabilities.
package authz

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/domain/entity"
)

type roleKey struct{}

// WithRole stores the caller's role in ctx.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, strings.ToLower(strings.TrimSpace(role)))
}

// RoleFromContext returns the role stored by WithRole, or "".
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

// DefaultRoles grants both capabilities to administrators and editors, the
// roles that could edit the notice appearance on the host.
func DefaultRoles() map[string][]entity.Capability {
	return map[string][]entity.Capability{
		"administrator":   {entity.CapabilityManageOptions, entity.CapabilityEditAppearance},
		"editor":          {entity.CapabilityManageOptions, entity.CapabilityEditAppearance},
		"options_manager": {entity.CapabilityManageOptions},
	}
}

// RoleMapper resolves capabilities from the role found in the request context.
type RoleMapper struct {
	roles map[string]entity.CapabilitySet
}

var _ port.CapabilityProvider = (*RoleMapper)(nil)

// NewRoleMapper builds a mapper from role name to capability names.
// Unknown capability names are rejected.
func NewRoleMapper(roles map[string][]string) (*RoleMapper, error) {
	m := &RoleMapper{roles: make(map[string]entity.CapabilitySet, len(roles))}
	for role, names := range roles {
		caps := make([]entity.Capability, 0, len(names))
		for _, name := range names {
			c, err := ParseCapability(name)
			if err != nil {
				return nil, fmt.Errorf("role %q: %w", role, err)
			}
			caps = append(caps, c)
		}
		m.roles[strings.ToLower(role)] = entity.NewCapabilitySet(caps...)
	}
	return m, nil
}

// NewDefaultRoleMapper returns a mapper over DefaultRoles.
func NewDefaultRoleMapper() *RoleMapper {
	m := &RoleMapper{roles: make(map[string]entity.CapabilitySet)}
	for role, caps := range DefaultRoles() {
		m.roles[role] = entity.NewCapabilitySet(caps...)
	}
	return m
}

// CurrentCapabilities returns the capabilities of the role in ctx. A missing
// or unknown role has no capabilities.
func (m *RoleMapper) CurrentCapabilities(ctx context.Context) (entity.CapabilitySet, error) {
	caps, ok := m.roles[RoleFromContext(ctx)]
	if !ok {
		return entity.NewCapabilitySet(), nil
	}
	cp := make(entity.CapabilitySet, len(caps))
	for c := range caps {
		cp[c] = struct{}{}
	}
	return cp, nil
}

// Roles lists the configured role names, sorted.
func (m *RoleMapper) Roles() []string {
	names := make([]string, 0, len(m.roles))
	for r := range m.roles {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}

// ParseCapability validates a capability name.
func ParseCapability(name string) (entity.Capability, error) {
	switch c := entity.Capability(strings.TrimSpace(name)); c {
	case entity.CapabilityManageOptions, entity.CapabilityEditAppearance:
		return c, nil
	default:
		return "", fmt.Errorf("unknown capability %q", name)
	}
}

// Static grants a fixed capability set, used by CLI commands run by the operator.
type Static entity.CapabilitySet

// AllCapabilities grants every capability.
func AllCapabilities() Static {
	return Static(entity.NewCapabilitySet(entity.CapabilityManageOptions, entity.CapabilityEditAppearance))
}

func (s Static) CurrentCapabilities(context.Context) (entity.CapabilitySet, error) {
	return entity.CapabilitySet(s), nil
}
