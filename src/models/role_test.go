package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperAdmin, RoleChairman, RoleSecretary, RoleTreasurer, RoleBMO} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("chairman"))
	assert.False(t, ValidRole(""))
}

func TestAutoApproves(t *testing.T) {
	assert.True(t, AutoApproves(RoleChairman))
	assert.True(t, AutoApproves(RoleSuperAdmin))
	assert.False(t, AutoApproves(RoleTreasurer))
	assert.False(t, AutoApproves(RoleBMO))
	assert.False(t, AutoApproves(RoleSecretary))
}

func TestCanApprove(t *testing.T) {
	assert.True(t, CanApprove(RoleChairman))
	assert.True(t, CanApprove(RoleSuperAdmin))
	assert.False(t, CanApprove(RoleTreasurer))
}

func TestIsSuperAdmin(t *testing.T) {
	assert.True(t, AuthUser{Role: RoleSuperAdmin}.IsSuperAdmin())
	assert.False(t, AuthUser{Role: RoleChairman}.IsSuperAdmin())
}
