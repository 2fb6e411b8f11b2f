package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r.String())
	}
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_In(t *testing.T) {
	assert.True(t, RoleSuperAdmin.In(RoleSuperAdmin))
	assert.True(t, RoleEditor.In(RoleSuperAdmin, RoleEditor))
	assert.False(t, RoleSubscriber.In(RoleSuperAdmin))
	assert.False(t, RoleSubscriber.In())
}
