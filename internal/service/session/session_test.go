package session

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtLeast(t *testing.T) {
	cases := []struct {
		role string
		min  string
		want bool
	}{
		{RoleCrew, RoleCrew, true},
		{RoleCrew, RoleSupervisor, false},
		{RoleSupervisor, RoleSupervisor, true},
		{RoleSupervisor, RoleManager, false},
		{RoleManager, RoleSupervisor, true},
		{RoleAdmin, RoleManager, true},
		{RoleAdmin, RoleAdmin, true},
	}
	for _, c := range cases {
		got := Session{Role: c.role}.AtLeast(c.min)
		assert.Equal(t, c.want, got, "%s at least %s", c.role, c.min)
	}
}

func TestFromContext(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id":  float64(7),
		"employee_id": float64(3),
		"role":        RoleManager,
	})
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	sess, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.CompanyID)
	assert.Equal(t, int64(3), sess.EmployeeID)
	assert.Equal(t, RoleManager, sess.Role)
}

func TestFromContextDefaultsRoleToCrew(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id":  float64(7),
		"employee_id": float64(3),
	})
	require.NoError(t, err)

	sess, err := FromContext(jwtauth.NewContext(context.Background(), token, nil))
	require.NoError(t, err)
	assert.Equal(t, RoleCrew, sess.Role)
}

func TestFromContextMissingTenant(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.Error(t, err)
}
