//go:build unit

package user_test

import (
	"testing"

	"ekicare/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	cases := []struct {
		in    string
		want  user.Role
		errIs error
	}{
		{in: "PRO", want: user.RolePro},
		{in: "OWNER", want: user.RoleOwner},
		{in: "pro", errIs: user.ErrInvalidRole},
		{in: "", errIs: user.ErrInvalidRole},
		{in: "admin", errIs: user.ErrInvalidRole},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := user.NewRole(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestActor(t *testing.T) {
	pro := user.NewActor(uuid.New(), user.RolePro)
	owner := user.NewActor(uuid.New(), user.RoleOwner)

	assert.True(t, pro.IsPro())
	assert.False(t, pro.IsOwner())
	assert.True(t, owner.IsOwner())
}
