package auth_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/avatargamer/go-auth"
)

func TestRoleList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  auth.RoleList
	}{
		{
			name:  "array of strings",
			input: `["ADMIN","USER"]`,
			want:  auth.RoleList{"ADMIN", "USER"},
		},
		{
			name:  "JSON string containing an array",
			input: `"[\"ADMIN\",\"USER\"]"`,
			want:  auth.RoleList{"ADMIN", "USER"},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  auth.RoleList{},
		},
		{
			name:  "number degrades to empty",
			input: `42`,
			want:  auth.RoleList{},
		},
		{
			name:  "object degrades to empty",
			input: `{"role":"ADMIN"}`,
			want:  auth.RoleList{},
		},
		{
			name:  "plain string degrades to empty",
			input: `"ADMIN"`,
			want:  auth.RoleList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var roles auth.RoleList
			err := json.Unmarshal([]byte(tt.input), &roles)

			require.NoError(t, err)
			assert.Equal(t, tt.want, roles)
		})
	}
}

func TestSessionClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "avatargamer",
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		RoleNames: auth.RoleList{"ADMIN"},
	}

	t.Run("accessors", func(t *testing.T) {
		assert.Equal(t, "alice", claims.Subject())
		assert.Equal(t, []string{"ADMIN"}, claims.Roles())
		assert.True(t, claims.HasRole("ADMIN"))
		assert.False(t, claims.HasRole("OPERATOR"))
		assert.Equal(t, now, claims.IssuedAt())
		assert.Equal(t, now.Add(time.Hour), claims.Expires())
	})

	t.Run("zero value claims", func(t *testing.T) {
		empty := &auth.SessionClaims{}

		assert.Empty(t, empty.Subject())
		assert.NotNil(t, empty.Roles())
		assert.Empty(t, empty.Roles())
		assert.True(t, empty.Expires().IsZero())
		assert.True(t, empty.IssuedAt().IsZero())
	})
}
