package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/avatargamer/go-auth"
)

func TestClaimsContext(t *testing.T) {
	t.Run("round trips claims through a context", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			RoleNames: auth.RoleList{"ADMIN"},
		}

		ctx := auth.WithClaimsContext(context.Background(), claims)

		got, ok := auth.ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice", got.Subject())
		assert.True(t, got.HasRole("ADMIN"))
	})

	t.Run("empty context has no claims", func(t *testing.T) {
		got, ok := auth.ClaimsFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}
