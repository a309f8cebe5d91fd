package auth

import (
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ClaimsFromToken(t *testing.T) {
	testCases := []struct {
		name        string
		build       func(b *jwt.Builder) *jwt.Builder
		expected    Claims
		expectError error
	}{
		{
			name: "preferred username and roles",
			build: func(b *jwt.Builder) *jwt.Builder {
				return b.Subject("1f0c").
					Claim(PreferredUsernameClaim, "roman").
					Claim(RolesClaim, []any{"CUSTOMER", "ADMIN", 42})
			},
			expected: Claims{Name: "roman", Roles: []string{"CUSTOMER", "ADMIN"}},
		},
		{
			name: "falls back to subject",
			build: func(b *jwt.Builder) *jwt.Builder {
				return b.Subject("user-123")
			},
			expected: Claims{Name: "user-123"},
		},
		{
			name: "no subject",
			build: func(b *jwt.Builder) *jwt.Builder {
				return b.Issuer("test-issuer")
			},
			expectError: ErrNoSubject,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			token, err := tc.build(jwt.NewBuilder()).Build()
			require.NoError(t, err)
			// when
			claims, err := ClaimsFromToken(token)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, claims)
		})
	}
}
