package identity

import (
	"context"
	"testing"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ContextPort_CurrentPrincipalName(t *testing.T) {
	testCases := []struct {
		name        string
		ctx         context.Context
		expected    string
		expectError error
	}{
		{
			name:     "principal present",
			ctx:      WithPrincipal(context.Background(), Principal{Name: "roman", Roles: []string{RoleCustomer}}),
			expected: "roman",
		},
		{
			name:        "no principal",
			ctx:         context.Background(),
			expectError: perrors.ErrUnauthenticated,
		},
		{
			name:        "anonymous principal",
			ctx:         WithPrincipal(context.Background(), Principal{}),
			expectError: perrors.ErrUnauthenticated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			name, err := ContextPort{}.CurrentPrincipalName(tc.ctx)

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func Test_Principal_HasRole(t *testing.T) {
	p := Principal{Name: "roman", Roles: []string{RoleCustomer}}

	assert.True(t, p.HasRole(RoleCustomer))
	assert.False(t, p.HasRole("ADMIN"))
	assert.False(t, Principal{}.HasRole(RoleCustomer))
}

func Test_LogAttrs(t *testing.T) {
	// given
	ctx := WithPrincipal(context.Background(), Principal{Name: "roman"})
	// when
	attrs := LogAttrs(ctx)
	// then
	require.Len(t, attrs, 1)
	assert.Equal(t, "principal", attrs[0].Key)
	assert.Equal(t, "roman", attrs[0].Value.String())
	assert.Empty(t, LogAttrs(context.Background()))
}
