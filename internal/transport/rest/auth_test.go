package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/pkg/auth"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerifier is a mock implementation of the auth.Verifier interface.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jwt.Token), args.Error(1)
}

// staticAuthenticator accepts a single name and password pair.
// stored holds the roles of customer records by name.
type staticAuthenticator struct {
	name, password string
	stored         map[string][]string
	err            error
}

func (s staticAuthenticator) Authenticate(_ context.Context, name, password string) (identity.Principal, error) {
	if s.err != nil {
		return identity.Principal{}, s.err
	}
	if name != s.name || password != s.password {
		return identity.Principal{}, perrors.ErrInvalidCredentials
	}
	return identity.Principal{Name: name, Roles: []string{identity.RoleCustomer}}, nil
}

func (s staticAuthenticator) Resolve(_ context.Context, p identity.Principal) (identity.Principal, error) {
	if s.err != nil {
		return identity.Principal{}, s.err
	}
	for _, role := range s.stored[p.Name] {
		if !p.HasRole(role) {
			p.Roles = append(p.Roles, role)
		}
	}
	return p, nil
}

func Test_Authenticate(t *testing.T) {
	token, err := jwt.NewBuilder().
		Subject("c0ffee").
		Claim(auth.PreferredUsernameClaim, "alice").
		Claim(auth.RolesClaim, []any{identity.RoleCustomer}).
		Build()
	require.NoError(t, err)
	roleless, err := jwt.NewBuilder().Subject("bob").Build()
	require.NoError(t, err)
	basic := staticAuthenticator{
		name:     "roman",
		password: "szarowski",
		stored:   map[string][]string{"bob": {identity.RoleCustomer}},
	}

	testCases := []struct {
		name            string
		setup           func(r *http.Request, v *MockVerifier)
		basic           CustomerAuthenticator
		withVerifier    bool
		expectedCode    int
		expectedName    string
		expectedRoles   []string
		expectChallenge bool
	}{
		{
			name:         "valid basic credentials",
			setup:        func(r *http.Request, _ *MockVerifier) { r.SetBasicAuth("roman", "szarowski") },
			basic:        basic,
			expectedCode: http.StatusOK,
			expectedName: "roman",
		},
		{
			name:            "wrong basic password",
			setup:           func(r *http.Request, _ *MockVerifier) { r.SetBasicAuth("roman", "nope") },
			basic:           basic,
			expectedCode:    http.StatusUnauthorized,
			expectChallenge: true,
		},
		{
			name:            "no credentials",
			setup:           func(*http.Request, *MockVerifier) {},
			basic:           basic,
			withVerifier:    true,
			expectedCode:    http.StatusUnauthorized,
			expectChallenge: true,
		},
		{
			name: "valid bearer token",
			setup: func(r *http.Request, v *MockVerifier) {
				r.Header.Set("Authorization", "Bearer good")
				v.On("Verify", mock.Anything, "good").Return(token, nil)
			},
			basic:         basic,
			withVerifier:  true,
			expectedCode:  http.StatusOK,
			expectedName:  "alice",
			expectedRoles: []string{identity.RoleCustomer},
		},
		{
			name: "bearer token without roles gets stored roles",
			setup: func(r *http.Request, v *MockVerifier) {
				r.Header.Set("Authorization", "Bearer roleless")
				v.On("Verify", mock.Anything, "roleless").Return(roleless, nil)
			},
			basic:         basic,
			withVerifier:  true,
			expectedCode:  http.StatusOK,
			expectedName:  "bob",
			expectedRoles: []string{identity.RoleCustomer},
		},
		{
			name: "rejected bearer token",
			setup: func(r *http.Request, v *MockVerifier) {
				r.Header.Set("Authorization", "Bearer bad")
				v.On("Verify", mock.Anything, "bad").Return(nil, errors.New("signature mismatch"))
			},
			basic:           basic,
			withVerifier:    true,
			expectedCode:    http.StatusUnauthorized,
			expectChallenge: true,
		},
		{
			name:            "bearer token without identity provider",
			setup:           func(r *http.Request, _ *MockVerifier) { r.Header.Set("Authorization", "Bearer good") },
			basic:           basic,
			expectedCode:    http.StatusUnauthorized,
			expectChallenge: true,
		},
		{
			name:         "customer store failure",
			setup:        func(r *http.Request, _ *MockVerifier) { r.SetBasicAuth("roman", "szarowski") },
			basic:        staticAuthenticator{err: errors.New("store down")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockVerifier := new(MockVerifier)
			var verifier auth.Verifier
			if tc.withVerifier {
				verifier = mockVerifier
			}
			var seen identity.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = identity.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/store/products", nil)
			tc.setup(req, mockVerifier)
			rr := httptest.NewRecorder()

			// when
			Authenticate(tc.basic, verifier, discardLogger())(next).ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, tc.expectedName, seen.Name)
			if tc.expectedRoles != nil {
				assert.Equal(t, tc.expectedRoles, seen.Roles)
			}
			if tc.expectChallenge {
				assert.Equal(t, `Basic realm="superstore"`, rr.Header().Get("WWW-Authenticate"))
			}
			mockVerifier.AssertExpectations(t)
		})
	}
}
