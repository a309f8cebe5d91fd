package rest

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of the service.ProductService interface.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Dto), args.Error(1)
}

func (m *MockProductService) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Dto), args.Error(1)
}

func (m *MockProductService) FindAll(ctx context.Context) ([]product.Dto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Dto), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Dto), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) (*product.Dto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Dto), args.Error(1)
}

// hookFunc adapts a function to CreateHook.
type hookFunc func(ctx context.Context) error

func (f hookFunc) BeforeCreate(ctx context.Context) (context.Context, error) {
	return ctx, f(ctx)
}

// principalHook is a CreateHook that replaces the request principal.
type principalHook identity.Principal

func (h principalHook) BeforeCreate(ctx context.Context) (context.Context, error) {
	return identity.WithPrincipal(ctx, identity.Principal(h)), nil
}

func ptr[T any](v T) *T {
	return &v
}

func widget(id string) *product.Dto {
	return &product.Dto{
		ID:     id,
		Name:   ptr("Widget"),
		Prices: map[string]*float64{"USD": ptr(9.99), "GBP": ptr(7.49)},
	}
}

const widgetJSON = `{"id":"p-1","name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newRouter(t *testing.T, svc *MockProductService, hook CreateHook) http.Handler {
	t.Helper()
	validate, err := product.NewValidator()
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/store/products", NewHandler(svc, validate, hook, discardLogger()).RegisterRoutes)
	return r
}

func Test_Handler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		result       *product.Dto
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			result:       widget("p-1"),
			expectedCode: http.StatusOK,
			expectedBody: widgetJSON,
		},
		{
			name:         "Error - product not found",
			err:          perrors.NewProductNotFound("p-1"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"No product entry found with id: <p-1>"}`,
		},
		{
			name:         "Error - store unavailable",
			err:          store.ErrUnavailable,
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"error":"Service is temporarily unavailable"}`,
		},
		{
			name:         "Error - unexpected",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"An unexpected error occurred"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.err != nil {
				svc.On("FindByID", mock.Anything, "p-1").Return(nil, tc.err)
			} else {
				svc.On("FindByID", mock.Anything, "p-1").Return(tc.result, nil)
			}
			req := httptest.NewRequest(http.MethodGet, "/store/products/p-1", nil)
			rr := httptest.NewRecorder()

			// when
			newRouter(t, svc, nil).ServeHTTP(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		result       []product.Dto
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - products found",
			result:       []product.Dto{*widget("p-1")},
			expectedCode: http.StatusOK,
			expectedBody: "[" + widgetJSON + "]",
		},
		{
			name:         "Success - no products",
			result:       []product.Dto{},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "Error - service error",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"An unexpected error occurred"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.err != nil {
				svc.On("FindAll", mock.Anything).Return(nil, tc.err)
			} else {
				svc.On("FindAll", mock.Anything).Return(tc.result, nil)
			}
			req := httptest.NewRequest(http.MethodGet, "/store/products", nil)
			rr := httptest.NewRecorder()

			// when
			newRouter(t, svc, nil).ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_Handler_Create(t *testing.T) {
	testCases := []struct {
		name         string
		requestBody  string
		serviceErr   error
		callsService bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			requestBody:  `{"name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`,
			callsService: true,
			expectedCode: http.StatusCreated,
			expectedBody: widgetJSON,
		},
		{
			name:         "Error - validation failed",
			requestBody:  `{"description":"no name"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"name":"failed on rule: required","prices":"failed on rule: currency"}}`,
		},
		{
			name:         "Error - missing required currency",
			requestBody:  `{"name":"Widget","prices":{"USD":9.99}}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"prices":"failed on rule: currency"}}`,
		},
		{
			name:         "Error - malformed body",
			requestBody:  `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - rejected by domain",
			requestBody:  `{"name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`,
			serviceErr:   perrors.InvalidArgument("Product name cannot be blank"),
			callsService: true,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Product name cannot be blank"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.callsService {
				call := svc.On("Create", mock.Anything, mock.AnythingOfType("product.Dto"))
				if tc.serviceErr != nil {
					call.Return(nil, tc.serviceErr)
				} else {
					call.Return(widget("p-1"), nil)
				}
			}
			req := httptest.NewRequest(http.MethodPost, "/store/products", strings.NewReader(tc.requestBody))
			rr := httptest.NewRecorder()

			// when
			newRouter(t, svc, nil).ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			svc.AssertExpectations(t)
			if !tc.callsService {
				svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func Test_Handler_Create_RunsHook(t *testing.T) {
	body := `{"name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`

	t.Run("hook runs before create", func(t *testing.T) {
		// given
		var order []string
		svc := new(MockProductService)
		svc.On("Create", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { order = append(order, "create") }).
			Return(widget("p-1"), nil)
		hook := hookFunc(func(context.Context) error {
			order = append(order, "hook")
			return nil
		})
		rr := httptest.NewRecorder()

		// when
		newRouter(t, svc, hook).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store/products", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, []string{"hook", "create"}, order)
	})

	t.Run("hook failure aborts create", func(t *testing.T) {
		// given
		svc := new(MockProductService)
		hook := hookFunc(func(context.Context) error { return perrors.ErrUnauthenticated })
		rr := httptest.NewRecorder()

		// when
		newRouter(t, svc, hook).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store/products", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, `Basic realm="superstore"`, rr.Header().Get("WWW-Authenticate"))
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create runs with the context returned by the hook", func(t *testing.T) {
		// given
		svc := new(MockProductService)
		svc.On("Create", mock.MatchedBy(func(ctx context.Context) bool {
			p, ok := identity.FromContext(ctx)
			return ok && p.Name == "bob" && p.HasRole(identity.RoleCustomer)
		}), mock.Anything).Return(widget("p-1"), nil)
		hook := principalHook{Name: "bob", Roles: []string{identity.RoleCustomer}}
		rr := httptest.NewRecorder()

		// when
		newRouter(t, svc, hook).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store/products", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("hook skipped for invalid body", func(t *testing.T) {
		// given
		called := false
		hook := hookFunc(func(context.Context) error {
			called = true
			return nil
		})
		rr := httptest.NewRecorder()

		// when
		newRouter(t, new(MockProductService), hook).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store/products", strings.NewReader(`{}`)))

		// then
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, called)
	})
}

func Test_Handler_Update(t *testing.T) {
	t.Run("Success - id taken from path", func(t *testing.T) {
		// given
		svc := new(MockProductService)
		svc.On("Update", mock.Anything, mock.MatchedBy(func(dto product.Dto) bool {
			return dto.ID == "p-1" && *dto.Name == "Widget"
		})).Return(widget("p-1"), nil)
		body := `{"id":"other","name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`
		req := httptest.NewRequest(http.MethodPut, "/store/products/p-1", strings.NewReader(body))
		rr := httptest.NewRecorder()

		// when
		newRouter(t, svc, nil).ServeHTTP(rr, req)

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, widgetJSON, rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("Error - product not found", func(t *testing.T) {
		// given
		svc := new(MockProductService)
		svc.On("Update", mock.Anything, mock.Anything).Return(nil, perrors.NewProductNotFound("p-9"))
		body := `{"name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`
		req := httptest.NewRequest(http.MethodPut, "/store/products/p-9", strings.NewReader(body))
		rr := httptest.NewRecorder()

		// when
		newRouter(t, svc, nil).ServeHTTP(rr, req)

		// then
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"No product entry found with id: <p-9>"}`, rr.Body.String())
	})
}

func Test_Handler_Delete(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - returns deleted product",
			expectedCode: http.StatusOK,
			expectedBody: widgetJSON,
		},
		{
			name:         "Error - access denied",
			err:          perrors.ErrAccessDenied,
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"Access denied"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.err != nil {
				svc.On("Delete", mock.Anything, "p-1").Return(nil, tc.err)
			} else {
				svc.On("Delete", mock.Anything, "p-1").Return(widget("p-1"), nil)
			}
			rr := httptest.NewRecorder()

			// when
			newRouter(t, svc, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/store/products/p-1", nil))

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
