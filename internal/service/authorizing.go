package service

import (
	"context"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/internal/product"
)

// AuthorizingService guards every ProductService call with a role check on the principal in the context.
type AuthorizingService struct {
	next ProductService
	role string
}

// NewAuthorizingService creates a ProductService that only lets callers holding role reach next.
func NewAuthorizingService(next ProductService, role string) *AuthorizingService {
	return &AuthorizingService{
		next: next,
		role: role,
	}
}

func (s *AuthorizingService) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.next.Create(ctx, dto)
}

func (s *AuthorizingService) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.next.FindByID(ctx, id)
}

func (s *AuthorizingService) FindAll(ctx context.Context) ([]product.Dto, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.next.FindAll(ctx)
}

func (s *AuthorizingService) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.next.Update(ctx, dto)
}

func (s *AuthorizingService) Delete(ctx context.Context, id string) (*product.Dto, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.next.Delete(ctx, id)
}

func (s *AuthorizingService) authorize(ctx context.Context) error {
	p, ok := identity.FromContext(ctx)
	if !ok || p.Name == "" {
		return perrors.ErrUnauthenticated
	}
	if !p.HasRole(s.role) {
		return perrors.ErrAccessDenied
	}
	return nil
}
