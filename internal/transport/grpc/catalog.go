// Package grpc exposes a read-only product catalog over gRPC.
//
// The service is described by hand with well-known protobuf types, so no generated code is needed:
//
//	service ProductCatalog {
//	  rpc GetProduct(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc ListProducts(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	}
package grpc

import (
	"context"
	"errors"
	"log/slog"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName        = "superstore.catalog.v1.ProductCatalog"
	getProductMethod   = "/" + ServiceName + "/GetProduct"
	listProductsMethod = "/" + ServiceName + "/ListProducts"
)

// ProductReader is the read side of the product service.
type ProductReader interface {
	FindByID(ctx context.Context, id string) (*product.Dto, error)
	FindAll(ctx context.Context) ([]product.Dto, error)
}

// CatalogServer is the server API for the ProductCatalog service.
type CatalogServer interface {
	GetProduct(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
	ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error)
}

type Server struct {
	service ProductReader
	logger  *slog.Logger
}

func NewServer(service ProductReader, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger.With("component", "grpc_catalog"),
	}
}

// Register adds the catalog service to s. It matches server.RegistrationFunc.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(&catalogServiceDesc, s)
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := req.GetValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "product id cannot be empty")
	}
	found, err := s.service.FindByID(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	st, err := toStruct(*found)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return st, nil
}

func (s *Server) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.service.FindAll(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	values := make([]*structpb.Value, 0, len(list))
	for _, dto := range list {
		st, err := toStruct(dto)
		if err != nil {
			return nil, s.toStatus(ctx, err)
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *Server) toStatus(ctx context.Context, err error) error {
	var validationErr *perrors.ValidationError
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Message)
	case errors.Is(err, store.ErrUnavailable):
		return status.Error(codes.Unavailable, "service is temporarily unavailable")
	default:
		s.logger.ErrorContext(ctx, "catalog call failed", "error", err)
		return status.Error(codes.Internal, "internal server error")
	}
}

// toStruct converts a Dto to the same JSON shape the REST API returns.
func toStruct(dto product.Dto) (*structpb.Struct, error) {
	fields := map[string]any{"id": dto.ID}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.Prices != nil {
		prices := make(map[string]any, len(dto.Prices))
		for code, amount := range dto.Prices {
			if amount != nil {
				prices[code] = *amount
			}
		}
		fields["prices"] = prices
	}
	return structpb.NewStruct(fields)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "ListProducts", Handler: listProductsHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetProduct(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
