package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/simaogato/wealthflow-costbasis/internal/adapter/chart"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/dashboard"
)

// Dashboard is the use case behind the server
type Dashboard interface {
	ListAccounts(ctx context.Context) ([]string, error)
	ListAssets(ctx context.Context, accountID string) ([]string, error)
	GetView(ctx context.Context, accountID, selection string) (*dashboard.View, error)
}

// Server implements CostBasisServer
type Server struct {
	Dashboard Dashboard
	Chart     chart.Options
}

// NewServer creates a new gRPC server instance
func NewServer(dashboardService Dashboard, chartOptions chart.Options) *Server {
	return &Server{
		Dashboard: dashboardService,
		Chart:     chartOptions,
	}
}

// ListAccounts handles the ListAccounts RPC
func (s *Server) ListAccounts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	accounts, err := s.Dashboard.ListAccounts(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"accounts": stringList(accounts),
	})
}

// ListAssets handles the ListAssets RPC
func (s *Server) ListAssets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	accountID, err := requiredField(req, "account_id")
	if err != nil {
		return nil, err
	}

	assets, err := s.Dashboard.ListAssets(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"account_id": accountID,
		"assets":     stringList(assets),
	})
}

// GetView handles the GetView RPC
func (s *Server) GetView(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	view, err := s.view(ctx, req)
	if err != nil {
		return nil, err
	}

	return newStruct(encodeView(view))
}

// RenderChart handles the RenderChart RPC
func (s *Server) RenderChart(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	view, err := s.view(ctx, req)
	if err != nil {
		return nil, err
	}

	png, err := chart.Render(view, s.Chart)
	if err != nil {
		return nil, status.Errorf(codes.FailedPrecondition, "%s", err.Error())
	}

	return wrapperspb.Bytes(png), nil
}

func (s *Server) view(ctx context.Context, req *structpb.Struct) (*dashboard.View, error) {
	accountID, err := requiredField(req, "account_id")
	if err != nil {
		return nil, err
	}
	asset, err := requiredField(req, "asset")
	if err != nil {
		return nil, err
	}

	view, err := s.Dashboard.GetView(ctx, accountID, asset)
	if err != nil {
		return nil, mapError(err)
	}
	return view, nil
}

func requiredField(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || sv.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a non-empty string", name)
	}
	return sv.StringValue, nil
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return st, nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	case errors.Is(err, domain.ErrCoverage),
		errors.Is(err, domain.ErrUnexpectedZeroDelta),
		errors.Is(err, domain.ErrInvalidLedgerEvent):
		return status.Errorf(codes.FailedPrecondition, "%s", errorMsg)
	}

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "cannot be empty") ||
		strings.Contains(errorMsg, "must be") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Map "not found" errors to NotFound
	if strings.Contains(errorMsg, "not found") || strings.Contains(errorMsg, "no assets found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
