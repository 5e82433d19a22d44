package grpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthflow-costbasis/internal/logging"
)

func TestAuthInterceptor(t *testing.T) {
	validToken := "test-token-123"
	interceptor := AuthInterceptor(validToken)

	tests := []struct {
		name           string
		ctx            context.Context
		handlerCalled  bool
		expectedCode   codes.Code
		expectedErrMsg string
	}{
		{
			name: "Valid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", validToken),
			),
			handlerCalled:  true,
			expectedCode:   codes.OK,
			expectedErrMsg: "",
		},
		{
			name: "Invalid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "wrong-token"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "invalid token",
		},
		{
			name:           "Missing Token",
			ctx:            context.Background(),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing metadata",
		},
		{
			name: "Missing Authorization Header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("other-header", "value"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: "/test.Service/Method",
			}

			resp, err := interceptor(tt.ctx, "test-request", info, handler)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "success", resp)
			} else {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok, "error should be a gRPC status")
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedErrMsg)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		expectLevel string
		expectCode  string
	}{
		{
			name:        "Success",
			handlerErr:  nil,
			expectLevel: `"level":"info"`,
			expectCode:  `"code":"OK"`,
		},
		{
			name:        "Status Error",
			handlerErr:  status.Error(codes.NotFound, "no ledger events"),
			expectLevel: `"level":"warn"`,
			expectCode:  `"code":"NotFound"`,
		},
		{
			name:        "Plain Error",
			handlerErr:  errors.New("boom"),
			expectLevel: `"level":"warn"`,
			expectCode:  `"code":"Unknown"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			interceptor := LoggingInterceptor(logging.NewWithOutput("debug", &buf))

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "success", nil
			}
			info := &grpc.UnaryServerInfo{FullMethod: GetViewMethod}

			_, err := interceptor(context.Background(), "test-request", info, handler)

			assert.Equal(t, tt.handlerErr, err)
			out := buf.String()
			assert.Contains(t, out, tt.expectLevel)
			assert.Contains(t, out, tt.expectCode)
			assert.Contains(t, out, GetViewMethod)
		})
	}
}
