package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls CostBasisService over an established connection
type Client struct {
	conn  grpc.ClientConnInterface
	token string
}

// NewClient creates a client that sends token as the authorization metadata
func NewClient(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{conn: conn, token: token}
}

// ListAccounts returns every account with ledger activity
func (c *Client) ListAccounts(ctx context.Context) ([]string, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, ListAccountsMethod, nil, out); err != nil {
		return nil, err
	}
	return stringsField(out, "accounts"), nil
}

// ListAssets returns the selectable assets of an account, "Total" last
func (c *Client) ListAssets(ctx context.Context, accountID string) ([]string, error) {
	out := new(structpb.Struct)
	in := map[string]interface{}{"account_id": accountID}
	if err := c.invoke(ctx, ListAssetsMethod, in, out); err != nil {
		return nil, err
	}
	return stringsField(out, "assets"), nil
}

// GetView returns the encoded view of one selection
func (c *Client) GetView(ctx context.Context, accountID, asset string) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	in := map[string]interface{}{"account_id": accountID, "asset": asset}
	if err := c.invoke(ctx, GetViewMethod, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderChart returns the PNG chart of one selection
func (c *Client) RenderChart(ctx context.Context, accountID, asset string) ([]byte, error) {
	out := new(wrapperspb.BytesValue)
	in := map[string]interface{}{"account_id": accountID, "asset": asset}
	if err := c.invoke(ctx, RenderChartMethod, in, out); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}

func (c *Client) invoke(ctx context.Context, method string, in map[string]interface{}, out interface{}) error {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return err
	}
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", c.token)
	}
	return c.conn.Invoke(ctx, method, req, out)
}

func stringsField(st *structpb.Struct, name string) []string {
	values := st.GetFields()[name].GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.GetStringValue())
	}
	return out
}
