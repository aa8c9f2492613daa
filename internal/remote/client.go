package remote

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region client-struct
// Client calls a remote tancalc.Evaluator service.
type Client struct {
	conn   *grpc.ClientConn
	client EvaluatorClient
	retry  RetryPolicy
}

// #endregion client-struct

// #region constructor
// NewClient connects to a tand server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return NewClientWithConn(conn), nil
}

// NewClientWithConn wraps an existing connection. Close closes conn.
func NewClientWithConn(conn *grpc.ClientConn) *Client {
	return &Client{
		conn:   conn,
		client: NewEvaluatorClient(conn),
		retry:  DefaultRetryPolicy(),
	}
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc EvaluatorClient) *Client {
	return &Client{client: svc, retry: DefaultRetryPolicy()}
}

// SetRetryPolicy replaces the default retry policy.
func (c *Client) SetRetryPolicy(p RetryPolicy) {
	c.retry = p
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region evaluate
// Evaluate asks the server for tan(a).
func (c *Client) Evaluate(ctx context.Context, a tangent.Angle) (tangent.Result, error) {
	req, err := requestFor(a)
	if err != nil {
		return tangent.Result{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.invoke(ctx, func() (*structpb.Struct, error) {
		return c.client.Evaluate(ctx, req)
	})
	if err != nil {
		return tangent.Result{}, fmt.Errorf("evaluate rpc: %w", err)
	}
	r, err := resultFrom(resp)
	if err != nil {
		return tangent.Result{}, fmt.Errorf("evaluate rpc: %w", err)
	}
	return r, nil
}

// IsUndefined asks the server whether tan is undefined at a.
func (c *Client) IsUndefined(ctx context.Context, a tangent.Angle) (bool, error) {
	req, err := requestFor(a)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.invoke(ctx, func() (*structpb.Struct, error) {
		return c.client.IsUndefined(ctx, req)
	})
	if err != nil {
		return false, fmt.Errorf("is undefined rpc: %w", err)
	}
	return resp.GetFields()["undefined"].GetBoolValue(), nil
}

// #endregion evaluate

// #region invoke
func (c *Client) invoke(ctx context.Context, call func() (*structpb.Struct, error)) (*structpb.Struct, error) {
	for attempt := 1; ; attempt++ {
		resp, err := call()
		if !c.retry.ShouldRetry(err, attempt) {
			return resp, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retry.Backoff):
		}
	}
}

// #endregion invoke
