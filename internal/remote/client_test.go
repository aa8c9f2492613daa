package remote

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region mock
type mockEvaluatorService struct {
	evaluateResp *structpb.Struct
	evaluateErrs []error // returned in order, then nil
	calls        int

	undefinedResp *structpb.Struct
	undefinedErr  error
}

func (m *mockEvaluatorService) Evaluate(_ context.Context, _ *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	m.calls++
	if m.calls <= len(m.evaluateErrs) {
		return nil, m.evaluateErrs[m.calls-1]
	}
	return m.evaluateResp, nil
}

func (m *mockEvaluatorService) IsUndefined(_ context.Context, _ *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	return m.undefinedResp, m.undefinedErr
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return s
}

func noBackoff(c *Client) *Client {
	c.SetRetryPolicy(RetryPolicy{MaxRetries: maxRetries})
	return c
}

// #endregion mock

// #region constructor-tests
func TestNewClientLazyDial(t *testing.T) {
	client, err := NewClient("localhost:0")
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	defer client.Close()
}

func TestNewClientWithService(t *testing.T) {
	c := NewClientWithService(&mockEvaluatorService{})
	if c == nil || c.client == nil {
		t.Fatal("expected non-nil client")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close without conn: %v", err)
	}
}

// #endregion constructor-tests

// #region evaluate-tests
func TestEvaluate_Success(t *testing.T) {
	mock := &mockEvaluatorService{
		evaluateResp: mustStruct(t, map[string]interface{}{"undefined": false, "value": 1.0, "radians": 0.785}),
	}
	c := NewClientWithService(mock)

	r, err := c.Evaluate(context.Background(), tangent.FromDegrees(45))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := r.Float(); !ok || v != 1 {
		t.Errorf("expected 1, got %v (defined=%v)", v, ok)
	}
}

func TestEvaluate_Undefined(t *testing.T) {
	mock := &mockEvaluatorService{
		evaluateResp: mustStruct(t, map[string]interface{}{"undefined": true}),
	}
	r, err := NewClientWithService(mock).Evaluate(context.Background(), tangent.FromDegrees(90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsUndefined() {
		t.Error("expected undefined")
	}
}

func TestEvaluate_MalformedResponse(t *testing.T) {
	mock := &mockEvaluatorService{evaluateResp: mustStruct(t, map[string]interface{}{})}
	if _, err := NewClientWithService(mock).Evaluate(context.Background(), tangent.FromRadians(1)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestEvaluate_Error(t *testing.T) {
	rpcErr := errors.New("rpc failed")
	mock := &mockEvaluatorService{evaluateErrs: []error{rpcErr}}
	c := noBackoff(NewClientWithService(mock))

	_, err := c.Evaluate(context.Background(), tangent.FromRadians(1))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, rpcErr) {
		t.Errorf("expected wrapped rpc error, got: %v", err)
	}
	if mock.calls != 1 {
		t.Errorf("non-transient error should not retry, got %d calls", mock.calls)
	}
}

func TestEvaluate_RetriesUnavailable(t *testing.T) {
	unavailable := status.Error(codes.Unavailable, "down")
	mock := &mockEvaluatorService{
		evaluateErrs: []error{unavailable, unavailable},
		evaluateResp: mustStruct(t, map[string]interface{}{"undefined": false, "value": 2.0}),
	}
	c := noBackoff(NewClientWithService(mock))

	r, err := c.Evaluate(context.Background(), tangent.FromRadians(1))
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if v, _ := r.Float(); v != 2 {
		t.Errorf("expected 2, got %v", v)
	}
	if mock.calls != 3 {
		t.Errorf("expected 3 calls, got %d", mock.calls)
	}
}

func TestEvaluate_GivesUpAfterMaxRetries(t *testing.T) {
	unavailable := status.Error(codes.Unavailable, "down")
	mock := &mockEvaluatorService{evaluateErrs: []error{unavailable, unavailable, unavailable, unavailable}}
	c := noBackoff(NewClientWithService(mock))

	_, err := c.Evaluate(context.Background(), tangent.FromRadians(1))
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
	if mock.calls != maxRetries+1 {
		t.Errorf("expected %d calls, got %d", maxRetries+1, mock.calls)
	}
}

func TestEvaluate_CancelledDuringBackoff(t *testing.T) {
	unavailable := status.Error(codes.Unavailable, "down")
	mock := &mockEvaluatorService{evaluateErrs: []error{unavailable, unavailable, unavailable}}
	c := NewClientWithService(mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Evaluate(ctx, tangent.FromRadians(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// #endregion evaluate-tests

// #region is-undefined-tests
func TestIsUndefined_Success(t *testing.T) {
	mock := &mockEvaluatorService{undefinedResp: mustStruct(t, map[string]interface{}{"undefined": true})}
	undef, err := NewClientWithService(mock).IsUndefined(context.Background(), tangent.FromDegrees(90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !undef {
		t.Error("expected undefined")
	}
}

func TestIsUndefined_Error(t *testing.T) {
	mock := &mockEvaluatorService{undefinedErr: status.Error(codes.InvalidArgument, "bad")}
	if _, err := NewClientWithService(mock).IsUndefined(context.Background(), tangent.FromDegrees(90)); err == nil {
		t.Fatal("expected error")
	}
}

// #endregion is-undefined-tests

// #region retry-policy-tests
func TestRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	unavailable := status.Error(codes.Unavailable, "down")

	if p.ShouldRetry(nil, 1) {
		t.Error("should not retry success")
	}
	if !p.ShouldRetry(unavailable, 1) || !p.ShouldRetry(unavailable, 2) {
		t.Error("should retry Unavailable within budget")
	}
	if p.ShouldRetry(unavailable, 3) {
		t.Error("should not retry after 3 attempts")
	}
	if p.ShouldRetry(status.Error(codes.InvalidArgument, "bad"), 1) {
		t.Error("should not retry InvalidArgument")
	}
}

// #endregion retry-policy-tests
