package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/oracle"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region client-struct
// Client talks to a remote orb.v1.Oracle service.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// NewClient connects to the orb server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a Client over an existing connection.
// Close does not close cc.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Close shuts down a connection opened by NewClient.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion client-struct

// #region ask
// Ask submits a question for sessionID.
func (c *Client) Ask(ctx context.Context, sessionID string, in gate.AskInput) (oracle.Result, error) {
	req, err := structpb.NewStruct(map[string]interface{}{
		"session_id": sessionID,
		"question":   in.Question,
		"tone":       in.Tone,
	})
	if err != nil {
		return oracle.Result{}, fmt.Errorf("encode request: %w", err)
	}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, askMethod, req, resp); err != nil {
		return oracle.Result{}, fmt.Errorf("ask rpc: %w", err)
	}

	m := resp.AsMap()
	rm, ok := m["reading"].(map[string]interface{})
	if !ok {
		return oracle.Result{}, fmt.Errorf("ask rpc: reply has no reading")
	}
	rec, err := readingFromMap(rm)
	if err != nil {
		return oracle.Result{}, fmt.Errorf("decode reading: %w", err)
	}
	sm, _ := m["state"].(map[string]interface{})
	st, err := stateFromMap(sm)
	if err != nil {
		return oracle.Result{}, fmt.Errorf("decode state: %w", err)
	}
	return oracle.Result{Reading: rec, State: st, Version: versionFromMap(m)}, nil
}

// #endregion ask

// #region state
// State fetches the current snapshot of sessionID.
func (c *Client) State(ctx context.Context, sessionID string) (state.Snapshot, error) {
	req, err := structpb.NewStruct(map[string]interface{}{"session_id": sessionID})
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("encode request: %w", err)
	}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getStateMethod, req, resp); err != nil {
		return state.Snapshot{}, fmt.Errorf("get state rpc: %w", err)
	}

	m := resp.AsMap()
	sm, _ := m["state"].(map[string]interface{})
	st, err := stateFromMap(sm)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("decode state: %w", err)
	}
	snap := state.Snapshot{SessionID: sessionID, Version: versionFromMap(m), State: st}
	if ts, ok := m["updated_at"].(string); ok {
		if snap.UpdatedAt, err = state.ParseTimestamp(ts); err != nil {
			return state.Snapshot{}, err
		}
	}
	return snap, nil
}

// #endregion state

// #region sessions
// Sessions lists the sessions the server has committed readings for.
func (c *Client) Sessions(ctx context.Context) ([]string, error) {
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listMethod, &structpb.Struct{}, resp); err != nil {
		return nil, fmt.Errorf("list sessions rpc: %w", err)
	}
	raw, _ := resp.AsMap()["sessions"].([]interface{})
	ids := make([]string, 0, len(raw))
	for i, v := range raw {
		id, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("sessions[%d]: expected string, got %T", i, v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// #endregion sessions
