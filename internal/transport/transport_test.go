package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/oracle"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region helpers

func startServer(t *testing.T) *Client {
	t.Helper()
	store, err := state.NewStore(":memory:")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	gs := NewGRPCServer(oracle.New(store), zap.NewNop())
	go gs.Serve(lis)

	c, err := NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		gs.Stop()
		store.Close()
	})
	return c
}

func sampleState() state.ApplicationState {
	s := state.Empty()
	for i := 1; i <= 3; i++ {
		s = state.ApplyReading(s, state.ReadingRecord{
			ID:       fmt.Sprintf("r%d", i),
			Question: fmt.Sprintf("Question %d?", i),
			Response: catalog.ResponseEntry{
				ID:          "not-now",
				Tone:        catalog.ToneNegative,
				Title:       "Not Now",
				Description: "Timing is off—wait for the cosmic currents to change.",
				Color:       "#E5484D",
			},
			Timestamp: time.Date(2026, 10, 14, 9, 0, i, 250, time.UTC),
		})
	}
	return s
}

// #endregion

func TestStateMapRoundTrip(t *testing.T) {
	want := sampleState()
	pb, err := structpb.NewStruct(stateToMap(want))
	require.NoError(t, err)

	got, err := stateFromMap(pb.AsMap())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyStateMapRoundTrip(t *testing.T) {
	pb, err := structpb.NewStruct(stateToMap(state.Empty()))
	require.NoError(t, err)
	got, err := stateFromMap(pb.AsMap())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestReadingFromMapErrors(t *testing.T) {
	good := readingToMap(sampleState().History[0])

	missing := map[string]interface{}{"id": "r1"}
	_, err := readingFromMap(missing)
	assert.Error(t, err)

	badTone := readingToMap(sampleState().History[0])
	badTone["response"].(map[string]interface{})["tone"] = "ecstatic"
	_, err = readingFromMap(badTone)
	assert.Error(t, err)

	badTime := readingToMap(sampleState().History[0])
	badTime["timestamp"] = "later"
	_, err = readingFromMap(badTime)
	assert.Error(t, err)

	_, err = readingFromMap(good)
	assert.NoError(t, err)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{&gate.ValidationError{Field: "question", Message: "too short"}, codes.InvalidArgument},
		{oracle.ErrNoSession, codes.InvalidArgument},
		{fmt.Errorf("commit: %w", state.ErrStaleState), codes.Aborted},
		{context.Canceled, codes.Canceled},
		{fmt.Errorf("load: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{errors.New("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(toStatus(tt.err)), "error %v", tt.err)
	}
}

func TestAskOverGRPC(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	res, err := c.Ask(ctx, "s1", gate.AskInput{Question: "Will my idea spark something incredible?"})
	require.NoError(t, err)

	assert.Equal(t, "destiny-aligned", res.Reading.Response.ID)
	assert.Equal(t, catalog.TonePositive, res.Reading.Response.Tone)
	assert.Equal(t, "#74F0AC", res.Reading.Response.Color)
	assert.Equal(t, int64(1), res.Version)
	require.NotNil(t, res.State.Active)
	assert.Equal(t, res.Reading.ID, res.State.Active.ID)
	assert.False(t, res.Reading.Timestamp.IsZero())

	snap, err := c.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Version)
	assert.False(t, snap.UpdatedAt.IsZero())
	if diff := cmp.Diff(res.State, snap.State); diff != "" {
		t.Fatalf("state mismatch (-ask +get):\n%s", diff)
	}
}

func TestAskOverGRPCWithToneFilter(t *testing.T) {
	c := startServer(t)
	res, err := c.Ask(context.Background(), "s1", gate.AskInput{Question: "Café tomorrow?", Tone: "negative"})
	require.NoError(t, err)
	assert.Equal(t, "let-go", res.Reading.Response.ID)
}

func TestAskOverGRPCValidation(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	_, err := c.Ask(ctx, "s1", gate.AskInput{Question: "no"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.Ask(ctx, "", gate.AskInput{Question: "Valid question?"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	snap, err := c.State(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, snap.State.IsEmpty())
	assert.Equal(t, int64(0), snap.Version)
	assert.True(t, snap.UpdatedAt.IsZero())
}

func TestHistoryBoundOverGRPC(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	for i := 1; i <= 13; i++ {
		_, err := c.Ask(ctx, "s1", gate.AskInput{Question: fmt.Sprintf("Remote question %d?", i)})
		require.NoError(t, err)
	}
	snap, err := c.State(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, snap.State.History, state.HistoryLimit)
	assert.Equal(t, "Remote question 13?", snap.State.Active.Question)
}

func TestListSessionsOverGRPC(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	ids, err := c.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"alice", "bob", "alice"} {
		_, err := c.Ask(ctx, id, gate.AskInput{Question: "Who is asking?"})
		require.NoError(t, err)
	}

	ids, err = c.Sessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

func TestCloseWithoutOwnedConn(t *testing.T) {
	c := NewClientWithConn(nil)
	assert.NoError(t, c.Close())
}
