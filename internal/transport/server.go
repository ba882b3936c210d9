// Package transport exposes the oracle over gRPC. Messages are
// google.protobuf.Struct values so no generated stubs are needed.
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/oracle"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region server-struct
// Server implements OracleServer on top of an Oracle.
type Server struct {
	oracle *oracle.Oracle
}

// NewServer wraps o.
func NewServer(o *oracle.Oracle) *Server {
	return &Server{oracle: o}
}

// NewGRPCServer builds a grpc.Server with logging and the oracle service registered.
func NewGRPCServer(o *oracle.Oracle, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(unaryLogger(logger)))
	gs := grpc.NewServer(opts...)
	RegisterOracleServer(gs, NewServer(o))
	return gs
}

// #endregion server-struct

// #region ask
// Ask handles {session_id, question, tone} and replies with
// {reading, state, version}.
func (s *Server) Ask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.oracle.Ask(ctx, optionalString(req, "session_id"), gate.AskInput{
		Question: optionalString(req, "question"),
		Tone:     optionalString(req, "tone"),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"reading": readingToMap(res.Reading),
		"state":   stateToMap(res.State),
		"version": res.Version,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// #endregion ask

// #region get-state
// GetState handles {session_id} and replies with {state, version, updated_at}.
func (s *Server) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snap, err := s.oracle.State(ctx, optionalString(req, "session_id"))
	if err != nil {
		return nil, toStatus(err)
	}
	reply := map[string]interface{}{
		"state":   stateToMap(snap.State),
		"version": snap.Version,
	}
	if !snap.UpdatedAt.IsZero() {
		reply["updated_at"] = state.FormatTimestamp(snap.UpdatedAt)
	}
	out, err := structpb.NewStruct(reply)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// #endregion get-state

// #region list-sessions
// ListSessions ignores its request and replies with {sessions}, most
// recently updated first.
func (s *Server) ListSessions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ids, err := s.oracle.Sessions(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	list := make([]interface{}, len(ids))
	for i, id := range ids {
		list[i] = id
	}
	out, err := structpb.NewStruct(map[string]interface{}{"sessions": list})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// #endregion list-sessions

// #region errors
func toStatus(err error) error {
	var verr *gate.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, oracle.ErrNoSession):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, state.ErrStaleState):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, fmt.Sprintf("internal: %v", err))
}

// #endregion errors

// #region interceptor
func unaryLogger(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			logger.Warn("rpc failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("rpc", fields...)
		}
		return resp, err
	}
}

// #endregion interceptor
