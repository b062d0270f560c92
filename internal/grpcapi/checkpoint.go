package grpcapi

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/wire"
)

// checkpointService adapts the clearance services to CheckpointServer.
type checkpointService struct {
	validator   *service.Validator
	revoker     *service.RevocationAuthority
	checkpoints *service.CheckpointRecorder
	logger      *logger.Logger
}

// fail converts err to a status. Internal causes are logged here since the
// status only carries the generic message.
func (s *checkpointService) fail(op string, err error) error {
	if apperr.CodeOf(err) == apperr.CodeInternal {
		s.logger.Error(op+" failed", "error", err)
	}
	return apperr.ToGRPCStatus(err)
}

func (s *checkpointService) ResolveClearance(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	view, err := s.validator.Resolve(ctx, in.GetValue())
	if err != nil {
		return nil, s.fail("resolve clearance", err)
	}
	return s.toStruct(view)
}

func (s *checkpointService) RevokeClearance(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	c, err := s.revoker.Revoke(ctx, in.GetValue(), types.RevokeRequest{RevokedBy: "checkpoint scanner"})
	if err != nil {
		return nil, s.fail("revoke clearance", err)
	}
	return s.toStruct(c)
}

func (s *checkpointService) RecordEntry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req types.RecordEntryRequest
	if err := wire.FromStruct(in, &req); err != nil {
		return nil, apperr.ToGRPCStatus(apperr.InvalidInput("invalid entry request"))
	}
	e, err := s.checkpoints.Record(ctx, req)
	if err != nil {
		return nil, s.fail("record entry", err)
	}
	return s.toStruct(e)
}

func (s *checkpointService) toStruct(v any) (*structpb.Struct, error) {
	out, err := wire.ToStruct(v)
	if err != nil {
		return nil, s.fail("encode response", apperr.Internal("encode response", err))
	}
	return out, nil
}
