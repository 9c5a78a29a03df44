package api

import (
	"context"
	"fmt"
	"log"

	"github.com/trufnetwork/tnattest/internal/codec"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DecodePayload decodes a binary attestation payload into a JSON-shaped
// struct. When an archive is configured the decoded payload is persisted;
// archive failures are logged but do not fail the request, the decode
// result is authoritative.
func (s *AttestService) DecodePayload(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.Struct, error) {
	raw, err := s.payloadBytes(req)
	if err != nil {
		return nil, err
	}

	p, err := codec.DecodePayload(raw)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("decode payload: %v", err))
	}

	if s.queries != nil {
		if _, err := s.queries.Store(p, raw); err != nil {
			log.Printf("archive store failed: %v", err)
		}
	}

	out, err := PayloadToStruct(p)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("convert payload: %v", err))
	}
	return out, nil
}

// DecodeQueryResult decodes a standalone canonical query result buffer.
func (s *AttestService) DecodeQueryResult(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.ListValue, error) {
	raw, err := s.payloadBytes(req)
	if err != nil {
		return nil, err
	}

	rows, err := codec.DecodeQueryResult(raw)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("decode query result: %v", err))
	}

	out, err := RowsToList(rows)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("convert rows: %v", err))
	}
	return out, nil
}

// payloadBytes validates the request envelope and enforces the configured
// size limit before any decoding work happens.
func (s *AttestService) payloadBytes(req *wrapperspb.BytesValue) ([]byte, error) {
	if req == nil || len(req.Value) == 0 {
		return nil, status.Error(codes.InvalidArgument, "payload required")
	}
	if len(req.Value) > s.cfg.MaxPayloadBytes {
		return nil, status.Error(codes.InvalidArgument,
			fmt.Sprintf("payload exceeds maximum of %d bytes", s.cfg.MaxPayloadBytes))
	}
	return req.Value, nil
}
