// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/mediator"
	"github.com/taibuivan/configlang/pkg/pointer"
	"github.com/taibuivan/configlang/pkg/slice"
)

// # Service Definition
//
// The service is described with protobuf well-known types, so clients in any
// language can call it without a generated package:
//
//	service LangService {
//	  rpc GetLang(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc GetAllLang(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	}

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "configlang.v1.LangService"

const (
	methodGetLang    = "/" + ServiceName + "/GetLang"
	methodGetAllLang = "/" + ServiceName + "/GetAllLang"
)

// LangServiceServer is the server API of LangService.
type LangServiceServer interface {
	GetLang(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
	GetAllLang(ctx context.Context, in *emptypb.Empty) (*structpb.ListValue, error)
}

// LangServiceDesc describes LangService for [grpc.ServiceRegistrar].
var LangServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LangServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLang", Handler: getLangHandler},
		{MethodName: "GetAllLang", Handler: getAllLangHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "configlang/v1/lang.proto",
}

func getLangHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LangServiceServer).GetLang(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetLang}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(LangServiceServer).GetLang(ctx, req.(*wrapperspb.StringValue))
	})
}

func getAllLangHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LangServiceServer).GetAllLang(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetAllLang}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(LangServiceServer).GetAllLang(ctx, req.(*emptypb.Empty))
	})
}

// # Server

// GRPCService implements [LangServiceServer] on top of the mediator.
type GRPCService struct {
	mediator *mediator.Mediator
	logger   *slog.Logger
}

var _ LangServiceServer = (*GRPCService)(nil)

// NewGRPCService constructs the gRPC adapter.
func NewGRPCService(m *mediator.Mediator, logger *slog.Logger) *GRPCService {
	return &GRPCService{mediator: m, logger: logger}
}

// Register attaches the service to a gRPC server.
func (s *GRPCService) Register(registrar grpc.ServiceRegistrar) {
	registrar.RegisterService(&LangServiceDesc, s)
}

// GetLang returns one Lang as a Struct with id, description, vn and en.
func (s *GRPCService) GetLang(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := in.GetValue()

	lang, err := mediator.Send[GetLangByIDQuery, *Lang](ctx, s.mediator, GetLangByIDQuery{ID: id})
	if err != nil {
		return nil, s.toStatus(ctx, err, id)
	}

	out, err := toStruct(lang)
	if err != nil {
		return nil, s.toStatus(ctx, err, id)
	}
	return out, nil
}

// GetAllLang returns every Lang as a list of Structs ordered by key.
func (s *GRPCService) GetAllLang(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	langs, err := mediator.Send[GetAllLangQuery, []*Lang](ctx, s.mediator, GetAllLangQuery{})
	if err != nil {
		return nil, s.toStatus(ctx, err, "")
	}

	values, err := slice.TryMap(langs, func(lang *Lang) (*structpb.Value, error) {
		item, err := toStruct(lang)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(item), nil
	})
	if err != nil {
		return nil, s.toStatus(ctx, err, "")
	}
	return &structpb.ListValue{Values: values}, nil
}

// toStatus maps application errors onto gRPC status codes. Internal details
// never leave the process.
func (s *GRPCService) toStatus(ctx context.Context, err error, id string) error {
	switch appErr := apperr.As(err); {
	case appErr != nil && appErr.Code == apperr.CodeNotFound:
		return status.Errorf(codes.NotFound, "Language with id '%s' not found.", id)
	case appErr != nil && appErr.Code == apperr.CodeValidation:
		return status.Error(codes.InvalidArgument, strings.Join(appErr.Messages(), "; "))
	default:
		s.logger.ErrorContext(ctx, "grpc_request_failed",
			slog.String("lang_id", id),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "Internal server error.")
	}
}

func toStruct(lang *Lang) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":          lang.ID,
		"description": pointer.Any(lang.Description),
		"vn":          lang.Vn,
		"en":          pointer.Any(lang.En),
	})
}

// # Client

// Client calls LangService over an existing connection.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// GetLang fetches one Lang by key.
func (c *Client) GetLang(ctx context.Context, id string, opts ...grpc.CallOption) (*Lang, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, methodGetLang, wrapperspb.String(id), out, opts...); err != nil {
		return nil, err
	}

	var lang Lang
	if err := decodeMessage(out, &lang); err != nil {
		return nil, err
	}
	return &lang, nil
}

// GetAllLang fetches every Lang.
func (c *Client) GetAllLang(ctx context.Context, opts ...grpc.CallOption) ([]*Lang, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, methodGetAllLang, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}

	langs := make([]*Lang, 0, len(out.GetValues()))
	if err := decodeMessage(out, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// decodeMessage converts a Struct or ListValue into Go values via its JSON form.
func decodeMessage(message proto.Message, target any) error {
	payload, err := protojson.Marshal(message)
	if err != nil {
		return fmt.Errorf("lang: encode response: %w", err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("lang: decode response: %w", err)
	}
	return nil
}
