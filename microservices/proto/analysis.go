// Package proto describes the analysis service contract. Messages travel as
// google.protobuf.Struct and are mapped onto the Go types below through JSON.
package proto

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
)

const (
	ServiceName   = "tenuki.analysis.AnalysisService"
	AnalyzeMethod = "/" + ServiceName + "/Analyze"
)

// Move is one played move in engine notation, color "B" or "W", coordinates like "Q16" or "pass".
type Move struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

type AnalyzeRequest struct {
	RequestID string         `json:"request_id"`
	Moves     []Move         `json:"moves"`
	Rules     string         `json:"rules,omitempty"`
	Komi      float64        `json:"komi,omitempty"`
	Region    *domain.Region `json:"region,omitempty"`
}

// AnalyzeResponse holds one evaluation per position, the empty board first.
type AnalyzeResponse struct {
	RequestID   string              `json:"request_id"`
	Evaluations []domain.Evaluation `json:"evaluations"`
}

// ToStruct converts a message to its wire form.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return s, nil
}

// FromStruct fills v from its wire form.
func FromStruct(s *structpb.Struct, v any) error {
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

type AnalysisServiceServer interface {
	Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type AnalysisServiceClient interface {
	Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type analysisServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalysisServiceClient(cc grpc.ClientConnInterface) AnalysisServiceClient {
	return &analysisServiceClient{cc: cc}
}

func (c *analysisServiceClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AnalyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterAnalysisServiceServer(s grpc.ServiceRegistrar, srv AnalysisServiceServer) {
	s.RegisterService(&AnalysisServiceDesc, srv)
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServiceServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var AnalysisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler:    analyzeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "analysis.proto",
}
