package api

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/observability"
)

// Fully-qualified names of the scheduler RPC service.
const (
	ServiceName     = "contactscheduler.v1.ContactScheduler"
	SolveFullMethod = "/" + ServiceName + "/Solve"
)

// ContactSchedulerServer is the RPC surface. Requests and responses are
// google.protobuf.Struct documents in the same JSON shape as the HTTP API.
type ContactSchedulerServer interface {
	Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var contactSchedulerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ContactSchedulerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: solveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "contactscheduler/v1/contact_scheduler.proto",
}

// RegisterContactSchedulerServer registers srv on s.
func RegisterContactSchedulerServer(s grpc.ServiceRegistrar, srv ContactSchedulerServer) {
	s.RegisterService(&contactSchedulerServiceDesc, srv)
}

func solveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContactSchedulerServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SolveFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ContactSchedulerServer).Solve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the scheduler RPC service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Solve sends req and returns the report document.
func (c *Client) Solve(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SolveFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type schedulerServer struct {
	svc *Service
}

func (g *schedulerServer) Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, ToStatusError(fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}
	sreq, err := DecodeSolveRequest(raw)
	if err != nil {
		return nil, ToStatusError(err)
	}
	report, err := g.svc.Solve(ctx, sreq)
	if err != nil {
		return nil, ToStatusError(err)
	}
	out, err := reportStruct(report)
	if err != nil {
		return nil, ToStatusError(err)
	}
	return out, nil
}

func reportStruct(r *instance.Report) (*structpb.Struct, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return out, nil
}

// NewGRPCServer builds a gRPC server exposing the scheduler service and the
// standard health service. collector may be nil.
func NewGRPCServer(svc *Service, log logging.Logger, collector *observability.APICollector) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{RequestIDUnaryServerInterceptor(log)}
	if collector != nil {
		interceptors = append(interceptors, collector.UnaryServerInterceptor())
	}
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors...),
	)
	RegisterContactSchedulerServer(server, &schedulerServer{svc: svc})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)
	return server
}
