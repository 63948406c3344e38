package metrics

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type GrpcMetrics struct {
	requestDuration metric.Float64Histogram
	requestsTotal   metric.Int64Counter
	errorsTotal     metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

func NewGrpcMetrics(meter metric.Meter) (*GrpcMetrics, error) {
	gm := &GrpcMetrics{}

	var err error

	gm.requestDuration, err = meter.Float64Histogram(
		"grpc.server.request_duration",
		metric.WithDescription("gRPC request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	)
	if err != nil {
		return nil, err
	}

	gm.requestsTotal, err = meter.Int64Counter(
		"grpc.server.requests_total",
		metric.WithDescription("Total number of gRPC requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	gm.errorsTotal, err = meter.Int64Counter(
		"grpc.server.errors_total",
		metric.WithDescription("Total number of gRPC errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	gm.activeRequests, err = meter.Int64UpDownCounter(
		"grpc.server.active_requests",
		metric.WithDescription("Number of active gRPC requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return gm, nil
}

func (gm *GrpcMetrics) enabled() bool {
	return gm != nil && gm.requestDuration != nil
}

// UnaryServerInterceptor records latency, traffic, errors and saturation per method.
func (gm *GrpcMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !gm.enabled() {
			return handler(ctx, req)
		}

		service, method := splitMethodName(info.FullMethod)
		methodAttrs := metric.WithAttributes(
			attribute.String("grpc_service", service),
			attribute.String("grpc_method", method),
		)

		gm.activeRequests.Add(ctx, 1, methodAttrs)
		defer gm.activeRequests.Add(ctx, -1, methodAttrs)

		start := time.Now()
		resp, err := handler(ctx, req)

		code := codes.OK
		if err != nil {
			code = codes.Unknown
			if s, ok := status.FromError(err); ok {
				code = s.Code()
			}
		}

		attrs := metric.WithAttributes(
			attribute.String("grpc_service", service),
			attribute.String("grpc_method", method),
			attribute.String("grpc_code", code.String()),
		)
		gm.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		gm.requestsTotal.Add(ctx, 1, attrs)
		if code != codes.OK {
			gm.errorsTotal.Add(ctx, 1, attrs)
		}

		return resp, err
	}
}

// splitMethodName splits "/package.Service/Method" into service and method
func splitMethodName(fullMethod string) (string, string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[:i], fullMethod[i+1:]
	}
	return "unknown", fullMethod
}
