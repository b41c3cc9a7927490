package transport

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ChainServiceName is the gRPC health service name reported for the engine.
const ChainServiceName = "blockinsight7000.spv.Chain"

type readiness interface {
	Initialized() bool
}

// UpdateHealth reports the server as serving once chain is initialized.
func UpdateHealth(srv *health.Server, chain readiness) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if chain.Initialized() {
		status = healthpb.HealthCheckResponse_SERVING
	}
	srv.SetServingStatus("", status)
	srv.SetServingStatus(ChainServiceName, status)
	return status
}
