package health

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestProbe(t *testing.T) {
	m := NewMonitor(zap.NewNop())
	var storeErr error
	m.Add("orders", func(context.Context) error { return storeErr })
	m.Add("sessions", func(context.Context) error { return nil })

	res := m.Probe(context.Background())
	assert.Len(t, res, 2)
	ok, detail := m.Healthy()
	assert.True(t, ok)
	assert.Equal(t, "healthy", detail["orders"])

	storeErr = errors.New("connection refused")
	m.Probe(context.Background())
	ok, detail = m.Healthy()
	assert.False(t, ok)
	assert.Equal(t, "unhealthy", detail["orders"])
	assert.Equal(t, "healthy", detail["sessions"])
}

func TestServe_GRPCHealth(t *testing.T) {
	m := NewMonitor(zap.NewNop())
	fail := false
	m.Add("orders", func(context.Context) error {
		if fail {
			return errors.New("down")
		}
		return nil
	})
	m.Probe(context.Background())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s, _ := m.Serve(lis)
	defer s.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: Service})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	fail = true
	m.Probe(context.Background())
	resp, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: Service})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
