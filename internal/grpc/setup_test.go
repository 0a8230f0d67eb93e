package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// startServer serves c on a random local port and returns a connected client.
func startServer(t *testing.T, c Catalogue) *grpc.ClientConn {
	t.Helper()
	srv := NewGRPCServer(c, zerolog.Nop())

	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewGRPCServer_HealthCheck(t *testing.T) {
	conn := startServer(t, newTestCatalogue(t))
	healthClient := grpc_health_v1.NewHealthClient(conn)

	for _, service := range []string{"", ServiceName} {
		resp, err := healthClient.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("Health check %q failed: %v", service, err)
		}
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Errorf("Expected SERVING status for %q, got %v", service, resp.Status)
		}
	}
}

func TestNewGRPCServer_ReflectionEnabled(t *testing.T) {
	conn := startServer(t, newTestCatalogue(t))

	reflectionClient := grpc_reflection_v1.NewServerReflectionClient(conn)
	stream, err := reflectionClient.ServerReflectionInfo(context.Background())
	if err != nil {
		t.Fatalf("Failed to create reflection stream: %v", err)
	}

	err = stream.Send(&grpc_reflection_v1.ServerReflectionRequest{
		MessageRequest: &grpc_reflection_v1.ServerReflectionRequest_ListServices{
			ListServices: "",
		},
	})
	if err != nil {
		t.Fatalf("Failed to send reflection request: %v", err)
	}

	resp, err := stream.Recv()
	if err != nil {
		t.Fatalf("Failed to receive reflection response: %v", err)
	}

	found := false
	for _, svc := range resp.GetListServicesResponse().GetService() {
		if svc.Name == ServiceName {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected %s to be registered", ServiceName)
	}
}

func TestNewGRPCServer_CalledMultipleTimes(t *testing.T) {
	// sync.Once prevents double-registration panics
	srv1 := NewGRPCServer(newTestCatalogue(t), zerolog.Nop())
	srv2 := NewGRPCServer(newTestCatalogue(t), zerolog.Nop())
	if srv1 == nil || srv2 == nil {
		t.Fatal("Expected non-nil gRPC servers")
	}
}

func TestCatalogueClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	client := NewCatalogueClient(startServer(t, newTestCatalogue(t)))

	shows, err := client.AddShow(ctx, models.NewShow("Foo", 12, false))
	if err != nil || len(shows) != 1 {
		t.Fatalf("AddShow() = %+v, %v", shows, err)
	}

	if _, err := client.AddShow(ctx, models.NewShow("Foo", 5, false)); status.Code(err) != codes.AlreadyExists {
		t.Errorf("duplicate AddShow() code = %v, want AlreadyExists", status.Code(err))
	}

	shows, applied, err := client.ToggleWatched(ctx, "Foo")
	if err != nil || !applied || !shows[0].IsWatched {
		t.Errorf("ToggleWatched() = %+v, %v, %v", shows, applied, err)
	}

	show, err := client.GetShow(ctx, "Foo")
	if err != nil || show != models.NewShow("Foo", 12, true) {
		t.Errorf("GetShow() = %+v, %v", show, err)
	}

	if _, err := client.GetShow(ctx, "Bar"); status.Code(err) != codes.NotFound {
		t.Errorf("GetShow(Bar) code = %v, want NotFound", status.Code(err))
	}

	shows, applied, err = client.RemoveShow(ctx, "Foo")
	if err != nil || !applied || len(shows) != 0 {
		t.Errorf("RemoveShow() = %+v, %v, %v", shows, applied, err)
	}

	shows, err = client.ListShows(ctx)
	if err != nil || len(shows) != 0 {
		t.Errorf("ListShows() = %+v, %v", shows, err)
	}
}

func TestNewGRPCServer_RecoversPanics(t *testing.T) {
	ctx := context.Background()
	client := NewCatalogueClient(startServer(t, &mockCatalogue{Service: newTestCatalogue(t), panicMsg: "boom"}))

	_, err := client.AddShow(ctx, models.NewShow("Foo", 1, false))
	if status.Code(err) != codes.Internal {
		t.Fatalf("AddShow() code = %v, want Internal", status.Code(err))
	}

	// The server keeps serving after a panic.
	if _, err := client.ListShows(ctx); err != nil {
		t.Errorf("ListShows() after panic: %v", err)
	}
}
