package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// CatalogueClient calls a remote catalogue service and converts documents back to shows.
type CatalogueClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogueClient(cc grpc.ClientConnInterface) *CatalogueClient {
	return &CatalogueClient{cc: cc}
}

// ListShows returns every show in the remote catalogue.
func (c *CatalogueClient) ListShows(ctx context.Context, opts ...grpc.CallOption) ([]models.Show, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("ListShows"), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	shows, _, err := convertListFromProto(out)
	return shows, err
}

// GetShow returns the show with the given title.
func (c *CatalogueClient) GetShow(ctx context.Context, title string, opts ...grpc.CallOption) (models.Show, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetShow"), wrapperspb.String(title), out, opts...); err != nil {
		return models.Show{}, err
	}
	return convertShowFromProto(out)
}

// AddShow adds show and returns the updated list.
func (c *CatalogueClient) AddShow(ctx context.Context, show models.Show, opts ...grpc.CallOption) ([]models.Show, error) {
	in, err := convertShowToProto(show)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("AddShow"), in, out, opts...); err != nil {
		return nil, err
	}
	shows, _, err := convertListFromProto(out)
	return shows, err
}

// RemoveShow removes the show with the given title. applied is false when it was absent.
func (c *CatalogueClient) RemoveShow(ctx context.Context, title string, opts ...grpc.CallOption) (shows []models.Show, applied bool, err error) {
	return c.invokeTitle(ctx, "RemoveShow", title, opts)
}

// ToggleWatched flips the watched flag of the show. applied is false when it was absent.
func (c *CatalogueClient) ToggleWatched(ctx context.Context, title string, opts ...grpc.CallOption) (shows []models.Show, applied bool, err error) {
	return c.invokeTitle(ctx, "ToggleWatched", title, opts)
}

func (c *CatalogueClient) invokeTitle(ctx context.Context, method, title string, opts []grpc.CallOption) ([]models.Show, bool, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), wrapperspb.String(title), out, opts...); err != nil {
		return nil, false, err
	}
	return convertListFromProto(out)
}
