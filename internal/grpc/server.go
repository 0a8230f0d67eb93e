package grpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/reporting"
)

// Catalogue is the subset of catalogue.Service exposed over gRPC.
type Catalogue interface {
	Add(ctx context.Context, show models.Show) (models.Change, error)
	Remove(ctx context.Context, title string) (models.Change, error)
	ToggleWatched(ctx context.Context, title string) (models.Change, error)
	Get(title string) (models.Show, bool)
	List() []models.Show
}

// server implements the CatalogueServer interface
type server struct {
	catalogue Catalogue
	logger    zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(c Catalogue, logger zerolog.Logger) CatalogueServer {
	return &server{
		catalogue: c,
		logger:    logger.With().Str("component", "grpc").Logger(),
	}
}

// ListShows implements CatalogueServer.ListShows
func (s *server) ListShows(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.logger.Debug().Msg("ListShows called")
	return s.listResponse(ctx, true)
}

// GetShow implements CatalogueServer.GetShow
func (s *server) GetShow(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	title := req.GetValue()
	s.logger.Debug().Str("title", title).Msg("GetShow called")

	show, ok := s.catalogue.Get(title)
	if !ok {
		return nil, s.toStatus(ctx, "GetShow", apperrors.NewShowNotFoundError(title))
	}
	doc, err := convertShowToProto(show)
	if err != nil {
		return nil, s.toStatus(ctx, "GetShow", err)
	}
	return doc, nil
}

// AddShow implements CatalogueServer.AddShow
func (s *server) AddShow(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	show, err := convertShowFromProto(req)
	if err != nil {
		return nil, invalidShow(err)
	}
	s.logger.Debug().Str("title", show.Title).Msg("AddShow called")

	if _, err := s.catalogue.Add(ctx, show); err != nil {
		return nil, s.toStatus(ctx, "AddShow", err)
	}
	return s.listResponse(ctx, true)
}

// RemoveShow implements CatalogueServer.RemoveShow
func (s *server) RemoveShow(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.logger.Debug().Str("title", req.GetValue()).Msg("RemoveShow called")

	change, err := s.catalogue.Remove(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, "RemoveShow", err)
	}
	return s.listResponse(ctx, change.Applied)
}

// ToggleWatched implements CatalogueServer.ToggleWatched
func (s *server) ToggleWatched(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.logger.Debug().Str("title", req.GetValue()).Msg("ToggleWatched called")

	change, err := s.catalogue.ToggleWatched(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, "ToggleWatched", err)
	}
	return s.listResponse(ctx, change.Applied)
}

func (s *server) listResponse(ctx context.Context, applied bool) (*structpb.Struct, error) {
	resp, err := convertListToProto(s.catalogue.List(), applied)
	if err != nil {
		return nil, s.toStatus(ctx, "encode", err)
	}
	return resp, nil
}

// toStatus maps domain errors to gRPC status codes. Unexpected errors are
// logged and reported before being returned as Internal.
func (s *server) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, &apperrors.ErrDuplicateShow{}):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, &apperrors.ErrInvalidEpisodeCount{}):
		return invalidShow(err)
	}

	s.logger.Error().Err(err).Str("method", method).Msg("Catalogue command failed")
	reporting.CaptureError(ctx, err, map[string]string{"grpc.method": method})
	return status.Errorf(codes.Internal, "%s failed: %v", method, err)
}

// invalidShow builds an InvalidArgument status carrying a BadRequest detail.
func invalidShow(err error) error {
	field := models.FieldEpisodes
	if !errors.Is(err, &apperrors.ErrInvalidEpisodeCount{}) {
		field = "show"
	}
	st := status.New(codes.InvalidArgument, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: err.Error()},
		},
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
