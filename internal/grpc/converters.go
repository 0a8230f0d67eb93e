package grpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// Field names of list responses.
const (
	fieldShows   = "shows"
	fieldApplied = "applied"
)

// convertShowToProto converts a models.Show to its document struct
func convertShowToProto(show models.Show) (*structpb.Struct, error) {
	return structpb.NewStruct(show.ToDocument())
}

// convertShowFromProto converts a document struct to a models.Show
func convertShowFromProto(doc *structpb.Struct) (models.Show, error) {
	if doc == nil {
		return models.Show{}, errors.New("missing show document")
	}
	return models.ShowFromDocument(doc.AsMap())
}

// convertListToProto builds a {shows, applied} response
func convertListToProto(shows []models.Show, applied bool) (*structpb.Struct, error) {
	docs := make([]any, len(shows))
	for i, show := range shows {
		docs[i] = show.ToDocument()
	}
	return structpb.NewStruct(map[string]any{
		fieldShows:   docs,
		fieldApplied: applied,
	})
}

// convertListFromProto reads a {shows, applied} response
func convertListFromProto(doc *structpb.Struct) ([]models.Show, bool, error) {
	values := doc.GetFields()[fieldShows].GetListValue().GetValues()
	shows := make([]models.Show, 0, len(values))
	for i, v := range values {
		s := v.GetStructValue()
		if s == nil {
			return nil, false, fmt.Errorf("show %d: expected document, got %T", i, v.GetKind())
		}
		show, err := models.ShowFromDocument(s.AsMap())
		if err != nil {
			return nil, false, fmt.Errorf("show %d: %w", i, err)
		}
		shows = append(shows, show)
	}
	return shows, doc.GetFields()[fieldApplied].GetBoolValue(), nil
}
