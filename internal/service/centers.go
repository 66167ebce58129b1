package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/internal/repository"
	"github.com/arjun/bikewash/pkg/geo"
)

// ErrCenterNotFound mirrors the repository sentinel so handlers only
// depend on the service package.
var ErrCenterNotFound = repository.ErrCenterNotFound

// CenterSource is the catalog read interface. Satisfied by
// repository.CenterRepository; tests substitute an in-memory source.
type CenterSource interface {
	ListCenters(ctx context.Context) ([]model.WashCenter, error)
	GetCenter(ctx context.Context, id string) (model.WashCenter, error)
}

// CenterService serves the wash-center catalog to the booking flow,
// optionally annotated with the distance from the customer's location.
type CenterService struct {
	src CenterSource
}

// NewCenterService creates a center service over the given source.
func NewCenterService(src CenterSource) *CenterService {
	return &CenterService{src: src}
}

// List returns the catalog. When from is non-nil each center carries
// its distance from that point and the result is sorted nearest-first;
// otherwise catalog order (by name) is kept.
func (s *CenterService) List(ctx context.Context, from *model.Location) ([]model.WashCenter, error) {
	centers, err := s.src.ListCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("centers: %w", err)
	}
	if from != nil {
		centers = geo.AnnotateDistances(centers, *from)
	}
	return centers, nil
}

// Get returns one center by id.
func (s *CenterService) Get(ctx context.Context, id string) (model.WashCenter, error) {
	c, err := s.src.GetCenter(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCenterNotFound) {
			return model.WashCenter{}, ErrCenterNotFound
		}
		return model.WashCenter{}, fmt.Errorf("centers: %w", err)
	}
	return c, nil
}
