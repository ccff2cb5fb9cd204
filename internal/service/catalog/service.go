package catalog

import (
	"context"
	"errors"
	"strings"

	"timepiece-store/internal/domain"
	watchrepo "timepiece-store/internal/repository/watch"
)

// Service serves read-only storefront views of the watch catalog. Every call
// re-queries the store; there is no caching layer.
type Service struct {
	repo        watchRepo
	fileURLHost string
}

type watchRepo interface {
	Hero(ctx context.Context) (*domain.Watch, error)
	Featured(ctx context.Context) ([]domain.Watch, error)
	ListActive(ctx context.Context) ([]domain.Watch, error)
}

func New(repo watchrepo.Repository, fileURLHost string) *Service {
	return &Service{repo: repo, fileURLHost: fileURLHost}
}

// View is the flat record shape returned by the watches endpoints.
type View struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Badge       string `json:"badge"`
	ImageURL    string `json:"image_url"`
}

// Hero returns the active hero watch with the lowest sort key, or nil when
// none is flagged.
func (s *Service) Hero(ctx context.Context) (*View, error) {
	w, err := s.repo.Hero(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	v := s.toView(*w)
	return &v, nil
}

func (s *Service) Featured(ctx context.Context) ([]View, error) {
	watches, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(watches), nil
}

func (s *Service) All(ctx context.Context) ([]View, error) {
	watches, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(watches), nil
}

func (s *Service) toViews(watches []domain.Watch) []View {
	views := make([]View, 0, len(watches))
	for _, w := range watches {
		views = append(views, s.toView(w))
	}
	return views
}

func (s *Service) toView(w domain.Watch) View {
	return View{
		ID:          w.ID,
		Name:        w.Name,
		Tag:         w.Tag,
		Description: w.Description,
		Price:       w.Price,
		Currency:    w.Currency,
		Badge:       w.Badge,
		ImageURL:    s.ImageURL(w.Image),
	}
}

// ImageURL resolves a stored image path to a public URL, empty when the
// watch has no image attached.
func (s *Service) ImageURL(image string) string {
	if image == "" {
		return ""
	}
	return strings.TrimRight(s.fileURLHost, "/") + "/media/" + strings.TrimLeft(image, "/")
}
