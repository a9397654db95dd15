package car

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/AadiZee/car-system-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldModel        = "model"
	fieldMake         = "make"
	fieldCategory     = "category"
	fieldColor        = "color"
	fieldRegistration = "registration_number"
	fieldPhotoKey     = "photo_key"
)

const (
	defaultPageLimit = 5
	photoURLTTL      = 15 * time.Minute
)

type Service interface {
	Create(ctx context.Context, req domain.CreateCarRequest) (*domain.Car, error)
	Get(ctx context.Context, carID string) (*domain.Car, error)
	Update(ctx context.Context, carID string, req domain.UpdateCarRequest) (*domain.Car, error)
	Delete(ctx context.Context, carID string) error
	List(ctx context.Context) ([]domain.Car, error)
	Paginate(ctx context.Context, req domain.PaginateCarsRequest) (*domain.CarPage, error)
	AttachPhoto(ctx context.Context, carID string, r io.Reader, contentType string) (*domain.Car, error)
	PhotoURL(ctx context.Context, carID string) (string, error)
}

type carStore interface {
	Create(ctx context.Context, c *domain.Car) error
	ExistsByRegistration(ctx context.Context, registrationNumber string) (bool, error)
	GetByID(ctx context.Context, carID string) (*domain.Car, error)
	Update(ctx context.Context, carID string, updates map[string]interface{}) (*domain.Car, error)
	Delete(ctx context.Context, carID string) (*domain.Car, error)
	Scan(ctx context.Context) ([]domain.Car, error)
}

type photoStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo   carStore
	photos photoStore
}

func NewService(repo carStore, photos photoStore) Service {
	return &service{repo: repo, photos: photos}
}

func (s *service) Create(ctx context.Context, req domain.CreateCarRequest) (*domain.Car, error) {
	// Friendly pre-check; the conditional put arbitrates races.
	taken, err := s.repo.ExistsByRegistration(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("registration number already exists: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	c := &domain.Car{
		CarID:              id.New(),
		Model:              req.Model,
		Make:               req.Make,
		Category:           req.Category,
		Color:              req.Color,
		RegistrationNumber: req.RegistrationNumber,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, carID string) (*domain.Car, error) {
	return s.repo.GetByID(ctx, carID)
}

func (s *service) Update(ctx context.Context, carID string, req domain.UpdateCarRequest) (*domain.Car, error) {
	updates := map[string]interface{}{}
	if req.Model != nil {
		updates[fieldModel] = *req.Model
	}
	if req.Make != nil {
		updates[fieldMake] = *req.Make
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.Color != nil {
		updates[fieldColor] = *req.Color
	}
	if req.RegistrationNumber != nil {
		updates[fieldRegistration] = *req.RegistrationNumber
	}
	if len(updates) == 0 {
		return s.repo.GetByID(ctx, carID)
	}
	return s.repo.Update(ctx, carID, updates)
}

func (s *service) Delete(ctx context.Context, carID string) error {
	c, err := s.repo.Delete(ctx, carID)
	if err != nil {
		return err
	}
	if c.PhotoKey != "" {
		if err := s.photos.Delete(ctx, c.PhotoKey); err != nil {
			slog.Warn("could not delete car photo", "car_id", carID, "key", c.PhotoKey, "err", err)
		}
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sortByIDDesc(cars)
	return cars, nil
}

// Paginate slices the inventory into page/limit windows, newest first.
func (s *service) Paginate(ctx context.Context, req domain.PaginateCarsRequest) (*domain.CarPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	cars, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sortByIDDesc(cars)

	total := len(cars)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	docs := cars[start:end]
	if docs == nil {
		docs = []domain.Car{}
	}
	return &domain.CarPage{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}, nil
}

func (s *service) AttachPhoto(ctx context.Context, carID string, r io.Reader, contentType string) (*domain.Car, error) {
	c, err := s.repo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("cars/%s/photo", c.CarID)
	if err := s.photos.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, carID, map[string]interface{}{fieldPhotoKey: key})
}

func (s *service) PhotoURL(ctx context.Context, carID string) (string, error) {
	c, err := s.repo.GetByID(ctx, carID)
	if err != nil {
		return "", err
	}
	if c.PhotoKey == "" {
		return "", fmt.Errorf("car has no photo: %w", domain.ErrNotFound)
	}
	return s.photos.PresignedURL(ctx, c.PhotoKey, photoURLTTL)
}

// sortByIDDesc orders newest first; ULIDs sort lexicographically by
// creation time.
func sortByIDDesc(cars []domain.Car) {
	sort.Slice(cars, func(i, j int) bool { return cars[i].CarID > cars[j].CarID })
}
