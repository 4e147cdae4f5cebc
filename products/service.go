package products

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/jrsteele09/go-storefront-api/internal/utils"
)

const (
	NothingToUpdateMsg = "nothing to update"
	InvalidIDMsg       = "invalid product id"
	NotFoundMsg        = "product not found"
	NameRequiredMsg    = "name is required"
	DescRequiredMsg    = "description is required"
	PriceRequiredMsg   = "price is required"
	InvalidPriceMsg    = "price must be zero or greater"
)

// Service is plain CRUD over products with attribution of who created and changed them.
type Service struct {
	repo         ProductRepo
	systemUserID string
	nowTime      func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithSystemUserID sets the creator recorded when no actor is known
func WithSystemUserID(id string) ServiceOption {
	return func(s *Service) {
		if id != "" {
			s.systemUserID = id
		}
	}
}

func NewService(repo ProductRepo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[products.NewService] product repo is required")
	}
	s := &Service{
		repo:         repo,
		systemUserID: "system",
		nowTime:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Create stores a new product attributed to actorID, or to the system identity when empty
func (s *Service) Create(ctx context.Context, in ProductInput, actorID string) (*Product, error) {
	in.normalise()
	switch {
	case in.Name == "":
		return nil, apperrors.Validation(NameRequiredMsg)
	case in.Description == "":
		return nil, apperrors.Validation(DescRequiredMsg)
	case in.Price == nil:
		return nil, apperrors.Validation(PriceRequiredMsg)
	case !validPrice(*in.Price):
		return nil, apperrors.Validation(InvalidPriceMsg)
	}

	createdBy := actorID
	if createdBy == "" {
		createdBy = s.systemUserID
	}
	now := s.nowTime().UTC()
	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		CreatedBy:   createdBy,
		UpdatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, repoError(err, "[Create] create product")
	}
	log.Info().Str("product_id", p.ID).Str("created_by", createdBy).Msg("product created")
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, "[List] list products")
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "[Get] get product")
	}
	return p, nil
}

// Update applies the allow-listed fields of update to product id
func (s *Service) Update(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	if update.Empty() {
		return nil, apperrors.Validation(NothingToUpdateMsg)
	}
	update.Name = utils.MapPtr(update.Name, strings.TrimSpace)
	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.Validation(NameRequiredMsg)
	}
	update.Description = utils.MapPtr(update.Description, strings.TrimSpace)
	if update.Description != nil && *update.Description == "" {
		return nil, apperrors.Validation(DescRequiredMsg)
	}
	if update.Price != nil && !validPrice(*update.Price) {
		return nil, apperrors.Validation(InvalidPriceMsg)
	}

	p, err := s.repo.Update(ctx, id, update, s.nowTime().UTC())
	if err != nil {
		return nil, repoError(err, "[Update] update product")
	}
	return p, nil
}

// Delete removes product id and returns the removed record
func (s *Service) Delete(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, repoError(err, "[Delete] delete product")
	}
	log.Info().Str("product_id", id).Msg("product deleted")
	return p, nil
}

func repoError(err error, op string) error {
	switch {
	case errors.Is(err, InvalidIDErr):
		return apperrors.Validation(InvalidIDMsg)
	case errors.Is(err, ProductNotFoundErr):
		return apperrors.NotFound(NotFoundMsg)
	default:
		return apperrors.Internal("storage failure", errors.Wrap(err, op))
	}
}
