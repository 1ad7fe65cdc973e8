package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.CheckoutSession) error
	FindByID(ctx context.Context, id string) (*model.CheckoutSession, error)
	Update(ctx context.Context, s *model.CheckoutSession) error
	Delete(ctx context.Context, id string) error
}
