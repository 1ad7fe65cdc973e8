package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, shop *model.Shop) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, shop *model.Shop, input *apiclient.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, shop *model.Shop, id string, input *apiclient.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, shop *model.Shop, id string) error
	SearchProducts(ctx context.Context, shop *model.Shop, query string) ([]model.Product, error)
}

// DraftUseCase drives the product create/edit wizard.
type DraftUseCase interface {
	StartDraft(ctx context.Context, shop *model.Shop, input *dto.StartDraftInput) (*dto.DraftView, error)
	GetDraft(ctx context.Context, id string) (*dto.DraftView, error)
	UpdateDetails(ctx context.Context, id string, input *dto.DetailsInput) (*dto.DraftView, error)
	AddTags(ctx context.Context, id string, input *dto.TagInput) (*dto.DraftView, error)
	RemoveTag(ctx context.Context, id string, input *dto.TagInput) (*dto.DraftView, error)
	GenerateVariants(ctx context.Context, id string, input *dto.GenerateInput) (*dto.DraftView, error)
	UpdateVariant(ctx context.Context, id string, index int, input *dto.VariantInput) (*dto.DraftView, error)
	AddImage(ctx context.Context, id string, input *dto.ImageInput) (*dto.DraftView, error)
	RemoveImage(ctx context.Context, id, imageID string) (*dto.DraftView, error)
	SetCover(ctx context.Context, id, imageID string) (*dto.DraftView, error)
	Next(ctx context.Context, id string) (*dto.DraftView, error)
	Back(ctx context.Context, id string) (*dto.DraftView, error)
	Submit(ctx context.Context, shop *model.Shop, id string) (*model.Product, error)
	Discard(ctx context.Context, id string) error
}
