package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/product/upload"
	"github.com/fekuna/omnipos-storefront/internal/product/variant"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type draftUseCase struct {
	drafts        product.DraftRepository
	products      product.UseCase
	uploader      upload.Uploader
	uploadTimeout time.Duration
	validate      *validator.Validate
	logger        logger.ZapLogger
}

func NewDraftUseCase(drafts product.DraftRepository, products product.UseCase, uploader upload.Uploader, uploadTimeout time.Duration, log logger.ZapLogger) product.DraftUseCase {
	return &draftUseCase{
		drafts:        drafts,
		products:      products,
		uploader:      uploader,
		uploadTimeout: uploadTimeout,
		validate:      wizard.NewValidator(),
		logger:        log,
	}
}

func (uc *draftUseCase) schema(d *product.Draft) *wizard.Schema[product.DraftForm] {
	return wizard.NewSchema("product", uc.validate,
		wizard.Step[product.DraftForm]{
			Name:     "details",
			Required: []string{"Name", "Description"},
			Check:    checkPrices,
		},
		wizard.Step[product.DraftForm]{
			Name: "media",
			Check: func(ctx context.Context, _ *product.DraftForm) (wizard.FieldErrors, error) {
				if d.Images.Len() == 0 {
					return wizard.FieldErrors{
						"images": i18n.T("product.no_images", nil, i18n.LanguagesFromContext(ctx)...),
					}, nil
				}
				return nil, nil
			},
		},
		wizard.Step[product.DraftForm]{
			Name:     "variants",
			Required: []string{"Variants"},
			Check: func(ctx context.Context, f *product.DraftForm) (wizard.FieldErrors, error) {
				if len(f.Variants) == 0 {
					return wizard.FieldErrors{
						"variants": i18n.T("product.no_variants", nil, i18n.LanguagesFromContext(ctx)...),
					}, nil
				}
				return nil, nil
			},
		},
		wizard.Step[product.DraftForm]{
			Name: "review",
		},
	)
}

func checkPrices(ctx context.Context, f *product.DraftForm) (wizard.FieldErrors, error) {
	langs := i18n.LanguagesFromContext(ctx)
	fields := wizard.FieldErrors{}
	if !f.Price.IsPositive() {
		fields["price"] = i18n.T("product.price_positive", nil, langs...)
	}
	if f.DisplayPrice != nil && f.DisplayPrice.LessThan(f.Price) {
		fields["display_price"] = i18n.T("product.display_price_low", nil, langs...)
	}
	return fields, nil
}

func (uc *draftUseCase) StartDraft(ctx context.Context, shop *model.Shop, input *dto.StartDraftInput) (*dto.DraftView, error) {
	d := &product.Draft{
		ID:        uuid.New().String(),
		OwnerID:   auth.GetSessionID(ctx),
		ShopID:    shop.ID,
		Step:      product.DraftStepDetails,
		Images:    upload.NewTracker(uc.uploader, uc.uploadTimeout, uc.logger),
		UpdatedAt: time.Now(),
	}

	if input.ProductID != "" {
		p, err := uc.products.GetProduct(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if p.ShopID != shop.ID {
			return nil, product.ErrProductNotFound
		}
		d.ProductID = p.ID
		d.Form = product.DraftForm{
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			DisplayPrice: p.DisplayPrice,
			Variants:     append([]model.ProductVariant(nil), p.Variants...),
		}
		d.Sizes, d.Colors = variant.Tags(p.Variants)
		for _, img := range p.SortedImages() {
			d.Images.AddHosted(img.URL, img.Color)
		}
	}

	uc.drafts.Save(d)
	return uc.view(d), nil
}

// load returns the draft locked; the caller must Unlock it.
func (uc *draftUseCase) load(ctx context.Context, id string) (*product.Draft, error) {
	d, ok := uc.drafts.Find(id)
	if !ok || d.OwnerID != auth.GetSessionID(ctx) {
		return nil, product.ErrDraftNotFound
	}
	d.Lock()
	return d, nil
}

// mutate runs fn against the locked draft and stores the result.
func (uc *draftUseCase) mutate(ctx context.Context, id string, fn func(d *product.Draft) error) (*dto.DraftView, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	uc.drafts.Save(d)
	return uc.view(d), nil
}

func (uc *draftUseCase) view(d *product.Draft) *dto.DraftView {
	sc := uc.schema(d)
	v := &dto.DraftView{
		ID:           d.ID,
		ProductID:    d.ProductID,
		ShopID:       d.ShopID,
		Step:         d.Step,
		StepName:     sc.StepName(d.Step),
		TotalSteps:   sc.Last(),
		Name:         d.Form.Name,
		Description:  d.Form.Description,
		Price:        d.Form.Price,
		DisplayPrice: d.Form.DisplayPrice,
		Sizes:        append([]string{}, d.Sizes...),
		Colors:       append([]string{}, d.Colors...),
		Variants:     append([]model.ProductVariant{}, d.Form.Variants...),
		Images:       d.Images.Snapshot(),
	}
	if err := d.Images.Ready(); err != nil {
		v.Blocked = err.Error()
	}
	return v
}

func (uc *draftUseCase) GetDraft(ctx context.Context, id string) (*dto.DraftView, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()
	return uc.view(d), nil
}

func (uc *draftUseCase) UpdateDetails(ctx context.Context, id string, input *dto.DetailsInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		if input.Name != nil {
			d.Form.Name = *input.Name
		}
		if input.Description != nil {
			d.Form.Description = *input.Description
		}
		if input.Price != nil {
			d.Form.Price = *input.Price
		}
		switch {
		case input.ClearDisplayPrice:
			d.Form.DisplayPrice = nil
		case input.DisplayPrice != nil:
			dp := *input.DisplayPrice
			d.Form.DisplayPrice = &dp
		}
		return nil
	})
}

func (uc *draftUseCase) AddTags(ctx context.Context, id string, input *dto.TagInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		switch input.Kind {
		case dto.TagSize:
			d.Sizes = d.Sizes.Add(input.Value)
		case dto.TagColor:
			d.Colors = d.Colors.Add(input.Value)
		default:
			return product.ErrUnknownTagKind
		}
		return nil
	})
}

func (uc *draftUseCase) RemoveTag(ctx context.Context, id string, input *dto.TagInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		switch input.Kind {
		case dto.TagSize:
			d.Sizes = d.Sizes.Remove(input.Value)
		case dto.TagColor:
			d.Colors = d.Colors.Remove(input.Value)
		default:
			return product.ErrUnknownTagKind
		}
		return nil
	})
}

func (uc *draftUseCase) GenerateVariants(ctx context.Context, id string, input *dto.GenerateInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		generated, err := variant.Generate(d.Sizes, d.Colors, input.Stock)
		if err != nil {
			return err
		}
		replaced, err := variant.Replace(d.Form.Variants, generated, input.Confirm)
		if err != nil {
			return err
		}
		d.Form.Variants = replaced
		return nil
	})
}

func (uc *draftUseCase) UpdateVariant(ctx context.Context, id string, index int, input *dto.VariantInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		if index < 0 || index >= len(d.Form.Variants) {
			return product.ErrVariantNotFound
		}
		v := &d.Form.Variants[index]
		if input.Stock != nil {
			if *input.Stock < 0 {
				return variant.ErrNegativeStock
			}
			v.Stock = *input.Stock
		}
		if input.SKU != nil {
			if *input.SKU == "" {
				v.SKU = nil
			} else {
				sku := *input.SKU
				v.SKU = &sku
			}
		}
		return nil
	})
}

// AddImage starts the upload in the background and returns immediately with
// the image marked uploading.
func (uc *draftUseCase) AddImage(ctx context.Context, id string, input *dto.ImageInput) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		d.Images.Add(input.Filename, input.Data, input.Color)
		return nil
	})
}

func (uc *draftUseCase) RemoveImage(ctx context.Context, id, imageID string) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		return d.Images.Remove(imageID)
	})
}

func (uc *draftUseCase) SetCover(ctx context.Context, id, imageID string) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		return d.Images.SetCover(imageID)
	})
}

func (uc *draftUseCase) Next(ctx context.Context, id string) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		next, err := uc.schema(d).Next(ctx, d.Step, &d.Form)
		if err != nil {
			return err
		}
		d.Step = next
		return nil
	})
}

func (uc *draftUseCase) Back(ctx context.Context, id string) (*dto.DraftView, error) {
	return uc.mutate(ctx, id, func(d *product.Draft) error {
		d.Step = uc.schema(d).Back(d.Step)
		return nil
	})
}

// Submit saves the product. Pending or failed uploads reject it before any
// backend call is made.
func (uc *draftUseCase) Submit(ctx context.Context, shop *model.Shop, id string) (*model.Product, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	if d.ShopID != shop.ID {
		return nil, product.ErrDraftNotFound
	}
	if d.Step != product.DraftStepReview {
		return nil, product.ErrNotAtReview
	}
	if err := d.Images.Ready(); err != nil {
		return nil, err
	}

	sc := uc.schema(d)
	for step := sc.First(); step <= sc.Last(); step++ {
		if err := sc.Validate(ctx, step, &d.Form); err != nil {
			return nil, err
		}
	}

	variants := append([]model.ProductVariant(nil), d.Form.Variants...)
	variant.AssignSKUs(d.Form.Name, variants)

	input := &apiclient.ProductInput{
		Name:         d.Form.Name,
		Description:  d.Form.Description,
		Price:        d.Form.Price,
		DisplayPrice: d.Form.DisplayPrice,
		Images:       d.Images.ProductImages(),
		Variants:     variants,
	}

	var p *model.Product
	if d.Editing() {
		p, err = uc.products.UpdateProduct(ctx, shop, d.ProductID, input)
	} else {
		p, err = uc.products.CreateProduct(ctx, shop, input)
	}
	if err != nil {
		return nil, err
	}

	uc.drafts.Delete(d.ID)
	uc.logger.Info("product draft submitted", zap.String("draft_id", d.ID), zap.String("product_id", p.ID))
	return p, nil
}

func (uc *draftUseCase) Discard(ctx context.Context, id string) error {
	d, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	defer d.Unlock()
	uc.drafts.Delete(d.ID)
	return nil
}
