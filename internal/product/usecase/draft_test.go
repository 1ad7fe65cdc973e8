package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/product/repository"
	"github.com/fekuna/omnipos-storefront/internal/product/upload"
	"github.com/fekuna/omnipos-storefront/internal/product/variant"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct {
	product.UseCase
	mu       sync.Mutex
	existing map[string]*model.Product
	created  []*apiclient.ProductInput
	updated  []*apiclient.ProductInput
}

func (s *stubProducts) GetProduct(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.existing[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (s *stubProducts) CreateProduct(_ context.Context, shop *model.Shop, in *apiclient.ProductInput) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, in)
	return &model.Product{BaseModel: model.BaseModel{ID: "p-new"}, ShopID: shop.ID, Name: in.Name}, nil
}

func (s *stubProducts) UpdateProduct(_ context.Context, shop *model.Shop, id string, in *apiclient.ProductInput) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, in)
	return &model.Product{BaseModel: model.BaseModel{ID: id}, ShopID: shop.ID, Name: in.Name}, nil
}

// instantUploader finishes every upload immediately unless the file is named "fail.jpg".
type instantUploader struct{}

func (instantUploader) UploadImage(_ context.Context, filename string, _ []byte) (string, error) {
	if filename == "fail.jpg" {
		return "", &apiclient.APIError{StatusCode: 413}
	}
	return "https://cdn.example.com/" + filename, nil
}

// blockingUploader never finishes before its context expires.
type blockingUploader struct{}

func (blockingUploader) UploadImage(ctx context.Context, _ string, _ []byte) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func seller(sessionID string) context.Context {
	return auth.WithState(context.Background(), &appstate.State{SessionID: sessionID})
}

func newDraftHarness(uploader upload.Uploader) (*draftUseCase, *stubProducts) {
	products := &stubProducts{existing: map[string]*model.Product{}}
	uc := NewDraftUseCase(repository.NewMemoryDraftRepository(time.Hour), products, uploader, time.Second, logger.NewNop())
	return uc.(*draftUseCase), products
}

// waitUploads lets in-flight uploads settle before inspecting a draft.
func waitUploads(t *testing.T, uc *draftUseCase, id string) {
	t.Helper()
	d, ok := uc.drafts.Find(id)
	require.True(t, ok)
	d.Images.Wait()
}

func fillDraft(t *testing.T, uc *draftUseCase, ctx context.Context, id string) {
	t.Helper()
	name, desc := "Cotton Kurta", "Breathable summer wear"
	price := decimal.NewFromInt(1200)
	_, err := uc.UpdateDetails(ctx, id, &dto.DetailsInput{Name: &name, Description: &desc, Price: &price})
	require.NoError(t, err)
	_, err = uc.Next(ctx, id)
	require.NoError(t, err)

	_, err = uc.AddImage(ctx, id, &dto.ImageInput{Filename: "front.jpg", Data: []byte("x")})
	require.NoError(t, err)
	waitUploads(t, uc, id)
	_, err = uc.Next(ctx, id)
	require.NoError(t, err)

	_, err = uc.AddTags(ctx, id, &dto.TagInput{Kind: dto.TagSize, Value: "M, L"})
	require.NoError(t, err)
	_, err = uc.AddTags(ctx, id, &dto.TagInput{Kind: dto.TagColor, Value: "Red"})
	require.NoError(t, err)
	v, err := uc.GenerateVariants(ctx, id, &dto.GenerateInput{Stock: 4})
	require.NoError(t, err)
	require.Len(t, v.Variants, 2)

	v, err = uc.Next(ctx, id)
	require.NoError(t, err)
	require.Equal(t, product.DraftStepReview, v.Step)
}

func TestDraft_CreateFlow(t *testing.T) {
	uc, products := newDraftHarness(instantUploader{})
	ctx := seller("b-1")
	shop := &model.Shop{BaseModel: model.BaseModel{ID: "s-1"}}

	v, err := uc.StartDraft(ctx, shop, &dto.StartDraftInput{})
	require.NoError(t, err)
	assert.Equal(t, "details", v.StepName)

	_, err = uc.Next(ctx, v.ID)
	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	name := "Kurta"
	_, err = uc.UpdateDetails(ctx, v.ID, &dto.DetailsInput{Name: &name})
	require.NoError(t, err)
	_, err = uc.Next(ctx, v.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, wizard.FieldErrors{"price": "Price must be greater than zero"}, verr.Fields)

	_, err = uc.Submit(ctx, shop, v.ID)
	assert.ErrorIs(t, err, product.ErrNotAtReview)

	fillDraft(t, uc, ctx, v.ID)

	p, err := uc.Submit(ctx, shop, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "p-new", p.ID)

	require.Len(t, products.created, 1)
	in := products.created[0]
	require.Len(t, in.Variants, 2)
	assert.Equal(t, "COTTON-KURTA-M-RED", *in.Variants[0].SKU)
	require.Len(t, in.Images, 1)
	assert.Equal(t, 0, in.Images[0].Position)

	_, err = uc.GetDraft(ctx, v.ID)
	assert.ErrorIs(t, err, product.ErrDraftNotFound)
}

func TestDraft_SubmitBlockedByUploads(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		uc, products := newDraftHarness(instantUploader{})
		ctx := seller("b-1")
		shop := &model.Shop{BaseModel: model.BaseModel{ID: "s-1"}}
		v, err := uc.StartDraft(ctx, shop, &dto.StartDraftInput{})
		require.NoError(t, err)
		fillDraft(t, uc, ctx, v.ID)

		d, _ := uc.drafts.Find(v.ID)
		d.Images = upload.NewTracker(blockingUploader{}, time.Minute, logger.NewNop())
		d.Images.AddHosted("https://cdn.example.com/front.jpg", nil)

		view, err := uc.AddImage(ctx, v.ID, &dto.ImageInput{Filename: "back.jpg"})
		require.NoError(t, err)
		assert.Equal(t, upload.ErrUploadsPending.Error(), view.Blocked)

		_, err = uc.Submit(ctx, shop, v.ID)
		assert.ErrorIs(t, err, upload.ErrUploadsPending)
		assert.Empty(t, products.created)
	})

	t.Run("failed", func(t *testing.T) {
		uc, products := newDraftHarness(instantUploader{})
		ctx := seller("b-1")
		shop := &model.Shop{BaseModel: model.BaseModel{ID: "s-1"}}
		v, err := uc.StartDraft(ctx, shop, &dto.StartDraftInput{})
		require.NoError(t, err)
		fillDraft(t, uc, ctx, v.ID)

		_, err = uc.AddImage(ctx, v.ID, &dto.ImageInput{Filename: "fail.jpg"})
		require.NoError(t, err)
		waitUploads(t, uc, v.ID)

		_, err = uc.Submit(ctx, shop, v.ID)
		assert.ErrorIs(t, err, upload.ErrUploadsFailed)
		assert.Empty(t, products.created)

		view, err := uc.GetDraft(ctx, v.ID)
		require.NoError(t, err)
		_, err = uc.RemoveImage(ctx, v.ID, view.Images[1].ID)
		require.NoError(t, err)

		_, err = uc.Submit(ctx, shop, v.ID)
		require.NoError(t, err)
		assert.Len(t, products.created, 1)
	})
}

func TestDraft_EditExisting(t *testing.T) {
	uc, products := newDraftHarness(instantUploader{})
	ctx := seller("b-1")
	shop := &model.Shop{BaseModel: model.BaseModel{ID: "s-1"}}
	sku := "KURTA-M"
	products.existing["p-1"] = &model.Product{
		BaseModel: model.BaseModel{ID: "p-1"},
		ShopID:    "s-1",
		Name:      "Kurta",
		Price:     decimal.NewFromInt(900),
		Images: []model.ProductImage{
			{URL: "https://cdn.example.com/2.jpg", Position: 1},
			{URL: "https://cdn.example.com/1.jpg", Position: 0},
		},
		Variants: []model.ProductVariant{{Size: "M", Color: "Red", Stock: 2, SKU: &sku}},
	}
	products.existing["p-other"] = &model.Product{BaseModel: model.BaseModel{ID: "p-other"}, ShopID: "s-2"}

	_, err := uc.StartDraft(ctx, shop, &dto.StartDraftInput{ProductID: "p-other"})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	v, err := uc.StartDraft(ctx, shop, &dto.StartDraftInput{ProductID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"M"}, v.Sizes)
	assert.Equal(t, []string{"Red"}, v.Colors)
	require.Len(t, v.Images, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", v.Images[0].URL)

	t.Run("regenerating needs confirmation", func(t *testing.T) {
		_, err := uc.AddTags(ctx, v.ID, &dto.TagInput{Kind: dto.TagSize, Value: "L"})
		require.NoError(t, err)

		_, err = uc.GenerateVariants(ctx, v.ID, &dto.GenerateInput{Stock: 1})
		assert.ErrorIs(t, err, variant.ErrReplaceNotConfirmed)

		got, err := uc.GenerateVariants(ctx, v.ID, &dto.GenerateInput{Stock: 1, Confirm: true})
		require.NoError(t, err)
		assert.Len(t, got.Variants, 2)
	})

	t.Run("variant edits", func(t *testing.T) {
		neg := -1
		_, err := uc.UpdateVariant(ctx, v.ID, 0, &dto.VariantInput{Stock: &neg})
		assert.ErrorIs(t, err, variant.ErrNegativeStock)

		stock := 7
		_, err = uc.UpdateVariant(ctx, v.ID, 5, &dto.VariantInput{Stock: &stock})
		assert.ErrorIs(t, err, product.ErrVariantNotFound)

		got, err := uc.UpdateVariant(ctx, v.ID, 1, &dto.VariantInput{Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, 7, got.Variants[1].Stock)
	})

	for i := 0; i < 3; i++ {
		_, err = uc.Next(ctx, v.ID)
		require.NoError(t, err)
	}
	p, err := uc.Submit(ctx, shop, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	require.Len(t, products.updated, 1)
	assert.Empty(t, products.created)
}

func TestDraft_Ownership(t *testing.T) {
	uc, _ := newDraftHarness(instantUploader{})
	shop := &model.Shop{BaseModel: model.BaseModel{ID: "s-1"}}
	v, err := uc.StartDraft(seller("b-1"), shop, &dto.StartDraftInput{})
	require.NoError(t, err)

	_, err = uc.GetDraft(seller("b-2"), v.ID)
	assert.ErrorIs(t, err, product.ErrDraftNotFound)

	require.NoError(t, uc.Discard(seller("b-1"), v.ID))
	_, err = uc.GetDraft(seller("b-1"), v.ID)
	assert.ErrorIs(t, err, product.ErrDraftNotFound)
}

func TestCheckPrices(t *testing.T) {
	low := decimal.NewFromInt(100)
	fields, err := checkPrices(context.Background(), &product.DraftForm{Price: decimal.NewFromInt(200), DisplayPrice: &low})
	require.NoError(t, err)
	assert.Contains(t, fields, "display_price")
	assert.NotContains(t, fields, "price")

	fields, _ = checkPrices(context.Background(), &product.DraftForm{Price: decimal.Zero})
	assert.Contains(t, fields, "price")
}
