package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/product/variant"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/search"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

const indexName = "products"

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"shop_id": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"price": { "type": "double" },
			"sizes": { "type": "keyword" },
			"colors": { "type": "keyword" },
			"cover_url": { "type": "keyword", "index": false },
			"created_at": { "type": "date" }
		}
	}
}`

type Backend interface {
	ShopProducts(ctx context.Context, shopID string) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, in *apiclient.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in *apiclient.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Index is the search engine surface; *search.Client satisfies it.
type Index interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResult, error)
	Delete(ctx context.Context, index, id string) error
}

type productUseCase struct {
	backend Backend
	cache   *querycache.Cache
	es      Index
	logger  logger.ZapLogger
}

// NewProductUseCase builds the product use case. es may be nil, in which case
// search filters the cached product list.
func NewProductUseCase(backend Backend, cache *querycache.Cache, es Index, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		backend: backend,
		cache:   cache,
		es:      es,
		logger:  log,
	}
}

// EnsureIndex creates the search index if it does not exist yet.
func EnsureIndex(ctx context.Context, es Index) error {
	return es.CreateIndex(ctx, indexName, indexMapping)
}

func (uc *productUseCase) ListProducts(ctx context.Context, shop *model.Shop) ([]model.Product, error) {
	return querycache.Fetch(ctx, uc.cache, querycache.ShopProductsKey(shop.ID), func(ctx context.Context) ([]model.Product, error) {
		return uc.backend.ShopProducts(ctx, shop.ID)
	})
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := querycache.Fetch(ctx, uc.cache, querycache.ProductKey(id), func(ctx context.Context) (*model.Product, error) {
		return uc.backend.GetProduct(ctx, id)
	})
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// owned loads a product and hides products of other shops.
func (uc *productUseCase) owned(ctx context.Context, shop *model.Shop, id string) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ShopID != shop.ID {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, shop *model.Shop, input *apiclient.ProductInput) (*model.Product, error) {
	input.ShopID = shop.ID
	p, err := uc.backend.CreateProduct(ctx, input)
	if err != nil {
		uc.logger.Error("failed to create product", zap.String("shop_id", shop.ID), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx, querycache.MutationProductCreate, querycache.Scope{ShopID: shop.ID, ProductID: p.ID})
	go uc.syncToElastic(context.Background(), p)

	uc.logger.Info("product created", zap.String("product_id", p.ID), zap.String("shop_id", shop.ID))
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, shop *model.Shop, id string, input *apiclient.ProductInput) (*model.Product, error) {
	if _, err := uc.owned(ctx, shop, id); err != nil {
		return nil, err
	}

	input.ShopID = shop.ID
	p, err := uc.backend.UpdateProduct(ctx, id, input)
	if err != nil {
		uc.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx, querycache.MutationProductUpdate, querycache.Scope{ShopID: shop.ID, ProductID: id})
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, shop *model.Shop, id string) error {
	if _, err := uc.owned(ctx, shop, id); err != nil {
		return err
	}

	if err := uc.backend.DeleteProduct(ctx, id); err != nil {
		uc.logger.Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		return err
	}

	uc.cache.Invalidate(ctx, querycache.MutationProductDelete, querycache.Scope{ShopID: shop.ID, ProductID: id})
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), indexName, id); err != nil {
				uc.logger.Error("failed to delete product from search index", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, indexName, p.ID, toDocument(p)); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func toDocument(p *model.Product) dto.ProductDocument {
	sizes, colors := variant.Tags(p.Variants)
	doc := dto.ProductDocument{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Sizes:       sizes,
		Colors:      colors,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c := p.Cover(); c != nil {
		doc.CoverURL = c.URL
	}
	return doc
}

// SearchProducts ranks with the search index when one is configured and falls
// back to a case-insensitive name match over the shop's product list.
func (uc *productUseCase) SearchProducts(ctx context.Context, shop *model.Shop, query string) ([]model.Product, error) {
	products, err := uc.ListProducts(ctx, shop)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return products, nil
	}

	if uc.es != nil {
		ids, err := uc.searchIndex(ctx, shop.ID, query)
		if err == nil {
			return pick(products, ids), nil
		}
		uc.logger.Error("search index query failed, falling back to list filter", zap.Error(err))
	}

	fold := cases.Fold()
	needle := fold.String(query)
	var out []model.Product
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (uc *productUseCase) searchIndex(ctx context.Context, shopID, query string) ([]string, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     query,
							"fields":    []string{"name^3", "description", "sizes", "colors"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"shop_id": shopID}},
				},
			},
		},
		"size": 50,
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc dto.ProductDocument
		if err := json.Unmarshal(hit.Source, &doc); err == nil && doc.ID != "" {
			ids = append(ids, doc.ID)
			continue
		}
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// pick returns the products named by ids in ids order. Hits for products the
// list no longer contains are stale index entries and are dropped.
func pick(products []model.Product, ids []string) []model.Product {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
