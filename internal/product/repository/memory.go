package repository

import (
	"time"

	"github.com/fekuna/omnipos-storefront/internal/product"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryDraftRepository keeps drafts in process memory with a sliding TTL.
type MemoryDraftRepository struct {
	c *gocache.Cache
}

func NewMemoryDraftRepository(ttl time.Duration) *MemoryDraftRepository {
	return &MemoryDraftRepository{c: gocache.New(ttl, ttl/2)}
}

func (r *MemoryDraftRepository) Save(d *product.Draft) {
	r.c.Set(d.ID, d, gocache.DefaultExpiration)
}

func (r *MemoryDraftRepository) Find(id string) (*product.Draft, bool) {
	v, ok := r.c.Get(id)
	if !ok {
		return nil, false
	}
	d, ok := v.(*product.Draft)
	return d, ok
}

func (r *MemoryDraftRepository) Delete(id string) {
	r.c.Delete(id)
}
