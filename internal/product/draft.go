package product

import (
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/upload"
	"github.com/fekuna/omnipos-storefront/internal/product/variant"
	"github.com/shopspring/decimal"
)

const (
	DraftStepDetails  = 1
	DraftStepMedia    = 2
	DraftStepVariants = 3
	DraftStepReview   = 4
)

// DraftForm is the form state shared by every product wizard step.
type DraftForm struct {
	Name         string                 `json:"name" validate:"required,max=200"`
	Description  string                 `json:"description" validate:"max=5000"`
	Price        decimal.Decimal        `json:"price"`
	DisplayPrice *decimal.Decimal       `json:"display_price,omitempty"`
	Variants     []model.ProductVariant `json:"variants" validate:"dive"`
}

// Draft is an in-progress product create or edit. It lives only in process
// memory: its image tracker owns running upload goroutines.
type Draft struct {
	mu sync.Mutex

	ID        string
	OwnerID   string
	ShopID    string
	ProductID string // empty when creating
	Step      int
	Form      DraftForm
	Sizes     variant.TagList
	Colors    variant.TagList
	Images    *upload.Tracker
	UpdatedAt time.Time
}

// Lock serializes concurrent requests against the same draft.
func (d *Draft) Lock()   { d.mu.Lock() }
func (d *Draft) Unlock() { d.mu.Unlock() }

func (d *Draft) Editing() bool {
	return d.ProductID != ""
}
