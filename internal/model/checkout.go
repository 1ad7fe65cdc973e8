package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CheckoutStepSelection    = 1
	CheckoutStepShipping     = 2
	CheckoutStepVerification = 3
	CheckoutStepPayment      = 4
)

// CheckoutForm is the single form-state object shared by every checkout step.
type CheckoutForm struct {
	Items         []OrderItem   `json:"items" validate:"min=1,dive"`
	FullName      string        `json:"full_name" validate:"required"`
	Phone         string        `json:"phone" validate:"required,number,len=10"`
	District      string        `json:"district" validate:"required"`
	Address       string        `json:"address"`
	CityID        int64         `json:"city_id" validate:"required"`
	ZoneID        int64         `json:"zone_id" validate:"required"`
	AreaID        int64         `json:"area_id,omitempty"`
	OTP           string        `json:"otp" validate:"required,number"`
	OTPSentAt     *time.Time    `json:"otp_sent_at,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=COD QR ESEWA KHALTI"`
}

func (f CheckoutForm) Value() (driver.Value, error) {
	return jsonValue(f)
}

func (f *CheckoutForm) Scan(src interface{}) error {
	return scanJSON(src, f)
}

// ProductSnapshot freezes what checkout needs from a product when the session starts.
type ProductSnapshot struct {
	Name     string           `json:"name"`
	Price    decimal.Decimal  `json:"price"`
	Variants []ProductVariant `json:"variants"`
	CoverURL string           `json:"cover_url,omitempty"`
}

func NewProductSnapshot(p *Product) ProductSnapshot {
	s := ProductSnapshot{
		Name:     p.Name,
		Price:    p.Price,
		Variants: p.Variants,
	}
	if c := p.Cover(); c != nil {
		s.CoverURL = c.URL
	}
	return s
}

func (s ProductSnapshot) Value() (driver.Value, error) {
	return jsonValue(s)
}

func (s *ProductSnapshot) Scan(src interface{}) error {
	return scanJSON(src, s)
}

type CheckoutSession struct {
	BaseModel
	OwnerID   string          `db:"owner_id" json:"-"`
	ProductID string          `db:"product_id" json:"product_id"`
	ShopID    string          `db:"shop_id" json:"shop_id"`
	Step      int             `db:"step" json:"step"`
	Product   ProductSnapshot `db:"product" json:"product"`
	Form      CheckoutForm    `db:"form" json:"form"`
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported json column type")
	}
}
