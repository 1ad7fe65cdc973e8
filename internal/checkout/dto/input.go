package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type StartInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateFormInput is a partial update: nil fields keep their current value.
type UpdateFormInput struct {
	Items         *[]model.OrderItem   `json:"items"`
	FullName      *string              `json:"full_name"`
	Phone         *string              `json:"phone"`
	District      *string              `json:"district"`
	Address       *string              `json:"address"`
	CityID        *int64               `json:"city_id"`
	ZoneID        *int64               `json:"zone_id"`
	AreaID        *int64               `json:"area_id"`
	OTP           *string              `json:"otp"`
	PaymentMethod *model.PaymentMethod `json:"payment_method"`
}

type SelectLocationInput struct {
	ID int64 `json:"id" binding:"required"`
}
