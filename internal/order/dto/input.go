package dto

import (
	"github.com/shopspring/decimal"
)

// UpdateOrderInput is a partial update. Status may move between any two valid values.
type UpdateOrderInput struct {
	Status          *string          `json:"status" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	RecipientName   *string          `json:"recipient_name" validate:"omitempty,min=1"`
	RecipientPhone  *string          `json:"recipient_phone" validate:"omitempty,number,len=10"`
	Address         *string          `json:"address"`
	District        *string          `json:"district" validate:"omitempty,min=1"`
	CityID          *int64           `json:"city_id" validate:"omitempty,gt=0"`
	ZoneID          *int64           `json:"zone_id" validate:"omitempty,gt=0"`
	AreaID          *int64           `json:"area_id" validate:"omitempty,gt=0"`
	AmountToCollect *decimal.Decimal `json:"amount_to_collect"`
}
