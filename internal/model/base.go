package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote API exchanges money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
