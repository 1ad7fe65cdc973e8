package dto

type CreateShopInput struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	LogoURL      string  `json:"logo" validate:"omitempty,url"`
	Category     string  `json:"category" validate:"omitempty,max=50"`
	CourierID    *string `json:"courier_id" validate:"omitempty,min=1"`
	AutoDispatch bool    `json:"auto_dispatch"`
}

// UpdateShopInput is a partial update. An empty courier_id disconnects the courier.
type UpdateShopInput struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	LogoURL      *string `json:"logo" validate:"omitempty,url"`
	Category     *string `json:"category" validate:"omitempty,max=50"`
	CourierID    *string `json:"courier_id"`
	AutoDispatch *bool   `json:"auto_dispatch"`
}
