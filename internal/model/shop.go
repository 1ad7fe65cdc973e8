package model

type Shop struct {
	BaseModel
	Name     string `json:"name"`
	OwnerID  string `json:"owner_id"`
	LogoURL  string `json:"logo,omitempty"`
	Category string `json:"category,omitempty"`
	// CourierID is the courier-side store id. Nil when no integration is configured.
	CourierID    *string `json:"courier_id"`
	AutoDispatch bool    `json:"auto_dispatch"`
}

func (s *Shop) HasCourier() bool {
	return s != nil && s.CourierID != nil && *s.CourierID != ""
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
