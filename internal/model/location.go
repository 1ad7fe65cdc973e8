package model

type City struct {
	ID   int64  `json:"city_id"`
	Name string `json:"city_name"`
}

type Zone struct {
	ID   int64  `json:"zone_id"`
	Name string `json:"zone_name"`
}

type Area struct {
	ID                    int64  `json:"area_id"`
	Name                  string `json:"area_name"`
	HomeDeliveryAvailable bool   `json:"home_delivery_available"`
	PickupAvailable       bool   `json:"pickup_available"`
}
