// Package location resolves the City → Zone → Area delivery picker.
package location

// Selection is the three-level cascade. A level is only meaningful for the
// parent it was chosen under, so changing a parent clears everything below it.
type Selection struct {
	CityID int64 `json:"city_id"`
	ZoneID int64 `json:"zone_id"`
	AreaID int64 `json:"area_id"`
}

func (s *Selection) SelectCity(cityID int64) {
	if s.CityID != cityID {
		s.ZoneID = 0
		s.AreaID = 0
	}
	s.CityID = cityID
}

func (s *Selection) SelectZone(zoneID int64) {
	if s.ZoneID != zoneID {
		s.AreaID = 0
	}
	s.ZoneID = zoneID
}

func (s *Selection) SelectArea(areaID int64) {
	s.AreaID = areaID
}
