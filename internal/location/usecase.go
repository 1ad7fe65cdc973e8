package location

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

var (
	ErrCityRequired = errors.New("select a city first")
	ErrZoneRequired = errors.New("select a zone first")
	ErrUnknownCity  = errors.New("city is not served by the courier")
	ErrUnknownZone  = errors.New("zone does not belong to the selected city")
	ErrUnknownArea  = errors.New("area does not belong to the selected zone")
)

// Directory is the courier lookup surface of the backend.
type Directory interface {
	Cities(ctx context.Context) ([]model.City, error)
	Zones(ctx context.Context, cityID int64) ([]model.Zone, error)
	Areas(ctx context.Context, zoneID int64) ([]model.Area, error)
}

type UseCase struct {
	dir    Directory
	cache  *querycache.Cache
	logger logger.ZapLogger
}

func NewUseCase(dir Directory, cache *querycache.Cache, log logger.ZapLogger) *UseCase {
	return &UseCase{dir: dir, cache: cache, logger: log}
}

func (uc *UseCase) Cities(ctx context.Context) ([]model.City, error) {
	return querycache.Fetch(ctx, uc.cache, querycache.CitiesKey(), uc.dir.Cities)
}

// Zones is only answered once a city is chosen.
func (uc *UseCase) Zones(ctx context.Context, cityID int64) ([]model.Zone, error) {
	if cityID == 0 {
		return nil, ErrCityRequired
	}
	return querycache.Fetch(ctx, uc.cache, querycache.ZonesKey(cityID), func(ctx context.Context) ([]model.Zone, error) {
		return uc.dir.Zones(ctx, cityID)
	})
}

func (uc *UseCase) Areas(ctx context.Context, zoneID int64) ([]model.Area, error) {
	if zoneID == 0 {
		return nil, ErrZoneRequired
	}
	return querycache.Fetch(ctx, uc.cache, querycache.AreasKey(zoneID), func(ctx context.Context) ([]model.Area, error) {
		return uc.dir.Areas(ctx, zoneID)
	})
}

// SelectCity validates cityID and applies it, clearing zone and area when it changed.
func (uc *UseCase) SelectCity(ctx context.Context, sel *Selection, cityID int64) error {
	cities, err := uc.Cities(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, c := range cities {
		if c.ID == cityID {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownCity
	}
	sel.SelectCity(cityID)
	return nil
}

func (uc *UseCase) SelectZone(ctx context.Context, sel *Selection, zoneID int64) error {
	ok, err := uc.ZoneInCity(ctx, sel.CityID, zoneID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownZone
	}
	sel.SelectZone(zoneID)
	return nil
}

func (uc *UseCase) SelectArea(ctx context.Context, sel *Selection, areaID int64) error {
	ok, err := uc.AreaInZone(ctx, sel.ZoneID, areaID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownArea
	}
	sel.SelectArea(areaID)
	return nil
}

// ZoneInCity reports whether zoneID is one of cityID's zones.
func (uc *UseCase) ZoneInCity(ctx context.Context, cityID, zoneID int64) (bool, error) {
	zones, err := uc.Zones(ctx, cityID)
	if err != nil {
		return false, err
	}
	for _, z := range zones {
		if z.ID == zoneID {
			return true, nil
		}
	}
	return false, nil
}

// AreaInZone reports whether areaID is one of zoneID's areas.
func (uc *UseCase) AreaInZone(ctx context.Context, zoneID, areaID int64) (bool, error) {
	areas, err := uc.Areas(ctx, zoneID)
	if err != nil {
		return false, err
	}
	for _, a := range areas {
		if a.ID == areaID {
			return true, nil
		}
	}
	return false, nil
}
