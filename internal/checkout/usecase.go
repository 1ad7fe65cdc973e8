package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/checkout/dto"
)

type UseCase interface {
	Start(ctx context.Context, input *dto.StartInput) (*dto.SessionView, error)
	Get(ctx context.Context, id string) (*dto.SessionView, error)
	UpdateForm(ctx context.Context, id string, input *dto.UpdateFormInput) (*dto.SessionView, error)
	SelectCity(ctx context.Context, id string, cityID int64) (*dto.SessionView, error)
	SelectZone(ctx context.Context, id string, zoneID int64) (*dto.SessionView, error)
	SelectArea(ctx context.Context, id string, areaID int64) (*dto.SessionView, error)
	Next(ctx context.Context, id string) (*dto.SessionView, error)
	Back(ctx context.Context, id string) (*dto.SessionView, error)
	SendOTP(ctx context.Context, id string) (*dto.OTPStatus, error)
	Submit(ctx context.Context, id string) (*dto.Confirmation, error)
}
