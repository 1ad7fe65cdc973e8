package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const submitLockTTL = 30 * time.Second

type Backend interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateOrder(ctx context.Context, in *apiclient.CreateOrderRequest) (*model.Order, error)
}

type Locations interface {
	SelectCity(ctx context.Context, sel *location.Selection, cityID int64) error
	SelectZone(ctx context.Context, sel *location.Selection, zoneID int64) error
	SelectArea(ctx context.Context, sel *location.Selection, areaID int64) error
	ZoneInCity(ctx context.Context, cityID, zoneID int64) (bool, error)
	AreaInZone(ctx context.Context, zoneID, areaID int64) (bool, error)
}

// Publisher announces placed orders to the rest of the platform.
type Publisher interface {
	OrderPlaced(ctx context.Context, o *model.Order) error
}

// Locker guards against the same session being submitted twice concurrently.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type Options struct {
	OTPMinLength     int
	OTPResend        time.Duration
	ConfirmationPath string
}

type checkoutUseCase struct {
	repo      checkout.Repository
	backend   Backend
	locations Locations
	cache     *querycache.Cache
	publisher Publisher
	locker    Locker
	validate  *validator.Validate
	opts      Options
	now       func() time.Time
	logger    logger.ZapLogger
}

// NewCheckoutUseCase wires the sequencer. publisher and locker may be nil.
func NewCheckoutUseCase(
	repo checkout.Repository,
	backend Backend,
	locations Locations,
	cache *querycache.Cache,
	publisher Publisher,
	locker Locker,
	opts Options,
	log logger.ZapLogger,
) checkout.UseCase {
	if opts.OTPMinLength <= 0 {
		opts.OTPMinLength = 4
	}
	if opts.ConfirmationPath == "" {
		opts.ConfirmationPath = "/order-confirmation"
	}
	return &checkoutUseCase{
		repo:      repo,
		backend:   backend,
		locations: locations,
		cache:     cache,
		publisher: publisher,
		locker:    locker,
		validate:  wizard.NewValidator(),
		opts:      opts,
		now:       time.Now,
		logger:    log,
	}
}

// schema is built per session because the selection check needs the product snapshot.
func (uc *checkoutUseCase) schema(s *model.CheckoutSession) *wizard.Schema[model.CheckoutForm] {
	return wizard.NewSchema("checkout", uc.validate,
		wizard.Step[model.CheckoutForm]{
			Name:     "selection",
			Required: []string{"Items"},
			Check: func(ctx context.Context, f *model.CheckoutForm) (wizard.FieldErrors, error) {
				return checkStock(ctx, s.Product.Variants, f.Items), nil
			},
		},
		wizard.Step[model.CheckoutForm]{
			Name:     "shipping",
			Required: []string{"FullName", "Phone", "District", "CityID", "ZoneID"},
			Check:    uc.checkLocation,
		},
		wizard.Step[model.CheckoutForm]{
			Name:     "verification",
			Required: []string{"OTP"},
			Check:    uc.checkOTP,
		},
		wizard.Step[model.CheckoutForm]{
			Name:     "payment",
			Required: []string{"PaymentMethod"},
		},
	)
}

// checkStock sums quantities per variant so split lines cannot oversell.
func checkStock(ctx context.Context, variants []model.ProductVariant, items []model.OrderItem) wizard.FieldErrors {
	type key struct{ size, color string }
	want := make(map[key]int, len(items))
	for _, it := range items {
		want[key{it.Size, it.Color}] += it.Quantity
	}

	langs := i18n.LanguagesFromContext(ctx)
	fields := wizard.FieldErrors{}
	for i, it := range items {
		v := model.FindVariant(variants, it.Size, it.Color)
		if v == nil || v.Stock < want[key{it.Size, it.Color}] {
			fields[fmt.Sprintf("items[%d]", i)] = i18n.T("checkout.variant_unavailable", map[string]interface{}{
				"Size":  it.Size,
				"Color": it.Color,
			}, langs...)
		}
	}
	return fields
}

func (uc *checkoutUseCase) checkLocation(ctx context.Context, f *model.CheckoutForm) (wizard.FieldErrors, error) {
	ok, err := uc.locations.ZoneInCity(ctx, f.CityID, f.ZoneID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return wizard.FieldErrors{
			"zone_id": i18n.T("checkout.zone_mismatch", nil, i18n.LanguagesFromContext(ctx)...),
		}, nil
	}
	if f.AreaID == 0 {
		return nil, nil
	}
	ok, err = uc.locations.AreaInZone(ctx, f.ZoneID, f.AreaID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return wizard.FieldErrors{
			"area_id": i18n.T("checkout.area_mismatch", nil, i18n.LanguagesFromContext(ctx)...),
		}, nil
	}
	return nil, nil
}

func (uc *checkoutUseCase) checkOTP(ctx context.Context, f *model.CheckoutForm) (wizard.FieldErrors, error) {
	if len(f.OTP) < uc.opts.OTPMinLength {
		return wizard.FieldErrors{
			"otp": i18n.T("checkout.otp_too_short", map[string]interface{}{
				"Param": uc.opts.OTPMinLength,
			}, i18n.LanguagesFromContext(ctx)...),
		}, nil
	}
	return nil, nil
}

func (uc *checkoutUseCase) Start(ctx context.Context, input *dto.StartInput) (*dto.SessionView, error) {
	p, err := querycache.Fetch(ctx, uc.cache, querycache.ProductKey(input.ProductID), func(ctx context.Context) (*model.Product, error) {
		return uc.backend.GetProduct(ctx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}
	if len(p.Variants) == 0 {
		return nil, checkout.ErrNoVariants
	}

	now := uc.now()
	s := &model.CheckoutSession{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		OwnerID:   auth.GetSessionID(ctx),
		ProductID: p.ID,
		ShopID:    p.ShopID,
		Step:      model.CheckoutStepSelection,
		Product:   model.NewProductSnapshot(p),
		Form:      model.CheckoutForm{Items: []model.OrderItem{}},
	}
	// a single-variant product has nothing to choose but the quantity
	if len(p.Variants) == 1 {
		v := p.Variants[0]
		s.Form.Items = []model.OrderItem{{Size: v.Size, Color: v.Color, Quantity: 1}}
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.logger.Info("checkout started", zap.String("checkout_id", s.ID), zap.String("product_id", s.ProductID))
	return uc.view(s), nil
}

func (uc *checkoutUseCase) Get(ctx context.Context, id string) (*dto.SessionView, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

// load returns the session only to the browser session that started it.
func (uc *checkoutUseCase) load(ctx context.Context, id string) (*model.CheckoutSession, error) {
	// ids are UUIDs; anything else cannot name a session
	if _, err := uuid.Parse(id); err != nil {
		return nil, checkout.ErrSessionNotFound
	}
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OwnerID != auth.GetSessionID(ctx) {
		return nil, checkout.ErrSessionNotFound
	}
	return s, nil
}

func (uc *checkoutUseCase) save(ctx context.Context, s *model.CheckoutSession) error {
	s.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, s)
}

func (uc *checkoutUseCase) view(s *model.CheckoutSession) *dto.SessionView {
	sc := uc.schema(s)
	return &dto.SessionView{
		CheckoutSession: s,
		StepName:        sc.StepName(s.Step),
		TotalSteps:      sc.Last(),
		Amount:          checkout.AmountToCollect(s.Product.Price, s.Form.Items),
		OTPResendIn:     checkout.Seconds(uc.otpRemaining(s)),
	}
}

func (uc *checkoutUseCase) otpRemaining(s *model.CheckoutSession) time.Duration {
	if s.Form.OTPSentAt == nil {
		return 0
	}
	return s.Form.OTPSentAt.Add(uc.opts.OTPResend).Sub(uc.now())
}

// UpdateForm merges input into the form. Location ids go through the cascade so
// a new city clears the zone and area picked for the old one, and an area must
// be one of its zone's areas.
func (uc *checkoutUseCase) UpdateForm(ctx context.Context, id string, input *dto.UpdateFormInput) (*dto.SessionView, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	f := &s.Form

	if input.Items != nil {
		f.Items = *input.Items
	}
	if input.FullName != nil {
		f.FullName = *input.FullName
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != f.Phone {
			// a code sent to the old number proves nothing about the new one
			f.OTP = ""
			f.OTPSentAt = nil
		}
		f.Phone = phone
	}
	if input.District != nil {
		f.District = *input.District
	}
	if input.Address != nil {
		f.Address = *input.Address
	}
	if input.OTP != nil {
		f.OTP = strings.TrimSpace(*input.OTP)
	}
	if input.PaymentMethod != nil {
		f.PaymentMethod = *input.PaymentMethod
	}

	sel := selection(f)
	if input.CityID != nil {
		sel.SelectCity(*input.CityID)
	}
	if input.ZoneID != nil {
		sel.SelectZone(*input.ZoneID)
	}
	if input.AreaID != nil {
		if err := uc.locations.SelectArea(ctx, sel, *input.AreaID); err != nil {
			return nil, err
		}
	}
	applySelection(f, sel)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

func selection(f *model.CheckoutForm) *location.Selection {
	return &location.Selection{CityID: f.CityID, ZoneID: f.ZoneID, AreaID: f.AreaID}
}

func applySelection(f *model.CheckoutForm, sel *location.Selection) {
	f.CityID, f.ZoneID, f.AreaID = sel.CityID, sel.ZoneID, sel.AreaID
}

func (uc *checkoutUseCase) SelectCity(ctx context.Context, id string, cityID int64) (*dto.SessionView, error) {
	return uc.selectLocation(ctx, id, func(sel *location.Selection) error {
		return uc.locations.SelectCity(ctx, sel, cityID)
	})
}

func (uc *checkoutUseCase) SelectZone(ctx context.Context, id string, zoneID int64) (*dto.SessionView, error) {
	return uc.selectLocation(ctx, id, func(sel *location.Selection) error {
		return uc.locations.SelectZone(ctx, sel, zoneID)
	})
}

func (uc *checkoutUseCase) SelectArea(ctx context.Context, id string, areaID int64) (*dto.SessionView, error) {
	return uc.selectLocation(ctx, id, func(sel *location.Selection) error {
		return uc.locations.SelectArea(ctx, sel, areaID)
	})
}

func (uc *checkoutUseCase) selectLocation(ctx context.Context, id string, pick func(*location.Selection) error) (*dto.SessionView, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sel := selection(&s.Form)
	if err := pick(sel); err != nil {
		return nil, err
	}
	applySelection(&s.Form, sel)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

func (uc *checkoutUseCase) Next(ctx context.Context, id string) (*dto.SessionView, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := uc.schema(s).Next(ctx, s.Step, &s.Form)
	if err != nil {
		return nil, err
	}
	s.Step = next
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

func (uc *checkoutUseCase) Back(ctx context.Context, id string) (*dto.SessionView, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Step = uc.schema(s).Back(s.Step)
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

// SendOTP starts the resend countdown. Delivery of the code itself is owned by
// the backend once the order is placed.
func (uc *checkoutUseCase) SendOTP(ctx context.Context, id string) (*dto.OTPStatus, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Step != model.CheckoutStepVerification {
		return nil, checkout.ErrNotAtVerification
	}
	if remaining := uc.otpRemaining(s); remaining > 0 {
		return nil, &checkout.OTPCooldownError{Remaining: remaining}
	}

	now := uc.now()
	s.Form.OTPSentAt = &now
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return &dto.OTPStatus{
		SentTo:   maskPhone(s.Form.Phone),
		ResendIn: checkout.Seconds(uc.opts.OTPResend),
	}, nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// Submit places the order. Every step is revalidated; on any failure the session
// is left untouched on the payment step.
func (uc *checkoutUseCase) Submit(ctx context.Context, id string) (*dto.Confirmation, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Step != model.CheckoutStepPayment {
		return nil, checkout.ErrNotAtPayment
	}

	sc := uc.schema(s)
	for step := sc.First(); step <= sc.Last(); step++ {
		if err := sc.Validate(ctx, step, &s.Form); err != nil {
			metrics.CheckoutSubmissions.WithLabelValues("invalid").Inc()
			return nil, err
		}
	}

	if uc.locker != nil {
		lockKey, token := "storefront:checkout:submit:"+s.ID, uuid.New().String()
		ok, err := uc.locker.AcquireLock(ctx, lockKey, token, submitLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, checkout.ErrSubmitInProgress
		}
		defer func() {
			if err := uc.locker.ReleaseLock(context.Background(), lockKey, token); err != nil {
				uc.logger.Warn("failed to release submit lock", zap.String("checkout_id", s.ID), zap.Error(err))
			}
		}()
	}

	o, err := uc.backend.CreateOrder(ctx, checkout.BuildOrderRequest(s))
	if err != nil {
		metrics.CheckoutSubmissions.WithLabelValues("failed").Inc()
		uc.logger.Error("failed to place order", zap.String("checkout_id", s.ID), zap.Error(err))
		return nil, err
	}
	metrics.CheckoutSubmissions.WithLabelValues("placed").Inc()

	uc.cache.Invalidate(ctx, querycache.MutationOrderCreate, querycache.Scope{ShopID: s.ShopID})

	if uc.publisher != nil {
		if err := uc.publisher.OrderPlaced(ctx, o); err != nil {
			uc.logger.Error("failed to publish order placed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	if err := uc.repo.Delete(ctx, s.ID); err != nil {
		uc.logger.Warn("failed to clear checkout session", zap.String("checkout_id", s.ID), zap.Error(err))
	}

	uc.logger.Info("order placed", zap.String("order_id", o.ID), zap.String("checkout_id", s.ID))
	return &dto.Confirmation{
		OrderID:  o.ID,
		Redirect: strings.TrimSuffix(uc.opts.ConfirmationPath, "/") + "/" + o.ID,
	}, nil
}
