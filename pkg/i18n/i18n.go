package i18n

import (
	"context"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	once   sync.Once
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Built-in validation messages. Locale files loaded through Load override these.
var defaults = map[language.Tag][]*goi18n.Message{
	language.English: {
		{ID: "validation.required", Other: "{{.Field}} is required"},
		{ID: "validation.len", Other: "{{.Field}} must be exactly {{.Param}} characters"},
		{ID: "validation.min", Other: "{{.Field}} must be at least {{.Param}}"},
		{ID: "validation.max", Other: "{{.Field}} must be at most {{.Param}}"},
		{ID: "validation.gte", Other: "{{.Field}} must be {{.Param}} or more"},
		{ID: "validation.gtefield", Other: "{{.Field}} must not be lower than {{.Param}}"},
		{ID: "validation.number", Other: "{{.Field}} must contain digits only"},
		{ID: "validation.oneof", Other: "{{.Field}} must be one of: {{.Param}}"},
		{ID: "validation.email", Other: "{{.Field}} must be a valid email address"},
		{ID: "validation.invalid", Other: "{{.Field}} is invalid"},
		{ID: "checkout.variant_unavailable", Other: "{{.Size}} / {{.Color}} is not available in that quantity"},
		{ID: "checkout.zone_mismatch", Other: "Selected zone does not belong to the selected city"},
		{ID: "checkout.area_mismatch", Other: "Selected area does not belong to the selected zone"},
		{ID: "checkout.otp_too_short", Other: "Enter the {{.Param}}-digit code sent to your phone"},
		{ID: "product.no_images", Other: "Add at least one product image"},
		{ID: "product.no_variants", Other: "Generate or add at least one variant"},
		{ID: "product.negative_stock", Other: "Stock cannot be negative"},
		{ID: "product.price_positive", Other: "Price must be greater than zero"},
		{ID: "product.display_price_low", Other: "Display price must not be lower than the price"},
	},
	language.Nepali: {
		{ID: "validation.required", Other: "{{.Field}} आवश्यक छ"},
		{ID: "validation.len", Other: "{{.Field}} ठ्याक्कै {{.Param}} अक्षरको हुनुपर्छ"},
		{ID: "validation.number", Other: "{{.Field}} मा अंक मात्र हुनुपर्छ"},
	},
}

// Init builds the bundle with the built-in messages. Safe to call more than once.
func Init() {
	once.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		for tag, msgs := range defaults {
			_ = b.AddMessages(tag, msgs...)
		}
		mu.Lock()
		bundle = b
		mu.Unlock()
	})
}

// Load merges a JSON locale file (e.g. active.en.json) into the bundle.
func Load(path string) error {
	Init()
	mu.Lock()
	defer mu.Unlock()
	_, err := bundle.LoadMessageFile(path)
	return err
}

// T localizes id for the first matching language in langs, falling back to English
// and then to the raw id.
func T(id string, data map[string]interface{}, langs ...string) string {
	Init()
	mu.RLock()
	loc := goi18n.NewLocalizer(bundle, langs...)
	mu.RUnlock()

	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

type langKey struct{}

// WithLanguages stores the caller's preferred languages (Accept-Language order) in ctx.
func WithLanguages(ctx context.Context, langs ...string) context.Context {
	return context.WithValue(ctx, langKey{}, langs)
}

func LanguagesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(langKey{}).([]string); ok {
		return v
	}
	return nil
}
