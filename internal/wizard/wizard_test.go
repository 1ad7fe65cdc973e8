package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required,number,len=10"`
	Code     string `json:"code" validate:"required"`
	Agreed   bool   `json:"agreed"`
}

var errBackendDown = errors.New("backend down")

func newSignupSchema() *Schema[signupForm] {
	return NewSchema("test", NewValidator(),
		Step[signupForm]{Name: "contact", Required: []string{"FullName", "Phone"}},
		Step[signupForm]{Name: "code", Required: []string{"Code"}, Check: func(_ context.Context, f *signupForm) (FieldErrors, error) {
			if f.Code == "down" {
				return nil, errBackendDown
			}
			if f.Code != "1234" {
				return FieldErrors{"code": "wrong code"}, nil
			}
			return nil, nil
		}},
		Step[signupForm]{Name: "terms"},
	)
}

func TestSchema_Next(t *testing.T) {
	ctx := context.Background()
	s := newSignupSchema()

	t.Run("stays on step with field errors", func(t *testing.T) {
		form := signupForm{FullName: "Ram", Phone: "98123"}
		step, err := s.Next(ctx, 1, &form)
		assert.Equal(t, 1, step)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Step)
		assert.Contains(t, verr.Fields, "phone")
		assert.NotContains(t, verr.Fields, "full_name")
		assert.NotContains(t, verr.Fields, "code", "later steps are not validated early")
	})

	t.Run("advances when step is valid", func(t *testing.T) {
		form := signupForm{FullName: "Ram", Phone: "9812345678"}
		step, err := s.Next(ctx, 1, &form)
		require.NoError(t, err)
		assert.Equal(t, 2, step)
	})

	t.Run("custom check", func(t *testing.T) {
		form := signupForm{Code: "0000"}
		step, err := s.Next(ctx, 2, &form)
		assert.Equal(t, 2, step)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "wrong code", verr.Fields["code"])

		form.Code = "down"
		_, err = s.Next(ctx, 2, &form)
		assert.ErrorIs(t, err, errBackendDown)

		form.Code = "1234"
		step, err = s.Next(ctx, 2, &form)
		require.NoError(t, err)
		assert.Equal(t, 3, step)
	})

	t.Run("last step only leaves through submit", func(t *testing.T) {
		form := signupForm{}
		step, err := s.Next(ctx, s.Last(), &form)
		assert.ErrorIs(t, err, ErrTerminalStep)
		assert.Equal(t, 3, step)
	})
}

func TestSchema_Back(t *testing.T) {
	s := newSignupSchema()
	assert.Equal(t, 1, s.Back(1))
	assert.Equal(t, 1, s.Back(0))
	assert.Equal(t, 2, s.Back(3))
	assert.Equal(t, 3, s.Back(9))
}

func TestSchema_BackMetrics(t *testing.T) {
	s := NewSchema("back-metrics", NewValidator(),
		Step[signupForm]{Name: "one"},
		Step[signupForm]{Name: "two"},
	)
	ok := metrics.WizardTransitions.WithLabelValues("back-metrics", "back", "ok")
	clamped := metrics.WizardTransitions.WithLabelValues("back-metrics", "back", "clamped")

	s.Back(1)
	s.Back(5)
	assert.Equal(t, float64(0), testutil.ToFloat64(ok))
	assert.Equal(t, float64(2), testutil.ToFloat64(clamped))

	s.Back(2)
	assert.Equal(t, float64(1), testutil.ToFloat64(ok))
}

func TestSchema_DigitsOnly(t *testing.T) {
	s := newSignupSchema()
	for _, phone := range []string{"+981234567", "-981234567", "98123.4567"} {
		err := s.Validate(context.Background(), 1, &signupForm{FullName: "Ram", Phone: phone})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, phone)
		assert.Equal(t, "Phone must contain digits only", verr.Fields["phone"])
	}
}

func TestSchema_Validate(t *testing.T) {
	s := newSignupSchema()
	assert.ErrorIs(t, s.Validate(context.Background(), 4, &signupForm{}), ErrUnknownStep)
	assert.NoError(t, s.Validate(context.Background(), 3, &signupForm{}))
	assert.Equal(t, "code", s.StepName(2))
	assert.Equal(t, "", s.StepName(7))
}

func TestTranslate(t *testing.T) {
	s := newSignupSchema()
	err := s.Validate(context.Background(), 1, &signupForm{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Full name is required", verr.Fields["full_name"])
	assert.Equal(t, "Phone is required", verr.Fields["phone"])
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Full name", Humanize("full_name"))
	assert.Equal(t, "", Humanize(""))
}
