// Package wizard drives multi-step forms from a declarative schema: an ordered
// list of steps, each naming the form fields it requires and an optional custom check.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrTerminalStep is returned by Next on the last step, which only submit can leave.
	ErrTerminalStep = errors.New("wizard: last step is completed by submit")
	ErrUnknownStep  = errors.New("wizard: step out of range")
)

// FieldErrors maps a field path (json names, e.g. "items[0].size") to a message.
type FieldErrors map[string]string

type ValidationError struct {
	Step   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %d invalid field(s)", e.Step, len(e.Fields))
}

type Step[F any] struct {
	Name string
	// Required lists top-level Go field names validated with their struct tags.
	Required []string
	// Check runs after the tag validation passes. A non-nil error aborts the
	// transition without being reported as a field problem.
	Check func(ctx context.Context, form *F) (FieldErrors, error)
}

// Schema is an ordered list of steps numbered from 1.
type Schema[F any] struct {
	flow     string
	validate *validator.Validate
	steps    []Step[F]
}

func NewSchema[F any](flow string, v *validator.Validate, steps ...Step[F]) *Schema[F] {
	return &Schema[F]{flow: flow, validate: v, steps: steps}
}

func (s *Schema[F]) First() int { return 1 }
func (s *Schema[F]) Last() int  { return len(s.steps) }

func (s *Schema[F]) StepName(step int) string {
	if step < 1 || step > len(s.steps) {
		return ""
	}
	return s.steps[step-1].Name
}

// Validate checks the fields owned by step.
func (s *Schema[F]) Validate(ctx context.Context, step int, form *F) error {
	if step < 1 || step > len(s.steps) {
		return ErrUnknownStep
	}
	st := s.steps[step-1]

	if len(st.Required) > 0 {
		err := s.validate.StructFilteredCtx(ctx, form, onlyFields(st.Required))
		if err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			return &ValidationError{Step: step, Fields: Translate(ctx, verrs)}
		}
	}

	if st.Check != nil {
		fields, err := st.Check(ctx, form)
		if err != nil {
			return err
		}
		if len(fields) > 0 {
			return &ValidationError{Step: step, Fields: fields}
		}
	}
	return nil
}

// Next validates the current step and returns the following one. On failure the
// current step is returned along with the error.
func (s *Schema[F]) Next(ctx context.Context, step int, form *F) (int, error) {
	if step == s.Last() {
		return step, ErrTerminalStep
	}
	if err := s.Validate(ctx, step, form); err != nil {
		metrics.WizardTransitions.WithLabelValues(s.flow, "next", "rejected").Inc()
		return step, err
	}
	metrics.WizardTransitions.WithLabelValues(s.flow, "next", "ok").Inc()
	return step + 1, nil
}

// Back never validates. It stays on the first step and pulls out-of-range values
// back into range.
func (s *Schema[F]) Back(step int) int {
	if step <= 1 || step > len(s.steps) {
		metrics.WizardTransitions.WithLabelValues(s.flow, "back", "clamped").Inc()
		if step <= 1 {
			return 1
		}
		return len(s.steps)
	}
	metrics.WizardTransitions.WithLabelValues(s.flow, "back", "ok").Inc()
	return step - 1
}

// onlyFields skips every field whose top-level name is not in names.
func onlyFields(names []string) validator.FilterFunc {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(ns []byte) bool {
		path := string(ns)
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		if i := strings.IndexAny(path, ".["); i >= 0 {
			path = path[:i]
		}
		_, ok := set[path]
		return !ok
	}
}
