package checkout

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrNoVariants        = errors.New("this product has no variants to order")
	ErrNotAtVerification = errors.New("a verification code can only be sent from the verification step")
	ErrNotAtPayment      = errors.New("the order can only be placed from the payment step")
	ErrSubmitInProgress  = errors.New("this order is already being placed")
)

// OTPCooldownError is returned when a code is requested again before the
// resend countdown has elapsed.
type OTPCooldownError struct {
	Remaining time.Duration
}

func (e *OTPCooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", Seconds(e.Remaining))
}

// Seconds rounds a countdown up to whole seconds.
func Seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
