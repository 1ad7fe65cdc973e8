package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoCourier         = errors.New("connect a courier to this shop before requesting delivery")
	ErrConsignmentExists = errors.New("delivery has already been requested for this order")
	ErrNoConsignment     = errors.New("this order has no delivery to cancel")
	ErrNegativeAmount    = errors.New("amount to collect cannot be negative")
	ErrUnknownEventType  = errors.New("unknown order event type")
)
