package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrUnsupportedDestination means no shipping zone could be resolved for
	// the destination country, even after carrier-zone fallback translation.
	ErrUnsupportedDestination = errors.New("unsupported destination country")

	// ErrInfeasibleMargin means variable-cost rate plus target margin reach
	// or exceed 1, so no finite revenue can satisfy the margin equation.
	ErrInfeasibleMargin = errors.New("infeasible margin: variable rate plus target margin must be below 1")

	// ErrInfeasiblePrice means the solved listing price rounded to a
	// non-positive value.
	ErrInfeasiblePrice = errors.New("infeasible price: solved listing price is not positive")

	// ErrNoExchangeRate means no exchange rate has been recorded yet.
	ErrNoExchangeRate = errors.New("no exchange rate available")

	// ErrNoShippingPolicy means no active policy covers the weight and
	// price of the shipment.
	ErrNoShippingPolicy = errors.New("no shipping policy matches weight and price")

	ErrUploadFailed = errors.New("file upload to storage failed")
)
