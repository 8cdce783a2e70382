package domain

import "github.com/pkg/errors"

var (
	// ErrNetwork the exchange could not be reached.
	ErrNetwork = errors.New("exchange network error")
	// ErrAuth the exchange rejected the credentials or the request signature.
	ErrAuth = errors.New("exchange authentication error")
	// ErrExchange the exchange answered with an error unrelated to authentication.
	ErrExchange = errors.New("exchange api error")
	// ErrInsufficientData a derived figure would need a division by zero.
	ErrInsufficientData = errors.New("insufficient data")
)
