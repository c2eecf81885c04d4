// Package apierr classifies failed CoinPaprika API calls into a small, closed
// set of kinds. Every non-2xx response is mapped to exactly one Kind at the
// client boundary; callers never inspect raw status codes.
//
// Callers check with errors.Is(err, apierr.ErrRateLimit) etc., or extract the
// full *Error with errors.As to read the status and remediation message.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors, one per Kind.
var (
	// ErrPaymentRequired indicates the endpoint is not available on the caller's tier.
	ErrPaymentRequired = errors.New("payment required")

	// ErrRateLimit indicates the API rate limit was exceeded. Never retried.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrForbidden indicates the API key was rejected.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a 5xx response from the API.
	ErrUnavailable = errors.New("service unavailable")

	// ErrDecode indicates a 2xx response whose body did not match the expected shape.
	ErrDecode = errors.New("decode failure")

	// ErrIO indicates the request could not be sent or the body could not be read.
	ErrIO = errors.New("i/o failure")

	// ErrOther indicates any other non-2xx response.
	ErrOther = errors.New("unexpected API response")
)

// Kind tags a classified failure.
type Kind int

const (
	KindOther Kind = iota
	KindPaymentRequired
	KindRateLimited
	KindForbidden
	KindNotFound
	KindServerUnavailable
	KindDecode
	KindIO
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindPaymentRequired:
		return "payment-required"
	case KindRateLimited:
		return "rate-limited"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindServerUnavailable:
		return "server-unavailable"
	case KindDecode:
		return "decode-failure"
	case KindIO:
		return "io-failure"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sentinel returns the sentinel error matching k.
func (k Kind) sentinel() error {
	switch k {
	case KindPaymentRequired:
		return ErrPaymentRequired
	case KindRateLimited:
		return ErrRateLimit
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindServerUnavailable:
		return ErrUnavailable
	case KindDecode:
		return ErrDecode
	case KindIO:
		return ErrIO
	default:
		return ErrOther
	}
}

// Error is a classified API failure. Message is the user-facing remediation
// text, built at classification time.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, zero for decode and I/O failures
	Body    string // raw response body, if any
	Message string
	cause   error
}

// Compile-time interface compliance check.
var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the Kind of err, or KindOther and false when err is not classified.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindOther, false
}

// Remediation copy. The binary name is part of every hint so the user can
// paste the suggested command as-is.
const (
	paymentRequiredFreeMsg = `This endpoint is not available on the free tier (no API key configured).

The free tier covers 20,000 calls/month without a key, but historical data,
ticker history, changelog and ID mappings need a paid plan.

Get your API key:  https://coinpaprika.com/api/
Set your key:      coinpaprika-cli config set-key <YOUR_KEY>
Or export it:      export COINPAPRIKA_API_KEY=<YOUR_KEY>

See what is included for free: coinpaprika-cli plans`

	paymentRequiredPlanMsg = `Your CoinPaprika plan does not include this endpoint.

Available plans:
  Starter    - Historical data, ticker history, changelog
  Business   - All Starter features + ID mappings, priority support
  Enterprise - Custom limits, dedicated support

Upgrade your plan: https://coinpaprika.com/api/pricing
Check your key:    coinpaprika-cli key-info`

	rateLimitMsg   = "Rate limit exceeded. Wait a moment and try again."
	forbiddenMsg   = "Invalid API key. Check your key with `coinpaprika-cli config show`"
	notFoundMsg    = "Not found. Check the ID format (e.g., btc-bitcoin for Bitcoin). API response: %s"
	unavailableMsg = "CoinPaprika API is temporarily unavailable. Try again shortly. (%d %s)"
	otherMsg       = "CoinPaprika API error %d %s: %s"
)

// Classify maps a non-2xx status to a classified error. The selection is a
// total function of status; only the 402 copy depends on hasKey.
func Classify(status int, body string, hasKey bool) *Error {
	e := &Error{Status: status, Body: body}

	switch {
	case status == http.StatusPaymentRequired:
		e.Kind = KindPaymentRequired
		if hasKey {
			e.Message = paymentRequiredPlanMsg
		} else {
			e.Message = paymentRequiredFreeMsg
		}
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.Message = rateLimitMsg
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
		e.Message = forbiddenMsg
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = fmt.Sprintf(notFoundMsg, body)
	case status >= 500 && status <= 599:
		e.Kind = KindServerUnavailable
		e.Message = fmt.Sprintf(unavailableMsg, status, http.StatusText(status))
	default:
		e.Kind = KindOther
		e.Message = fmt.Sprintf(otherMsg, status, http.StatusText(status), body)
	}

	return e
}

// Decode wraps a body decoding failure.
func Decode(path string, err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: fmt.Sprintf("unexpected response shape from %s: %v", path, err),
		cause:   err,
	}
}

// IO wraps a transport or body read failure.
func IO(path string, err error) *Error {
	return &Error{
		Kind:    KindIO,
		Message: fmt.Sprintf("request to %s failed: %v", path, err),
		cause:   err,
	}
}
