package apierr_test

// Coverage Notes:
// - Classification is a total function of the status code: every code in the
//   1xx..5xx range lands in exactly one Kind.
// - 402 copy depends only on credential presence; both variants are checked
//   with all other inputs held equal.
// - Sentinel matching goes through (*Error).Is, including when wrapped.

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/coinpaprika-cli/internal/apierr"
)

// ---------------------------------------------------------------------------
// TestClassify - status code to Kind mapping
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		wantKind apierr.Kind
		sentinel error
	}{
		{"402 payment required", 402, apierr.KindPaymentRequired, apierr.ErrPaymentRequired},
		{"429 rate limited", 429, apierr.KindRateLimited, apierr.ErrRateLimit},
		{"403 forbidden", 403, apierr.KindForbidden, apierr.ErrForbidden},
		{"404 not found", 404, apierr.KindNotFound, apierr.ErrNotFound},
		{"boundary: 500", 500, apierr.KindServerUnavailable, apierr.ErrUnavailable},
		{"503 unavailable", 503, apierr.KindServerUnavailable, apierr.ErrUnavailable},
		{"boundary: 599", 599, apierr.KindServerUnavailable, apierr.ErrUnavailable},
		{"400 other", 400, apierr.KindOther, apierr.ErrOther},
		{"401 other", 401, apierr.KindOther, apierr.ErrOther},
		{"418 other", 418, apierr.KindOther, apierr.ErrOther},
		{"301 other", 301, apierr.KindOther, apierr.ErrOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := apierr.Classify(tt.status, "body", false)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.NotEmpty(t, err.Message)
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassifyTotal - every status yields exactly one matching sentinel
// ---------------------------------------------------------------------------

func TestClassifyTotal(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		apierr.ErrPaymentRequired, apierr.ErrRateLimit, apierr.ErrForbidden,
		apierr.ErrNotFound, apierr.ErrUnavailable, apierr.ErrOther,
		apierr.ErrDecode, apierr.ErrIO,
	}

	for status := 100; status < 600; status++ {
		err := apierr.Classify(status, "", true)
		matches := 0
		for _, s := range sentinels {
			if errors.Is(err, s) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "status %d matched %d kinds", status, matches)
	}
}

// ---------------------------------------------------------------------------
// TestClassifyPaymentRequiredCopy - credential-aware 402 remediation
// ---------------------------------------------------------------------------

func TestClassifyPaymentRequiredCopy(t *testing.T) {
	t.Parallel()

	free := apierr.Classify(402, `{"error":"plan"}`, false)
	paid := apierr.Classify(402, `{"error":"plan"}`, true)

	assert.NotEqual(t, free.Message, paid.Message)
	assert.Contains(t, free.Message, "free tier")
	assert.Contains(t, free.Message, "config set-key")
	assert.NotContains(t, free.Message, "Upgrade your plan")
	assert.Contains(t, paid.Message, "Upgrade your plan")
	assert.NotContains(t, paid.Message, "free tier")
}

// ---------------------------------------------------------------------------
// TestClassifyMessages - remediation text carries status and body where useful
// ---------------------------------------------------------------------------

func TestClassifyMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{"not found includes body", 404, `{"error":"id not found"}`, []string{"btc-bitcoin", `{"error":"id not found"}`}},
		{"rate limit advises waiting", 429, "", []string{"Rate limit exceeded"}},
		{"forbidden points at config show", 403, "", []string{"config show"}},
		{"unavailable includes status", 502, "", []string{"502", "Bad Gateway"}},
		{"other includes status and body", 400, "bad param", []string{"400", "bad param"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := apierr.Classify(tt.status, tt.body, false).Error()
			for _, w := range tt.want {
				assert.Contains(t, msg, w)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestErrorWrapping - wrapped classified errors still match
// ---------------------------------------------------------------------------

func TestErrorWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("ticker: %w", apierr.Classify(429, "", false))
	assert.ErrorIs(t, wrapped, apierr.ErrRateLimit)
	assert.NotErrorIs(t, wrapped, apierr.ErrNotFound)

	kind, ok := apierr.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, apierr.KindRateLimited, kind)

	_, ok = apierr.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// TestDecodeAndIO - non-HTTP failures keep their cause
// ---------------------------------------------------------------------------

func TestDecodeAndIO(t *testing.T) {
	t.Parallel()

	dec := apierr.Decode("/global", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, dec, apierr.ErrDecode)
	assert.ErrorIs(t, dec, io.ErrUnexpectedEOF)
	assert.Contains(t, dec.Error(), "/global")

	ioErr := apierr.IO("/coins", io.ErrClosedPipe)
	assert.ErrorIs(t, ioErr, apierr.ErrIO)
	assert.ErrorIs(t, ioErr, io.ErrClosedPipe)
	assert.Equal(t, apierr.KindIO, ioErr.Kind)
}

// ---------------------------------------------------------------------------
// TestKindString - names used in logs
// ---------------------------------------------------------------------------

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "payment-required", apierr.KindPaymentRequired.String())
	assert.Equal(t, "server-unavailable", apierr.KindServerUnavailable.String())
	assert.Equal(t, "Kind(99)", apierr.Kind(99).String())
}
