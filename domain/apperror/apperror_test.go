package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"classified conflict", New(KindConflict, "video already tracked"), KindConflict},
		{"wrapped classified", fmt.Errorf("ingest: %w", New(KindNotFound, "no such video")), KindNotFound},
		{"cause preserved through Wrap", Wrap(KindTransient, "lookup failed", errors.New("boom")), KindTransient},
		{"classified invalid", New(KindInvalid, "window end precedes window start"), KindInvalid},
		{"plain error defaults to transient", errors.New("connection reset"), KindTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNeedsReconnect(t *testing.T) {
	assert.True(t, NeedsReconnect(New(KindAuthRequired, "private video")))
	assert.True(t, NeedsReconnect(New(KindReauthRequired, "refresh token revoked")))
	assert.True(t, NeedsReconnect(New(KindNoCredential, "not connected")))
	assert.False(t, NeedsReconnect(New(KindTransient, "timeout")))
	assert.False(t, NeedsReconnect(New(KindConflict, "duplicate")))
	assert.False(t, NeedsReconnect(New(KindInvalid, "bad window")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := Wrap(KindTransient, "refresh exchange failed", cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transient")
	assert.Contains(t, err.Error(), "refresh exchange failed")
}
