package service

import (
	"context"
	"testing"
	"time"

	"github.com/elastic-io/parcel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	backend := new(MockBackend)
	issuer := NewIssuer(backend, 0)
	assert.Equal(t, DefaultPartURLExpiry, issuer.TTL())

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	backend.On("PresignUploadPart", mock.Anything, "a/b.bin", "up-9", 1, time.Hour).Return("https://signed", nil).Once()
	auth, err := issuer.Issue(context.Background(), "up-9", "a/b.bin", types.MinPartNumber)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", auth.SignedURL)
	assert.Equal(t, fixed.Add(time.Hour), auth.ExpiresAt)

	_, err = issuer.Issue(context.Background(), "up-9", "a/b.bin", types.MaxPartNumber+1)
	assert.ErrorIs(t, err, types.ErrInvalidPartNumber)
	backend.AssertExpectations(t)
}

func TestAsBackendError(t *testing.T) {
	wrapped := asBackendError("op", assert.AnError)
	assert.ErrorIs(t, wrapped, types.ErrBackend)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, wrapped, asBackendError("again", wrapped))
}
