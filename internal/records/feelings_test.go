package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/obfuscate"
)

func TestEncodeFeelingRoundTrip(t *testing.T) {
	plain := models.Feeling{UserID: "lumen", Message: "情思同步: quiet days count double"}

	encoded := EncodeFeeling(plain)
	assert.True(t, encoded.Encrypted)
	assert.NotEqual(t, plain.UserID, encoded.UserID)

	decoded, err := DecodeFeeling(encoded)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestEncodeFeelingIdempotentOnEncoded(t *testing.T) {
	encoded := EncodeFeeling(models.Feeling{UserID: "lumen", Message: "once"})

	// a second pass must not double-encode
	assert.Equal(t, encoded, EncodeFeeling(encoded))
}

func TestDecodeFeelingPlaintextPassThrough(t *testing.T) {
	plain := models.Feeling{UserID: "lumen", Message: "never stored"}

	decoded, err := DecodeFeeling(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestDecodeFeelingMalformedBlob(t *testing.T) {
	_, err := DecodeFeeling(models.Feeling{UserID: "zz", Message: "abc", Encrypted: true})
	assert.ErrorIs(t, err, obfuscate.ErrFormat)
}

func TestDecodeFeelingsStopsOnFirstError(t *testing.T) {
	good := EncodeFeeling(models.Feeling{UserID: "a", Message: "fine"})
	bad := models.Feeling{UserID: "zz", Message: "abc", Encrypted: true}

	_, err := DecodeFeelings([]models.Feeling{good, bad})
	assert.ErrorIs(t, err, obfuscate.ErrFormat)
}
