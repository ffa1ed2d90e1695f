package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	code, err := Normalize(" de ")
	require.NoError(t, err)
	assert.Equal(t, "DE", code)

	code, err = Normalize("AT")
	require.NoError(t, err)
	assert.Equal(t, "AT", code)
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "D", "DEU", "ZZ", "12"} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, ErrInvalidCountry, raw)
	}
}
