package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	t.Run("CleanInputPassesThrough", func(t *testing.T) {
		out, err := SanitizeInput("anti-scl70 positive\twith crackles\n")
		require.NoError(t, err)
		assert.Equal(t, "anti-scl70 positive\twith crackles\n", out)
	})

	t.Run("StripsControlCharacters", func(t *testing.T) {
		out, err := SanitizeInput("be\x1b[31fore\x00after")
		require.NoError(t, err)
		assert.Equal(t, "be[31foreafter", out)
	})

	t.Run("RejectsOversizedInput", func(t *testing.T) {
		out, err := SanitizeInput(strings.Repeat("a", DefaultMaxInputSize+1))
		assert.ErrorIs(t, err, ErrInputTooLarge)
		assert.Empty(t, out)
	})

	t.Run("RejectsInvalidUTF8", func(t *testing.T) {
		_, err := SanitizeInput(string([]byte{0xff, 0xfe}))
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})

	t.Run("SizeLimitOverride", func(t *testing.T) {
		t.Setenv(EnvMaxInputSize, "10")
		_, err := SanitizeInput(strings.Repeat("a", 11))
		assert.ErrorIs(t, err, ErrInputTooLarge)

		out, err := SanitizeInput("short")
		require.NoError(t, err)
		assert.Equal(t, "short", out)
	})

	t.Run("InvalidOverrideFallsBack", func(t *testing.T) {
		t.Setenv(EnvMaxInputSize, "not-a-number")
		out, err := SanitizeInput(strings.Repeat("a", 100))
		require.NoError(t, err)
		assert.Len(t, out, 100)
	})
}
