// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, []string{"de", "en"}, GetSupportedLanguages())
	assert.True(t, IsSupported("de"))
	assert.False(t, IsSupported("fr"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "Produkt nicht gefunden", T("de", KeyProductNotFound))
	assert.Equal(t, "Product moved to 'Recycling' stage.", T("en", KeyProductStageMoved, "Recycling"))
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestLocaleFilesShareKeys(t *testing.T) {
	require.NoError(t, Initialize("en"))

	instance.mu.RLock()
	defer instance.mu.RUnlock()
	for key := range instance.translations["en"] {
		_, ok := instance.translations["de"][key]
		assert.True(t, ok, key)
	}
}
