package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, "Your message has been sent. We'll get back to you soon!", Message("en", KeySent))
	assert.Equal(t, "Tu mensaje ha sido enviado. ¡Te responderemos pronto!", Message("es", KeySent))

	t.Run("region and quality tags are stripped", func(t *testing.T) {
		assert.Equal(t, Message("es", KeySent), Message("es-MX", KeySent))
		assert.Equal(t, Message("es", KeySent), Message("es-ES,es;q=0.9", KeySent))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		assert.Equal(t, Message("en", KeySent), Message("fr", KeySent))
		assert.Equal(t, Message("en", KeySent), Message("", KeySent))
	})
}

func TestLanguageForCountry(t *testing.T) {
	assert.Equal(t, "es", LanguageForCountry("ES"))
	assert.Equal(t, "es", LanguageForCountry("mx"))
	assert.Equal(t, "en", LanguageForCountry("US"))
	assert.Equal(t, "en", LanguageForCountry(""))
}
