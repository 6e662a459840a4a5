package i18n

import "strings"

// Message keys for every user-facing outcome. Handlers never hardcode
// user-visible strings; they go through the catalog so the response language
// follows the visitor's.
const (
	KeyMissingFields   = "contact.missing_fields"
	KeyRecaptchaFailed = "contact.recaptcha_failed"
	KeySendFailed      = "contact.send_failed"
	KeySent            = "contact.sent"
	KeyReceivedDevMode = "contact.received_dev_mode"
	KeyInternalError   = "common.internal_error"
	KeyMissingToken    = "verify.missing_token"
	KeyVerifyError     = "verify.error"
)

var catalogs = map[string]map[string]string{
	"en": {
		KeyMissingFields:   "Please fill in all required fields.",
		KeyRecaptchaFailed: "We couldn't verify you're human. Please try again.",
		KeySendFailed:      "Something went wrong sending your message. Please try again later.",
		KeySent:            "Your message has been sent. We'll get back to you soon!",
		KeyReceivedDevMode: "Your message has been received (development mode).",
		KeyInternalError:   "An unexpected error occurred. Please try again later.",
		KeyMissingToken:    "Missing verification token.",
		KeyVerifyError:     "Verification could not be completed.",
	},
	"es": {
		KeyMissingFields:   "Por favor completa todos los campos obligatorios.",
		KeyRecaptchaFailed: "No pudimos verificar que eres humano. Inténtalo de nuevo.",
		KeySendFailed:      "Algo salió mal al enviar tu mensaje. Inténtalo más tarde.",
		KeySent:            "Tu mensaje ha sido enviado. ¡Te responderemos pronto!",
		KeyReceivedDevMode: "Tu mensaje ha sido recibido (modo de desarrollo).",
		KeyInternalError:   "Ocurrió un error inesperado. Inténtalo más tarde.",
		KeyMissingToken:    "Falta el token de verificación.",
		KeyVerifyError:     "No se pudo completar la verificación.",
	},
}

// Message returns the localized text for key, falling back to English for
// unknown languages or missing entries.
func Message(lang, key string) string {
	lang = normalize(lang)
	if catalog, ok := catalogs[lang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	return catalogs["en"][key]
}

// countryLanguages maps ISO country codes to the site's default language for
// visitors from that country. Everything else defaults to English.
var countryLanguages = map[string]string{
	"ES": "es", "MX": "es", "AR": "es", "CO": "es", "CL": "es",
	"PE": "es", "VE": "es", "EC": "es", "UY": "es", "BO": "es",
	"PY": "es", "GT": "es", "CR": "es", "PA": "es", "DO": "es",
}

// LanguageForCountry maps a country code to a supported site language.
func LanguageForCountry(country string) string {
	if lang, ok := countryLanguages[strings.ToUpper(country)]; ok {
		return lang
	}
	return "en"
}

// normalize reduces an Accept-Language style value ("es-MX", "ES") to a
// catalog key.
func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_;,"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
