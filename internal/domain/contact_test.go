package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceLabel(t *testing.T) {
	assert.Equal(t, "Web Application", ServiceLabel("webapp"))
	assert.Equal(t, "E-commerce Store", ServiceLabel("ecommerce"))
	assert.Equal(t, "Other", ServiceLabel("other"))

	// Unknown slugs fall back to the raw value
	assert.Equal(t, "blockchain", ServiceLabel("blockchain"))

	// Empty resolves to the sentinel
	assert.Equal(t, ServiceNotSpecified, ServiceLabel(""))
}

func TestServiceSlugs(t *testing.T) {
	slugs := ServiceSlugs()
	assert.Len(t, slugs, 6)
	assert.Contains(t, slugs, "webapp")
	assert.Contains(t, slugs, "other")
}
