package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCustomerStatus(t *testing.T) {
	for _, s := range []string{"active", "pending", "inactive"} {
		got, ok := ParseCustomerStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, CustomerStatus(s), got)
	}
	for _, s := range []string{"", "Active", " active", "deleted"} {
		_, ok := ParseCustomerStatus(s)
		assert.False(t, ok, "%q should be rejected", s)
	}
}

func TestParseCustomerType(t *testing.T) {
	got, ok := ParseCustomerType("exporter")
	assert.True(t, ok)
	assert.Equal(t, CustomerTypeExporter, got)

	got, ok = ParseCustomerType("importer")
	assert.True(t, ok)
	assert.Equal(t, CustomerTypeImporter, got)

	for _, s := range []string{"", "broker", "Exporter", " importer"} {
		_, ok = ParseCustomerType(s)
		assert.False(t, ok, "%q should be rejected", s)
	}
}

func TestEventTypeValid(t *testing.T) {
	assert.True(t, EventCustomerCreated.Valid())
	assert.True(t, EventCustomerStatusChanged.Valid())
	assert.False(t, EventType("deleted").Valid())
}
