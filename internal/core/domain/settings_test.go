package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryTarget_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		target   DeliveryTarget
		expected bool
	}{
		{"evolution is valid", DeliveryTargetGateway, true},
		{"webhook is valid", DeliveryTargetWebhook, true},
		{"empty is invalid", DeliveryTarget(""), false},
		{"unknown is invalid", DeliveryTarget("smtp"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.target.IsValid())
		})
	}
}

func TestDeliveryTarget_Description(t *testing.T) {
	for _, target := range AllDeliveryTargets() {
		assert.NotEqual(t, unknownDescription, target.Description())
	}
	assert.Equal(t, unknownDescription, DeliveryTarget("x").Description())
}

func TestDeliverySettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings DeliverySettings
		expected bool
	}{
		{"empty", DeliverySettings{}, false},
		{"gateway without key", DeliverySettings{Target: DeliveryTargetGateway, URL: "http://x"}, false},
		{"gateway with key", DeliverySettings{Target: DeliveryTargetGateway, URL: "http://x", APIKey: "k"}, true},
		{"webhook without token", DeliverySettings{Target: DeliveryTargetWebhook, URL: "http://x"}, true},
		{"webhook without url", DeliverySettings{Target: DeliveryTargetWebhook}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDeliverySettings_Caption(t *testing.T) {
	assert.Equal(t, "Contrato Casa da Ana x João", DeliverySettings{}.Caption("João"))
	assert.Equal(t, "Lease for João", DeliverySettings{CaptionPrefix: "Lease for"}.Caption("João"))
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 5000, s.Server.Port)
	assert.False(t, s.Server.Debug)
	assert.Equal(t, "CONTRATO Casa da Ana.docx", s.Template.Path)
	assert.Equal(t, SchemaNameBasic, s.Template.Schema)
	assert.Equal(t, DeliveryTargetGateway, s.Delivery.Target)
	assert.Equal(t, 30*time.Second, s.Delivery.Timeout)
	assert.Empty(t, s.Delivery.URL)
	assert.Empty(t, s.Delivery.APIKey)
	assert.False(t, s.Delivery.IsConfigured())
	assert.Equal(t, StorageBackendSQLite, s.Storage.Backend)
}

func TestStorageBackend_IsValid(t *testing.T) {
	assert.True(t, StorageBackendSQLite.IsValid())
	assert.True(t, StorageBackendMemory.IsValid())
	assert.False(t, StorageBackend("postgres").IsValid())
}
