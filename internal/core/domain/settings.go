package domain

import "time"

const unknownDescription = "Unknown"

// DeliveryTarget identifies the remote endpoint flavour a contract is sent to.
type DeliveryTarget string

// Available delivery targets.
const (
	// DeliveryTargetGateway is a messaging gateway authenticated by an "apikey" header.
	DeliveryTargetGateway DeliveryTarget = "evolution"

	// DeliveryTargetWebhook is a generic webhook, optionally authenticated by a bearer token.
	DeliveryTargetWebhook DeliveryTarget = "webhook"
)

// IsValid returns true if the delivery target is recognised.
func (d DeliveryTarget) IsValid() bool {
	switch d {
	case DeliveryTargetGateway, DeliveryTargetWebhook:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this target needs an API key.
func (d DeliveryTarget) RequiresAPIKey() bool {
	return d == DeliveryTargetGateway
}

// String returns the string representation.
func (d DeliveryTarget) String() string {
	return string(d)
}

// Description returns a human-readable description of the target.
func (d DeliveryTarget) Description() string {
	switch d {
	case DeliveryTargetGateway:
		return "Messaging gateway (apikey header)"
	case DeliveryTargetWebhook:
		return "Webhook (optional bearer token)"
	default:
		return unknownDescription
	}
}

// AllDeliveryTargets returns all available delivery targets.
func AllDeliveryTargets() []DeliveryTarget {
	return []DeliveryTarget{DeliveryTargetGateway, DeliveryTargetWebhook}
}

// StorageBackend identifies where contract history is kept.
type StorageBackend string

// Available storage backends.
const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageBackendSQLite || b == StorageBackendMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// ServerSettings holds inbound HTTP configuration.
type ServerSettings struct {
	// Port is the TCP port the REST surface listens on.
	Port int

	// Debug enables verbose logging.
	Debug bool
}

// TemplateSettings holds template and output configuration.
type TemplateSettings struct {
	// Path is the DOCX template file.
	Path string

	// OutputDir is where filled contracts are written.
	OutputDir string

	// Schema selects the required fields and token table.
	Schema SchemaName
}

// DeliverySettings holds outbound delivery configuration.
type DeliverySettings struct {
	// Target selects the payload shape and authentication.
	Target DeliveryTarget

	// URL is the endpoint the payload is POSTed to.
	URL string

	// APIKey authenticates against the gateway.
	APIKey string

	// Token is an optional bearer token for the webhook.
	Token string

	// Recipient identifies who receives the document.
	Recipient string

	// CaptionPrefix precedes the locatee name in the caption.
	CaptionPrefix string

	// Timeout bounds a single delivery request.
	Timeout time.Duration

	// RatePerMinute caps outbound requests. Zero disables the limit.
	RatePerMinute int
}

// IsConfigured returns true if deliveries can be attempted.
func (d DeliverySettings) IsConfigured() bool {
	if !d.Target.IsValid() || d.URL == "" {
		return false
	}
	if d.Target.RequiresAPIKey() && d.APIKey == "" {
		return false
	}
	return true
}

// Caption returns the human-readable caption for a locatee.
func (d DeliverySettings) Caption(locatee string) string {
	prefix := d.CaptionPrefix
	if prefix == "" {
		prefix = DefaultCaptionPrefix
	}
	return prefix + " " + locatee
}

// StorageSettings holds history storage configuration.
type StorageSettings struct {
	// Backend selects the history store.
	Backend StorageBackend

	// DataDir holds the history database.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Server holds REST surface settings.
	Server ServerSettings

	// Template holds template and output settings.
	Template TemplateSettings

	// Delivery holds outbound delivery settings.
	Delivery DeliverySettings

	// Storage holds history storage settings.
	Storage StorageSettings
}

// Defaults for settings left unset.
const (
	DefaultPort            = 5000
	DefaultTemplatePath    = "CONTRATO Casa da Ana.docx"
	DefaultCaptionPrefix   = "Contrato Casa da Ana x"
	DefaultDeliveryTimeout = 30 * time.Second
)

// DefaultAppSettings returns settings with sensible defaults.
// Delivery is left unconfigured; the endpoint and credential must be supplied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Port: DefaultPort,
		},
		Template: TemplateSettings{
			Path:      DefaultTemplatePath,
			OutputDir: ".",
			Schema:    SchemaNameBasic,
		},
		Delivery: DeliverySettings{
			Target:        DeliveryTargetGateway,
			CaptionPrefix: DefaultCaptionPrefix,
			Timeout:       DefaultDeliveryTimeout,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
	}
}
