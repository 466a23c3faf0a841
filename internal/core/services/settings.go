package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyServerPort     = "server.port"
	KeyServerDebug    = "server.debug"
	KeyTemplatePath   = "template.path"
	KeyOutputDir      = "template.output_dir"
	KeySchema         = "template.schema"
	KeyTarget         = "delivery.target"
	KeyDeliveryURL    = "delivery.url"
	KeyAPIKey         = "delivery.api_key"
	KeyToken          = "delivery.token"
	KeyRecipient      = "delivery.recipient"
	KeyCaptionPrefix  = "delivery.caption_prefix"
	KeyTimeout        = "delivery.timeout"
	KeyRatePerMinute  = "delivery.rate_per_minute"
	KeyStorageBackend = "storage.backend"
	KeyDataDir        = "storage.data_dir"
)

// Setting sources, highest precedence first.
const (
	SourceOverride = "override"
	SourceEnv      = "env"
	SourceFile     = "file"
	SourceDefault  = "default"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindDuration
	kindSchema
	kindTarget
	kindBackend
)

type settingDef struct {
	key    string
	env    []string
	kind   valueKind
	secret bool
}

// settingDefs lists every setting in display order. Environment names stay
// compatible with existing deployments.
var settingDefs = []settingDef{
	{key: KeyServerPort, env: []string{"PORT"}, kind: kindInt},
	{key: KeyServerDebug, env: []string{"DEBUG"}, kind: kindBool},
	{key: KeyTemplatePath, env: []string{"LEASEFILL_TEMPLATE"}},
	{key: KeyOutputDir, env: []string{"LEASEFILL_OUTPUT_DIR"}},
	{key: KeySchema, env: []string{"LEASEFILL_SCHEMA"}, kind: kindSchema},
	{key: KeyTarget, env: []string{"LEASEFILL_TARGET"}, kind: kindTarget},
	{key: KeyDeliveryURL, env: []string{"EVOLUTION_API_URL", "WEBHOOK_URL"}},
	{key: KeyAPIKey, env: []string{"EVOLUTION_API_KEY"}, secret: true},
	{key: KeyToken, env: []string{"WEBHOOK_TOKEN"}, secret: true},
	{key: KeyRecipient, env: []string{"PHONE_NUMBER"}},
	{key: KeyCaptionPrefix, env: []string{"LEASEFILL_CAPTION_PREFIX"}},
	{key: KeyTimeout, kind: kindDuration},
	{key: KeyRatePerMinute, kind: kindInt},
	{key: KeyStorageBackend, env: []string{"LEASEFILL_STORAGE"}, kind: kindBackend},
	{key: KeyDataDir, env: []string{"LEASEFILL_DATA_DIR"}},
}

// SettingsService resolves settings with the precedence
// override > environment > config file > default.
type SettingsService struct {
	configStore driven.ConfigStore
	overrides   map[string]string
	lookupEnv   func(string) (string, bool)
	log         *logger.Logger
}

// NewSettingsService creates a settings service. overrides holds values set
// explicitly for this run, usually from command-line flags.
func NewSettingsService(configStore driven.ConfigStore, overrides map[string]string, log *logger.Logger) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		overrides:   overrides,
		lookupEnv:   os.LookupEnv,
		log:         log,
	}
}

// Get returns the resolved settings. Values that fail to parse are logged
// and replaced by the default.
func (s *SettingsService) Get() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	target := s.target(defaults.Delivery.Target)

	schema := domain.SchemaName(s.getString(KeySchema, defaults.Template.Schema.String()))
	if !schema.IsValid() {
		s.log.Warn("unknown schema %q, using %s", schema, defaults.Template.Schema)
		schema = defaults.Template.Schema
	}

	backend := domain.StorageBackend(s.getString(KeyStorageBackend, defaults.Storage.Backend.String()))
	if !backend.IsValid() {
		s.log.Warn("unknown storage backend %q, using %s", backend, defaults.Storage.Backend)
		backend = defaults.Storage.Backend
	}

	url, _ := s.resolveDelivery(KeyDeliveryURL, target)

	return domain.AppSettings{
		Server: domain.ServerSettings{
			Port:  s.getInt(KeyServerPort, defaults.Server.Port),
			Debug: s.getBool(KeyServerDebug, defaults.Server.Debug),
		},
		Template: domain.TemplateSettings{
			Path:      s.getString(KeyTemplatePath, defaults.Template.Path),
			OutputDir: s.getString(KeyOutputDir, defaults.Template.OutputDir),
			Schema:    schema,
		},
		Delivery: domain.DeliverySettings{
			Target:        target,
			URL:           url,
			APIKey:        s.getString(KeyAPIKey, ""),
			Token:         s.getString(KeyToken, ""),
			Recipient:     s.getString(KeyRecipient, ""),
			CaptionPrefix: s.getString(KeyCaptionPrefix, defaults.Delivery.CaptionPrefix),
			Timeout:       s.getDuration(KeyTimeout, defaults.Delivery.Timeout),
			RatePerMinute: s.getInt(KeyRatePerMinute, defaults.Delivery.RatePerMinute),
		},
		Storage: domain.StorageSettings{
			Backend: backend,
			DataDir: s.getString(KeyDataDir, defaults.Storage.DataDir),
		},
	}
}

// Set validates value for key and persists it to the config file.
func (s *SettingsService) Set(key, value string) error {
	def, ok := lookupDef(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	typed, err := parseValue(def.kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys returns every settable key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingDefs))
	for i, def := range settingDefs {
		keys[i] = def.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Describe lists every setting with its resolved value and source.
// Credentials are masked.
func (s *SettingsService) Describe() []driving.SettingValue {
	resolved := s.Get()
	values := map[string]string{
		KeyServerPort:     strconv.Itoa(resolved.Server.Port),
		KeyServerDebug:    strconv.FormatBool(resolved.Server.Debug),
		KeyTemplatePath:   resolved.Template.Path,
		KeyOutputDir:      resolved.Template.OutputDir,
		KeySchema:         resolved.Template.Schema.String(),
		KeyTarget:         resolved.Delivery.Target.String(),
		KeyDeliveryURL:    resolved.Delivery.URL,
		KeyAPIKey:         resolved.Delivery.APIKey,
		KeyToken:          resolved.Delivery.Token,
		KeyRecipient:      resolved.Delivery.Recipient,
		KeyCaptionPrefix:  resolved.Delivery.CaptionPrefix,
		KeyTimeout:        resolved.Delivery.Timeout.String(),
		KeyRatePerMinute:  strconv.Itoa(resolved.Delivery.RatePerMinute),
		KeyStorageBackend: resolved.Storage.Backend.String(),
		KeyDataDir:        resolved.Storage.DataDir,
	}

	out := make([]driving.SettingValue, 0, len(settingDefs))
	for _, def := range settingDefs {
		var source string
		if def.key == KeyDeliveryURL {
			_, source = s.resolveDelivery(def.key, resolved.Delivery.Target)
		} else {
			_, source = s.resolve(def)
		}
		value := values[def.key]
		if def.secret {
			value = MaskSecret(value)
		}
		out = append(out, driving.SettingValue{Key: def.key, Value: value, Source: source, Env: def.env})
	}
	return out
}

// MaskSecret hides all but the last four characters of a credential.
func MaskSecret(v string) string {
	switch {
	case v == "":
		return ""
	case len(v) <= 4:
		return "****"
	default:
		return "****" + v[len(v)-4:]
	}
}

// target resolves the delivery target. When it is not set anywhere, a
// WEBHOOK_URL without EVOLUTION_API_URL selects the webhook.
func (s *SettingsService) target(defaultVal domain.DeliveryTarget) domain.DeliveryTarget {
	def, _ := lookupDef(KeyTarget)
	raw, source := s.resolve(def)
	if source == SourceDefault {
		_, hasGateway := s.env("EVOLUTION_API_URL")
		_, hasWebhook := s.env("WEBHOOK_URL")
		if hasWebhook && !hasGateway {
			return domain.DeliveryTargetWebhook
		}
		return defaultVal
	}

	target := domain.DeliveryTarget(raw)
	if !target.IsValid() {
		s.log.Warn("unknown delivery target %q, using %s", raw, defaultVal)
		return defaultVal
	}
	return target
}

// resolveDelivery resolves the endpoint URL, consulting only the
// environment variable that belongs to target.
func (s *SettingsService) resolveDelivery(key string, target domain.DeliveryTarget) (string, string) {
	def, _ := lookupDef(key)
	if target == domain.DeliveryTargetWebhook {
		def.env = []string{"WEBHOOK_URL"}
	} else {
		def.env = []string{"EVOLUTION_API_URL"}
	}
	raw, source := s.resolve(def)
	if source == SourceDefault {
		return "", source
	}
	return raw, source
}

// resolve returns the raw value of a setting and its source.
func (s *SettingsService) resolve(def settingDef) (string, string) {
	if v, ok := s.overrides[def.key]; ok {
		return v, SourceOverride
	}
	for _, name := range def.env {
		if v, ok := s.env(name); ok {
			return v, SourceEnv
		}
	}
	if v, ok := s.configStore.Get(def.key); ok && v != nil {
		return fmt.Sprint(v), SourceFile
	}
	return "", SourceDefault
}

func (s *SettingsService) env(name string) (string, bool) {
	v, ok := s.lookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (s *SettingsService) getString(key, defaultVal string) string {
	def, _ := lookupDef(key)
	raw, source := s.resolve(def)
	if source == SourceDefault {
		return defaultVal
	}
	return raw
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	def, _ := lookupDef(key)
	raw, source := s.resolve(def)
	if source == SourceDefault {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.log.Warn("%s from %s: %q is not an integer, using %d", key, source, raw, defaultVal)
		return defaultVal
	}
	return n
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	def, _ := lookupDef(key)
	raw, source := s.resolve(def)
	if source == SourceDefault {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		s.log.Warn("%s from %s: %q is not a boolean, using %t", key, source, raw, defaultVal)
		return defaultVal
	}
	return b
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	def, _ := lookupDef(key)
	raw, source := s.resolve(def)
	if source == SourceDefault {
		return defaultVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		s.log.Warn("%s from %s: %q is not a positive duration, using %s", key, source, raw, defaultVal)
		return defaultVal
	}
	return d
}

func lookupDef(key string) (settingDef, bool) {
	for _, def := range settingDefs {
		if def.key == key {
			return def, true
		}
	}
	return settingDef{key: key}, false
}

// parseValue converts a command-line value to the type stored in the file.
func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindBool:
		return strconv.ParseBool(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration must be positive")
		}
		return d.String(), nil
	case kindSchema:
		if !domain.SchemaName(value).IsValid() {
			return nil, fmt.Errorf("unknown schema %q", value)
		}
	case kindTarget:
		if !domain.DeliveryTarget(value).IsValid() {
			return nil, fmt.Errorf("unknown delivery target %q", value)
		}
	case kindBackend:
		if !domain.StorageBackend(value).IsValid() {
			return nil, fmt.Errorf("unknown storage backend %q", value)
		}
	}
	return value, nil
}
