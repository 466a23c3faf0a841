// Package driven declares the infrastructure the core calls out to.
//
// A contract run needs a TemplateLoader to open and save documents, a
// Deliverer to send them and a ConfigStore for persisted settings.
// HistoryStore and HistoryExporter may be nil: without a store nothing is
// recorded and resend is unavailable.
//
// Implementations live under internal/adapters/driven and may import
// domain, never services.
package driven
