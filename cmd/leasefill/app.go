package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/leasefill/internal/adapters/driven/config/file"
	"github.com/custodia-labs/leasefill/internal/adapters/driven/delivery"
	"github.com/custodia-labs/leasefill/internal/adapters/driven/docx"
	"github.com/custodia-labs/leasefill/internal/adapters/driven/export"
	"github.com/custodia-labs/leasefill/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/leasefill/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/leasefill/internal/adapters/driving/cli"
	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/core/services"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// buildApp wires the services for one command run. Settings are resolved
// once here and passed by value to every constructor.
func buildApp(opts cli.Options) (*cli.App, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr; stdout carries command output and the MCP stdio stream.
	log := logger.New(os.Stderr, opts.Verbose)

	settingsService := services.NewSettingsService(configStore, overridesFrom(opts), log)
	settings := settingsService.Get()
	log.SetVerbose(opts.Verbose || settings.Server.Debug)

	schema, err := domain.SchemaByName(settings.Template.Schema)
	if err != nil {
		return nil, err
	}

	history, closeHistory, err := openHistory(settings.Storage, opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	loader := docx.NewLoader()
	contracts := services.NewContractService(
		services.ContractConfig{
			Schema:       schema,
			TemplatePath: settings.Template.Path,
			OutputDir:    settings.Template.OutputDir,
			Target:       settings.Delivery.Target,
		},
		services.NewTemplateFiller(loader, log),
		delivery.NewClient(settings.Delivery, log),
		history,
		log,
	)

	log.Debug("template=%s schema=%s target=%s storage=%s",
		settings.Template.Path, schema.Name, settings.Delivery.Target, settings.Storage.Backend)

	return &cli.App{
		Settings:        settings,
		SettingsService: settingsService,
		Contracts:       contracts,
		Inspector:       services.NewTemplateInspector(loader, log),
		History:         services.NewHistoryService(history, export.NewXLSXExporter()),
		Log:             log,
		Close:           closeHistory,
	}, nil
}

// overridesFrom maps explicitly set flags to setting keys.
func overridesFrom(opts cli.Options) map[string]string {
	overrides := make(map[string]string)
	if opts.TemplatePath != "" {
		overrides[services.KeyTemplatePath] = opts.TemplatePath
	}
	if opts.OutputDir != "" {
		overrides[services.KeyOutputDir] = opts.OutputDir
	}
	if opts.Schema != "" {
		overrides[services.KeySchema] = opts.Schema
	}
	if opts.Target != "" {
		overrides[services.KeyTarget] = opts.Target
	}
	if opts.Port > 0 {
		overrides[services.KeyServerPort] = strconv.Itoa(opts.Port)
	}
	return overrides
}

// openHistory opens the configured history store. With an explicit config
// directory and no data directory, the database lives under it.
func openHistory(storage domain.StorageSettings, configDir string) (driven.HistoryStore, func() error, error) {
	if storage.Backend == domain.StorageBackendMemory {
		return memory.NewHistoryStore(), nil, nil
	}

	dataDir := storage.DataDir
	switch {
	case dataDir != "":
	case configDir != "":
		dataDir = filepath.Join(configDir, "data")
	default:
		dir, err := sqlite.DefaultDataDir()
		if err != nil {
			return nil, nil, err
		}
		dataDir = dir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	return store, store.Close, nil
}
