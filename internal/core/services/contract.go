package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// Ensure ContractService implements the interface.
var _ driving.ContractService = (*ContractService)(nil)

// Result messages returned to callers.
const (
	msgDelivered = "Contrato gerado e enviado com sucesso!"
	msgGenerated = "Contrato gerado (envio não solicitado)"
)

// ContractConfig describes where templates come from and where output goes.
type ContractConfig struct {
	Schema       domain.FieldSchema
	TemplatePath string
	OutputDir    string
	Target       domain.DeliveryTarget
}

// ContractService runs the fill-and-deliver pipeline for one request at a
// time per call. Calls share no mutable state besides the history store.
type ContractService struct {
	cfg       ContractConfig
	builder   *FieldMapBuilder
	filler    *TemplateFiller
	deliverer driven.Deliverer
	history   driven.HistoryStore
	log       *logger.Logger

	newID func() string
	now   func() time.Time
}

// NewContractService creates the pipeline. history may be nil.
func NewContractService(
	cfg ContractConfig,
	filler *TemplateFiller,
	deliverer driven.Deliverer,
	history driven.HistoryStore,
	log *logger.Logger,
) *ContractService {
	return &ContractService{
		cfg:       cfg,
		builder:   NewFieldMapBuilder(log),
		filler:    filler,
		deliverer: deliverer,
		history:   history,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Schema returns the field schema requests are validated against.
func (s *ContractService) Schema() domain.FieldSchema {
	return s.cfg.Schema
}

// Process validates, generates and delivers one contract.
func (s *ContractService) Process(ctx context.Context, req domain.ContractRequest) (*domain.ContractResult, error) {
	s.log.Section("Contract")

	tenant := domain.TenantFromFields(req.Fields)
	locatee := tenant.Name
	if locatee == "" {
		locatee = "N/A"
	}
	s.log.Info("new contract request for %s", locatee)

	now := s.now()
	record := &domain.ContractRecord{
		ID:        s.newID(),
		Locatee:   tenant.Name,
		Schema:    s.cfg.Schema.Name,
		Target:    s.cfg.Target,
		CreatedAt: now,
		UpdatedAt: now,
	}

	fm, err := s.builder.Build(s.cfg.Schema, tenant)
	if err != nil {
		return s.fail(ctx, record, err)
	}

	gen, err := s.filler.Generate(ctx, s.cfg.TemplatePath, s.cfg.OutputDir, tenant.Name, fm)
	if err != nil {
		return s.fail(ctx, record, err)
	}
	record.Filename = gen.Filename
	record.Path = gen.Path
	record.Unresolved = gen.Unresolved

	if req.DryRun {
		record.Status = domain.ContractStatusGenerated
		record.Message = msgGenerated
		s.save(ctx, record)
		return resultFor(record), nil
	}

	return s.deliver(ctx, record)
}

// Resend delivers the retained file of an earlier request again.
// The delivery client still makes exactly one attempt.
func (s *ContractService) Resend(ctx context.Context, id string) (*domain.ContractResult, error) {
	if s.history == nil {
		return nil, fmt.Errorf("history store: %w", domain.ErrNotConfigured)
	}

	record, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanResend() {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidInput, id, record.Status)
	}

	s.log.Section("Resend")
	s.log.Info("resending %s for %s", record.Filename, record.Locatee)
	return s.deliver(ctx, record)
}

func (s *ContractService) deliver(ctx context.Context, record *domain.ContractRecord) (*domain.ContractResult, error) {
	if s.deliverer == nil || !s.deliverer.Configured() {
		err := &domain.DeliveryError{Err: fmt.Errorf("delivery endpoint: %w", domain.ErrNotConfigured)}
		return s.failDelivery(ctx, record, err)
	}

	receipt, err := s.deliverer.Deliver(ctx, record.Path, record.Locatee)
	if err != nil {
		return s.failDelivery(ctx, record, err)
	}

	s.log.Info("contract delivered: %s (status %d)", record.Filename, receipt.StatusCode)
	record.Status = domain.ContractStatusDelivered
	record.ErrorKind = domain.KindNone
	record.Message = msgDelivered
	record.UpdatedAt = s.now()
	s.save(ctx, record)

	return resultFor(record), nil
}

// failDelivery keeps the generated file and marks it resendable.
func (s *ContractService) failDelivery(
	ctx context.Context,
	record *domain.ContractRecord,
	err error,
) (*domain.ContractResult, error) {
	var derr *domain.DeliveryError
	if !errors.As(err, &derr) {
		err = &domain.DeliveryError{Err: err}
	}
	s.log.Error("delivery of %s failed, file kept: %v", record.Filename, err)

	record.Status = domain.ContractStatusDeliveryFailed
	record.ErrorKind = domain.KindDelivery
	record.Message = err.Error()
	record.UpdatedAt = s.now()
	s.save(ctx, record)

	return resultFor(record), err
}

func (s *ContractService) fail(ctx context.Context, record *domain.ContractRecord, err error) (*domain.ContractResult, error) {
	kind := domain.KindOf(err)
	s.log.Error("contract for %q failed (%s): %v", record.Locatee, kind, err)

	record.Status = domain.ContractStatusFailed
	record.ErrorKind = kind
	record.Message = err.Error()
	record.UpdatedAt = s.now()
	s.save(ctx, record)

	return resultFor(record), err
}

func (s *ContractService) save(ctx context.Context, record *domain.ContractRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, record); err != nil {
		s.log.Warn("could not record contract %s: %v", record.ID, err)
	}
}

func resultFor(record *domain.ContractRecord) *domain.ContractResult {
	ok := record.Status == domain.ContractStatusDelivered || record.Status == domain.ContractStatusGenerated
	unresolved := record.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	return &domain.ContractResult{
		ID:         record.ID,
		Success:    ok,
		Filename:   record.Filename,
		Locatee:    record.Locatee,
		Unresolved: unresolved,
		Delivered:  record.Status == domain.ContractStatusDelivered,
		Message:    record.Message,
	}
}
