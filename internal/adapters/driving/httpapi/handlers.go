package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// maxBodyBytes bounds the request body.
const maxBodyBytes = 1 << 20

// generateResponse is the body of a successful POST /generate-contract.
type generateResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Filename   string   `json:"filename"`
	Locatario  string   `json:"locatario"`
	ID         string   `json:"id"`
	Delivered  bool     `json:"delivered"`
	Unresolved []string `json:"unresolved"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		s.respondError(w, http.StatusUnsupportedMediaType, errorResponse{
			Error: msgContentType,
			Kind:  string(domain.KindValidation),
		})
		return
	}

	body, err := decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.log.Warn("Rejected request body: %v", err)
		s.respondError(w, http.StatusBadRequest, errorResponse{
			Error:   msgInvalidJSON,
			Kind:    string(domain.KindValidation),
			Message: err.Error(),
		})
		return
	}
	if err := s.validator.Validate(body); err != nil {
		s.log.Warn("Request does not match schema: %v", err)
		s.respondError(w, http.StatusBadRequest, errorResponse{
			Error:   "Campos devem ser texto ou número",
			Kind:    string(domain.KindValidation),
			Message: err.Error(),
		})
		return
	}

	fields := toFields(body)
	locatee := fields[domain.KeyName]
	if locatee == "" {
		locatee = "N/A"
	}
	s.log.Info("New contract request for: %s", locatee)

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))
	result, err := s.contracts.Process(r.Context(), domain.ContractRequest{Fields: fields, DryRun: dryRun})
	if err != nil {
		s.respondFailure(w, result, err)
		return
	}

	s.log.Info("Contract processed for: %s", result.Locatee)
	s.respondJSON(w, http.StatusOK, generateResponse{
		Success:    true,
		Message:    result.Message,
		Filename:   result.Filename,
		Locatario:  result.Locatee,
		ID:         result.ID,
		Delivered:  result.Delivered,
		Unresolved: result.Unresolved,
	})
}

// respondFailure maps a pipeline error to a status code and body.
func (s *Server) respondFailure(w http.ResponseWriter, result *domain.ContractResult, err error) {
	kind := domain.KindOf(err)
	body := errorResponse{Kind: string(kind), Error: err.Error()}
	if result != nil {
		body.ID = result.ID
		body.Filename = result.Filename
	}

	code := http.StatusInternalServerError
	switch kind {
	case domain.KindValidation:
		code = http.StatusBadRequest
		body.MissingFields = domain.MissingFields(err)
	case domain.KindNotFound:
		body.Message = "Template do contrato não encontrado"
	case domain.KindGeneration:
		body.Message = "Falha ao gerar o contrato"
	case domain.KindDelivery:
		code = http.StatusBadGateway
		body.Message = "Contrato gerado mas não enviado; o arquivo foi mantido"
	default:
		body.Error = msgInternal
	}

	var derr *domain.DeliveryError
	if errors.As(err, &derr) && derr.StatusCode != 0 {
		s.log.Error("Contract %s failed (%s, upstream status %d): %v", body.ID, kind, derr.StatusCode, err)
	} else {
		s.log.Error("Contract %s failed (%s): %v", body.ID, kind, err)
	}
	s.respondError(w, code, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": s.cfg.Version,
	})
}

// configResponse never carries URLs or credentials.
type configResponse struct {
	DeliveryConfigured bool   `json:"delivery_configured"`
	TemplateExists     bool   `json:"template_exists"`
	ServiceType        string `json:"service_type"`
	Schema             string `json:"schema"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	settings := s.cfg.Settings
	s.respondJSON(w, http.StatusOK, configResponse{
		DeliveryConfigured: settings.Delivery.IsConfigured(),
		TemplateExists:     s.fileExists(settings.Template.Path),
		ServiceType:        settings.Delivery.Target.String(),
		Schema:             s.contracts.Schema().Name.String(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("No route for %s %s", r.Method, r.URL.Path)
	s.respondError(w, http.StatusNotFound, errorResponse{
		Error:   msgNotFoundRoute,
		Message: msgSeeDocs,
	})
}
