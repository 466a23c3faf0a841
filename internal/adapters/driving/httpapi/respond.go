package httpapi

import (
	"encoding/json"
	"net/http"
)

// Messages returned to callers.
const (
	msgInternal      = "Erro interno do servidor"
	msgNotFoundRoute = "Endpoint não encontrado"
	msgSeeDocs       = "Consulte /api-docs para ver endpoints disponíveis"
	msgContentType   = "Content-Type deve ser application/json"
	msgInvalidJSON   = "Corpo da requisição não é um JSON válido"
	msgMethod        = "Método não permitido"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error"`
	Kind          string   `json:"kind,omitempty"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	ID            string   `json:"id,omitempty"`
	Filename      string   `json:"filename,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to encode JSON response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, body errorResponse) {
	body.Success = false
	s.respondJSON(w, code, body)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	s.respondError(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethod})
}
