package httpapi

import (
	"net/http"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// exampleValues fills the example payload in /api-docs.
var exampleValues = map[string]string{
	domain.KeyName:          "João Silva",
	domain.KeyMaritalStatus: "Solteiro",
	domain.KeyNationality:   "Brasileira",
	domain.KeyOccupation:    "Engenheiro",
	domain.KeyRG:            "12.345.678-9",
	domain.KeyCPF:           "123.456.789-00",
	domain.KeyPhone:         "(61) 99999-9999",
	domain.KeyEmail:         "joao@email.com",
	domain.KeyAddress:       "Rua das Flores, 123, Brasília-DF",
	domain.KeyNights:        "3",
	domain.KeyStartDate:     "10/01/2025",
	domain.KeyEndDate:       "13/01/2025",
	domain.KeyRentalAmount:  "R$ 1.500,00",
}

type endpointDoc struct {
	Description    string            `json:"description"`
	RequiredFields []string          `json:"required_fields,omitempty"`
	Query          map[string]string `json:"query,omitempty"`
	Example        map[string]string `json:"example,omitempty"`
	RequestSchema  map[string]any    `json:"request_schema,omitempty"`
}

type docsResponse struct {
	Title     string                 `json:"title"`
	Version   string                 `json:"version"`
	Schema    string                 `json:"schema"`
	Endpoints map[string]endpointDoc `json:"endpoints"`
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	schema := s.contracts.Schema()
	required := schema.Required()
	example := make(map[string]string, len(required))
	for _, key := range required {
		example[key] = exampleValues[key]
	}

	s.respondJSON(w, http.StatusOK, docsResponse{
		Title:   "API " + ServiceName,
		Version: s.cfg.Version,
		Schema:  schema.Name.String(),
		Endpoints: map[string]endpointDoc{
			"POST /generate-contract": {
				Description:    "Gera o contrato e envia ao destino configurado",
				RequiredFields: required,
				Query:          map[string]string{"dry_run": "true para gerar sem enviar"},
				Example:        example,
				RequestSchema:  s.schemaDoc,
			},
			"GET /health":   {Description: "Health check do serviço"},
			"GET /config":   {Description: "Verifica configurações do serviço"},
			"GET /api-docs": {Description: "Esta documentação"},
		},
	})
}
