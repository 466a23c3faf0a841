package domain

import "strings"

// Input keys accepted from callers. They match the JSON field names of the
// generate-contract request.
const (
	KeyName          = "nome_do_locatario"
	KeyMaritalStatus = "estado_civil"
	KeyNationality   = "nacionalidade"
	KeyOccupation    = "profissao"
	KeyRG            = "numero_do_rg"
	KeyCPF           = "numero_do_cpf"
	KeyPhone         = "telefone_celular"
	KeyEmail         = "email"
	KeyAddress       = "endereco"
	KeyNights        = "qtd_noites"
	KeyStartDate     = "dia_inicio"
	KeyEndDate       = "dia_fim"
	KeyRentalAmount  = "valor_locacao"
)

// TenantData is the typed record of a locatee supplied by a caller.
// Values are kept verbatim; trimming is applied only when checking presence.
type TenantData struct {
	Name          string
	MaritalStatus string
	Nationality   string
	Occupation    string
	RG            string
	CPF           string
	Phone         string
	Email         string
	Address       string

	// Extended contract fields.
	Nights       string
	StartDate    string
	EndDate      string
	RentalAmount string
}

// TenantFromFields builds a TenantData from raw input keyed by input key.
// Unknown keys are ignored.
func TenantFromFields(fields map[string]string) TenantData {
	var t TenantData
	for k, v := range fields {
		t.Set(k, v)
	}
	return t
}

// Set assigns the value for an input key. It returns false for unknown keys.
func (t *TenantData) Set(key, value string) bool {
	switch key {
	case KeyName:
		t.Name = value
	case KeyMaritalStatus:
		t.MaritalStatus = value
	case KeyNationality:
		t.Nationality = value
	case KeyOccupation:
		t.Occupation = value
	case KeyRG:
		t.RG = value
	case KeyCPF:
		t.CPF = value
	case KeyPhone:
		t.Phone = value
	case KeyEmail:
		t.Email = value
	case KeyAddress:
		t.Address = value
	case KeyNights:
		t.Nights = value
	case KeyStartDate:
		t.StartDate = value
	case KeyEndDate:
		t.EndDate = value
	case KeyRentalAmount:
		t.RentalAmount = value
	default:
		return false
	}
	return true
}

// Get returns the value for an input key, or "" for unknown keys.
func (t TenantData) Get(key string) string {
	switch key {
	case KeyName:
		return t.Name
	case KeyMaritalStatus:
		return t.MaritalStatus
	case KeyNationality:
		return t.Nationality
	case KeyOccupation:
		return t.Occupation
	case KeyRG:
		return t.RG
	case KeyCPF:
		return t.CPF
	case KeyPhone:
		return t.Phone
	case KeyEmail:
		return t.Email
	case KeyAddress:
		return t.Address
	case KeyNights:
		return t.Nights
	case KeyStartDate:
		return t.StartDate
	case KeyEndDate:
		return t.EndDate
	case KeyRentalAmount:
		return t.RentalAmount
	default:
		return ""
	}
}

// Has reports whether the value for key is present and not blank.
func (t TenantData) Has(key string) bool {
	return strings.TrimSpace(t.Get(key)) != ""
}

// Fields returns the non-empty values keyed by input key.
func (t TenantData) Fields() map[string]string {
	out := make(map[string]string)
	for _, k := range allKeys {
		if v := t.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

var allKeys = []string{
	KeyName, KeyMaritalStatus, KeyNationality, KeyOccupation, KeyRG, KeyCPF,
	KeyPhone, KeyEmail, KeyAddress, KeyNights, KeyStartDate, KeyEndDate, KeyRentalAmount,
}

// IsKnownKey reports whether key is an accepted input key.
func IsKnownKey(key string) bool {
	for _, k := range allKeys {
		if k == key {
			return true
		}
	}
	return false
}
