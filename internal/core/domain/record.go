package domain

import "time"

// ContractStatus is the outcome of one processed request.
type ContractStatus string

// Contract statuses.
const (
	// ContractStatusGenerated means the file was written and not delivered (dry run).
	ContractStatusGenerated ContractStatus = "generated"

	// ContractStatusDelivered means the remote endpoint accepted the file.
	ContractStatusDelivered ContractStatus = "delivered"

	// ContractStatusDeliveryFailed means the file was written but delivery failed.
	// The file is retained for a resend.
	ContractStatusDeliveryFailed ContractStatus = "delivery_failed"

	// ContractStatusFailed means no usable file was produced.
	ContractStatusFailed ContractStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusGenerated, ContractStatusDelivered, ContractStatusDeliveryFailed, ContractStatusFailed:
		return true
	default:
		return false
	}
}

// CanResend returns true if a retained file may be delivered again.
func (s ContractStatus) CanResend() bool {
	return s == ContractStatusGenerated || s == ContractStatusDeliveryFailed
}

// String returns the string representation.
func (s ContractStatus) String() string {
	return string(s)
}

// ContractRecord is the history entry of one processed request.
type ContractRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// Locatee is the tenant name as supplied.
	Locatee string

	// Filename is the output file name, empty when generation failed.
	Filename string

	// Path is the output file location.
	Path string

	// Schema is the field schema used.
	Schema SchemaName

	// Target is the delivery target at the time of processing.
	Target DeliveryTarget

	// Status is the current outcome.
	Status ContractStatus

	// ErrorKind classifies the last failure, if any.
	ErrorKind ErrorKind

	// Message is a human-readable outcome.
	Message string

	// Unresolved lists Field Map tokens never found in the template.
	Unresolved []string

	// CreatedAt is when the request was processed.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time
}
