package services

import (
	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// FieldMapBuilder validates tenant input and expands it into a Field Map.
type FieldMapBuilder struct {
	log *logger.Logger
}

// NewFieldMapBuilder creates a builder.
func NewFieldMapBuilder(log *logger.Logger) *FieldMapBuilder {
	return &FieldMapBuilder{log: log}
}

// Validate returns a *domain.ValidationError naming every required field of
// schema that is absent or blank in tenant.
func (b *FieldMapBuilder) Validate(schema domain.FieldSchema, tenant domain.TenantData) error {
	var missing []string
	for _, key := range schema.Required() {
		if !tenant.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// Build validates tenant and returns every token spelling of every schema
// field mapped to its value. Entries follow schema field order; within a
// field the canonical name comes first and each name yields its spaced then
// compact token.
func (b *FieldMapBuilder) Build(schema domain.FieldSchema, tenant domain.TenantData) (domain.FieldMap, error) {
	if err := b.Validate(schema, tenant); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var fm domain.FieldMap
	for _, field := range schema.Fields {
		value, ok := b.value(field, tenant)
		if !ok {
			continue
		}
		for _, tok := range field.Variants() {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			fm = append(fm, domain.FieldEntry{Token: tok, Value: value})
		}
	}

	b.log.Debug("field map: %d tokens for %d fields", len(fm), len(schema.Fields))
	return fm, nil
}

func (b *FieldMapBuilder) value(field domain.FieldSpec, tenant domain.TenantData) (string, bool) {
	if !field.Derived {
		return tenant.Get(field.Key), true
	}

	// The only derived field is the half rental amount.
	if !tenant.Has(domain.KeyRentalAmount) {
		return "", false
	}
	if _, err := domain.ParseBRL(tenant.RentalAmount); err != nil {
		b.log.Warn("rental amount %q is not a number, using %s for half value", tenant.RentalAmount, domain.ZeroBRL)
		return domain.ZeroBRL, true
	}
	return domain.HalfBRL(tenant.RentalAmount), true
}
