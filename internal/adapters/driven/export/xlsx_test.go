package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

func TestXLSXExporter_Export(t *testing.T) {
	created := time.Date(2024, 1, 15, 14, 30, 22, 0, time.Local)
	records := []domain.ContractRecord{
		{
			ID:         "id-2",
			Locatee:    "João Silva",
			Filename:   "CONTRATO_João_Silva_20240115_143022.docx",
			Schema:     domain.SchemaNameExtended,
			Target:     domain.DeliveryTargetWebhook,
			Status:     domain.ContractStatusDeliveryFailed,
			ErrorKind:  domain.KindDelivery,
			Message:    "status 500",
			Unresolved: []string{"{{ email }}", "{{email}}"},
			CreatedAt:  created,
			UpdatedAt:  created,
		},
		{
			ID:      "id-1",
			Locatee: "Maria",
			Schema:  domain.SchemaNameBasic,
			Target:  domain.DeliveryTargetGateway,
			Status:  domain.ContractStatusFailed,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Export(context.Background(), records, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])

	assert.Equal(t, "id-2", rows[1][0])
	assert.Equal(t, "João Silva", rows[1][1])
	assert.Equal(t, "extended", rows[1][3])
	assert.Equal(t, "webhook", rows[1][4])
	assert.Equal(t, "delivery_failed", rows[1][5])
	assert.Equal(t, "delivery", rows[1][6])
	assert.Equal(t, "{{ email }}, {{email}}", rows[1][8])
	assert.Equal(t, "2024-01-15 14:30:22", rows[1][9])

	assert.Equal(t, "id-1", rows[2][0])
	assert.Equal(t, "failed", rows[2][5])
}

func TestXLSXExporter_Export_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Export(context.Background(), nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers, rows[0])
}

func TestXLSXExporter_Export_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewXLSXExporter().Export(ctx, []domain.ContractRecord{{ID: "x"}}, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestXLSXExporter_Export_WriteError(t *testing.T) {
	err := NewXLSXExporter().Export(context.Background(), nil, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx write")
}
