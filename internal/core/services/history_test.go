package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leasefill/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// recordingExporter writes one line per record.
type recordingExporter struct {
	got []domain.ContractRecord
}

func (e *recordingExporter) Export(_ context.Context, records []domain.ContractRecord, w io.Writer) error {
	e.got = records
	for _, r := range records {
		fmt.Fprintln(w, r.ID)
	}
	return nil
}

func seededHistory(t *testing.T) *memory.HistoryStore {
	t.Helper()
	store := memory.NewHistoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(context.Background(), &domain.ContractRecord{
			ID:        fmt.Sprintf("rec-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return store
}

func TestHistoryService_ListAndGet(t *testing.T) {
	svc := NewHistoryService(seededHistory(t), nil)
	ctx := context.Background()

	records, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-2", records[0].ID)

	rec, err := svc.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
}

func TestHistoryService_Export(t *testing.T) {
	exporter := &recordingExporter{}
	svc := NewHistoryService(seededHistory(t), exporter)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	assert.Len(t, exporter.got, 3)
	assert.Equal(t, "rec-2\nrec-1\nrec-0\n", buf.String())
}

func TestHistoryService_NotConfigured(t *testing.T) {
	svc := NewHistoryService(nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, 0)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))

	_, err = svc.Get(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))

	err = svc.Export(ctx, io.Discard)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}
