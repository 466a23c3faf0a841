package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRecord(id string, created time.Time) *domain.ContractRecord {
	return &domain.ContractRecord{
		ID:         id,
		Locatee:    "Maria Silva",
		Filename:   "CONTRATO_Maria_Silva_20240115_143022.docx",
		Path:       "/tmp/CONTRATO_Maria_Silva_20240115_143022.docx",
		Schema:     domain.SchemaNameBasic,
		Target:     domain.DeliveryTargetGateway,
		Status:     domain.ContractStatusDelivered,
		Message:    "ok",
		Unresolved: []string{"{{ email }}"},
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, store.Path())
	assert.Contains(t, store.Path(), DatabaseFile)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, testRecord("a", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", got.Locatee)

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 15, 14, 30, 22, 123, time.UTC)

	require.NoError(t, store.Save(ctx, testRecord("rec-1", created)))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, domain.SchemaNameBasic, got.Schema)
	assert.Equal(t, domain.DeliveryTargetGateway, got.Target)
	assert.Equal(t, domain.ContractStatusDelivered, got.Status)
	assert.Equal(t, []string{"{{ email }}"}, got.Unresolved)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestStore_SaveUpdatesExisting(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	record := testRecord("rec-1", created)
	record.Status = domain.ContractStatusDeliveryFailed
	record.ErrorKind = domain.KindDelivery
	require.NoError(t, store.Save(ctx, record))

	record.Status = domain.ContractStatusDelivered
	record.ErrorKind = domain.KindNone
	record.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusDelivered, got.Status)
	assert.Equal(t, domain.KindNone, got.ErrorKind)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, created.Add(time.Hour).Equal(got.UpdatedAt))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_SaveFillsTimestamps(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	record := testRecord("rec-1", time.Time{})
	record.Unresolved = nil
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Empty(t, got.Unresolved)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_List_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testRecord("old", base)))
	require.NoError(t, store.Save(ctx, testRecord("new", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(ctx, testRecord("mid", base.Add(time.Hour))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
