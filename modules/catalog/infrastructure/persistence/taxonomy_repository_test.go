package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/pkg/constants"
)

// stubTx satisfies repo.Tx so repository queries can be driven without a
// database. Query results are consumed in call order.
type stubTx struct {
	queries []pgx.Rows
	row     pgx.Row
	inserts int
}

func (t *stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	next := t.queries[0]
	t.queries = t.queries[1:]
	return next, nil
}

func (t *stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	t.inserts++
	return t.row
}

func (t *stubTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

type stubRow struct {
	err    error
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignValues(dest, r.values)
}

type stubRows struct {
	values [][]any
	idx    int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	r.idx++
	return r.idx <= len(r.values)
}

func (r *stubRows) Scan(dest ...any) error {
	return assignValues(dest, r.values[r.idx-1])
}

func assignValues(dest, src []any) error {
	if len(dest) != len(src) {
		return fmt.Errorf("expected %d scan destinations, got %d", len(src), len(dest))
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(src[i]))
	}
	return nil
}

func taxonomyValueRow(id uint, tenantID uuid.UUID, name string, sortOrder int, now time.Time) []any {
	return []any{
		id, tenantID.String(), uint(1), "topic", name,
		sql.NullString{}, sortOrder, sql.NullInt64{}, true,
		uint(0), uint(0), now, now,
	}
}

func TestTaxonomyRepository_GetOrCreate_Creates(t *testing.T) {
	tenantID := uuid.New()
	now := time.Now()
	tx := &stubTx{
		queries: []pgx.Rows{&stubRows{}},
		row:     stubRow{values: []any{uint(5), 1, now, now}},
	}
	ctx := context.WithValue(context.Background(), constants.TxKey, tx)

	repository := NewTaxonomyRepository()
	scope := taxonomy.Scope{TenantID: tenantID, CollectionID: 1, Dimension: taxonomy.Topic}
	value, err := repository.GetOrCreate(ctx, scope, "Groen")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.inserts)
	assert.Equal(t, uint(5), value.ID())
	assert.Equal(t, "Groen", value.Name())
	assert.Equal(t, 1, value.SortOrder())
}

func TestTaxonomyRepository_GetOrCreate_LostRaceFallsBackToLookup(t *testing.T) {
	tenantID := uuid.New()
	now := time.Now()
	tx := &stubTx{
		queries: []pgx.Rows{
			// The value does not exist yet when the first lookup runs.
			&stubRows{},
			// After the insert collides, the lookup finds the winner's row.
			&stubRows{values: [][]any{taxonomyValueRow(7, tenantID, "Groen", 3, now)}},
		},
		row: stubRow{err: &pgconn.PgError{Code: "23505"}},
	}
	ctx := context.WithValue(context.Background(), constants.TxKey, tx)

	repository := NewTaxonomyRepository()
	scope := taxonomy.Scope{TenantID: tenantID, CollectionID: 1, Dimension: taxonomy.Topic}
	value, err := repository.GetOrCreate(ctx, scope, "Groen")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.inserts)
	assert.Equal(t, uint(7), value.ID())
	assert.Equal(t, "Groen", value.Name())
	assert.Equal(t, 3, value.SortOrder())
	assert.Empty(t, tx.queries)
}
