package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelex/internal/repository"
	"travelex/internal/service"
)

var malformedUUID = &pq.Error{
	Code:    invalidTextRepresentation,
	Message: `invalid input syntax for type uuid: "not-a-uuid"`,
}

func TestIsNotFound(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"no rows", sql.ErrNoRows, true},
		{"wrapped no rows", fmt.Errorf("lookup: %w", sql.ErrNoRows), true},
		{"malformed uuid", malformedUUID, true},
		{"unique violation", &pq.Error{Code: uniqueViolation}, false},
		{"other error", sql.ErrConnDone, false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isNotFound(tc.err))
		})
	}
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	f, db := newFakeDB(t)
	for _, table := range []string{"users", "trips", "orders", "invoices"} {
		f.set(table, fakeResult{err: malformedUUID})
	}
	ctx := context.Background()

	_, err := NewUserRepository(db).GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = NewTripRepository(db).GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = NewOrderRepository(db).GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = NewInvoiceRepository(db).GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	invoice, err := NewInvoiceRepository(db).GetByOrderID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, invoice)
}

func TestCaller_MalformedUserIDIsUnauthenticated(t *testing.T) {
	f, db := newFakeDB(t)
	f.set("users", fakeResult{err: malformedUUID})

	access := service.NewAccessService(NewUserRepository(db))

	_, err := access.Caller(context.Background(), "not-a-uuid")
	assert.Equal(t, service.ErrUnauthenticated, err)
}

func TestGetByID_OtherErrorsPassThrough(t *testing.T) {
	f, db := newFakeDB(t)
	f.set("users", fakeResult{err: sql.ErrConnDone})

	_, err := NewUserRepository(db).GetByID(context.Background(), "3f1c2a9e-5b7d-4e2a-9c1f-0a2b3c4d5e6f")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
