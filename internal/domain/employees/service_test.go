package employees

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	employees []Employee
	listCalls int
	err       error
}

func (f *fakeStore) CountByRole(ctx context.Context, role string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, e := range f.employees {
		if e.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) List(ctx context.Context, role string, limit, offset int) ([]Employee, error) {
	f.listCalls++
	var out []Employee
	for _, e := range f.employees {
		if e.Role == role {
			out = append(out, e)
		}
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func TestListPaginates(t *testing.T) {
	store := &fakeStore{employees: []Employee{
		{ID: "1", Role: "employee"}, {ID: "2", Role: "employee"}, {ID: "3", Role: "admin"}, {ID: "4", Role: "employee"},
	}}
	svc := NewService(store)

	page, total, err := svc.List(context.Background(), "employee", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "4", page[0].ID)
}

func TestListPastEndSkipsQuery(t *testing.T) {
	store := &fakeStore{employees: []Employee{{ID: "1", Role: "employee"}}}
	page, total, err := NewService(store).List(context.Background(), "employee", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, page)
	assert.Equal(t, 0, store.listCalls)
}

func TestListWrapsStoreErrors(t *testing.T) {
	dbErr := errors.New("timeout")
	_, _, err := NewService(&fakeStore{err: dbErr}).List(context.Background(), "employee", 10, 0)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, dbErr)
}
