package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu        sync.Mutex
	items     []Appointment
	fetchErr  error
	createErr error
	updateErr error
	deleteErr error
	updates   int
}

func (f *fakeRemote) config() StoreConfig[Appointment] {
	return StoreConfig[Appointment]{
		CacheKey: "test_appointments",
		Fetch: func(ctx context.Context) ([]Appointment, error) {
			if f.fetchErr != nil {
				return nil, f.fetchErr
			}
			return f.items, nil
		},
		Create: func(ctx context.Context, data map[string]any) (*Appointment, error) {
			if f.createErr != nil {
				return nil, f.createErr
			}
			created := Appointment{ID: "srv-1", DoctorName: data["doctor_name"].(string), Status: "upcoming"}
			return &created, nil
		},
		Update: func(ctx context.Context, id string, patch map[string]any) error {
			f.mu.Lock()
			f.updates++
			f.mu.Unlock()
			return f.updateErr
		},
		Delete: func(ctx context.Context, id string) error {
			return f.deleteErr
		},
	}
}

func seededStore(t *testing.T, remote *fakeRemote) *OptimisticStore[Appointment] {
	t.Helper()
	store := NewOptimisticStore(remote.config(), NewMemStorage())
	require.NoError(t, store.Fetch(context.Background()))
	return store
}

func TestUpdateAppliesOptimistically(t *testing.T) {
	remote := &fakeRemote{items: []Appointment{{ID: "a1", Status: "upcoming"}}}
	store := seededStore(t, remote)

	err := store.Update(context.Background(), "a1",
		func(a Appointment) Appointment { a.Status = "completed"; return a },
		map[string]any{"status": "completed"})
	require.NoError(t, err)

	got, ok := store.Get("a1")
	require.True(t, ok)
	require.Equal(t, "completed", got.Status)
}

func TestUpdateRollsBackOnlyTheTouchedEntity(t *testing.T) {
	remote := &fakeRemote{items: []Appointment{
		{ID: "a1", Status: "upcoming", Notes: "bring referral"},
		{ID: "a2", Status: "upcoming"},
	}}
	store := seededStore(t, remote)

	// A concurrent local edit on a2 that the failed a1 mutation must not undo.
	_, ok := store.replace("a2", func(a Appointment) Appointment { a.Status = "cancelled"; return a })
	require.True(t, ok)

	remote.updateErr = &NetworkError{Err: errors.New("dial tcp: timeout")}
	err := store.Update(context.Background(), "a1",
		func(a Appointment) Appointment { a.Status = "completed"; a.Notes = ""; return a },
		map[string]any{"status": "completed"})
	require.Error(t, err)

	a1, _ := store.Get("a1")
	require.Equal(t, "upcoming", a1.Status)
	require.Equal(t, "bring referral", a1.Notes)

	a2, _ := store.Get("a2")
	require.Equal(t, "cancelled", a2.Status)
}

func TestUpdateUnknownEntity(t *testing.T) {
	store := seededStore(t, &fakeRemote{})

	err := store.Update(context.Background(), "ghost",
		func(a Appointment) Appointment { return a }, nil)
	require.ErrorIs(t, err, ErrUnknownEntity)
}

func TestRemoveReinsertsAtOriginalPositionOnFailure(t *testing.T) {
	remote := &fakeRemote{items: []Appointment{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}}
	store := seededStore(t, remote)

	remote.deleteErr = &APIError{Status: 500, Message: "Internal server error"}
	err := store.Remove(context.Background(), "a2")
	require.Error(t, err)

	items := store.Items()
	require.Len(t, items, 3)
	require.Equal(t, "a2", items[1].ID)
}

func TestCreateIsFailClosed(t *testing.T) {
	remote := &fakeRemote{}
	store := seededStore(t, remote)

	remote.createErr = &NetworkError{Err: errors.New("connection refused")}
	_, err := store.Create(context.Background(), map[string]any{"doctor_name": "Dr. Chen"})
	require.Error(t, err)
	require.Empty(t, store.Items())

	remote.createErr = nil
	created, err := store.Create(context.Background(), map[string]any{"doctor_name": "Dr. Chen"})
	require.NoError(t, err)
	require.Equal(t, "srv-1", created.ID)
	require.Len(t, store.Items(), 1)
}

func TestFetchFailureKeepsCurrentCollection(t *testing.T) {
	remote := &fakeRemote{items: []Appointment{{ID: "a1"}}}
	store := seededStore(t, remote)

	remote.fetchErr = &NetworkError{Err: errors.New("timeout")}
	err := store.Fetch(context.Background())
	require.Error(t, err)
	require.Len(t, store.Items(), 1)
}

func TestLoadCachedRestoresLastFetch(t *testing.T) {
	storage := NewMemStorage()
	remote := &fakeRemote{items: []Appointment{{ID: "a1", DoctorName: "Dr. Chen"}}}

	store := NewOptimisticStore(remote.config(), storage)
	require.NoError(t, store.Fetch(context.Background()))

	// A fresh store over the same storage sees the data before any round trip.
	fresh := NewOptimisticStore(remote.config(), storage)
	require.NoError(t, fresh.LoadCached())

	items := fresh.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Dr. Chen", items[0].DoctorName)
}

func TestDetachedSubscriberIsNotCalled(t *testing.T) {
	remote := &fakeRemote{items: []Appointment{{ID: "a1"}}}
	store := seededStore(t, remote)

	var calls int
	sub := store.Subscribe(func([]Appointment) { calls++ })

	err := store.Update(context.Background(), "a1",
		func(a Appointment) Appointment { a.Status = "completed"; return a }, nil)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	sub.Detach()
	err = store.Update(context.Background(), "a1",
		func(a Appointment) Appointment { a.Status = "cancelled"; return a }, nil)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
