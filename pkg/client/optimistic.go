package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrUnknownEntity is returned when a mutation targets an id that is not in
// the local collection.
var ErrUnknownEntity = errors.New("entity not in local collection")

// Identifiable is any wire entity with a stable server-assigned id.
type Identifiable interface {
	EntityID() string
}

// StoreConfig wires an OptimisticStore to its remote endpoints and cache key.
type StoreConfig[T Identifiable] struct {
	CacheKey string
	Fetch    func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, data map[string]any) (*T, error)
	Update   func(ctx context.Context, id string, patch map[string]any) error
	Delete   func(ctx context.Context, id string) error
}

// OptimisticStore holds a local collection of one entity type. Updates and
// deletes apply locally first and roll back only the touched entity when the
// remote call fails; creates are remote-first because an entity without a
// server id cannot be reconciled. Mutations on different entities proceed
// concurrently; mutations on the same entity serialize.
type OptimisticStore[T Identifiable] struct {
	cfg     StoreConfig[T]
	storage Storage

	mu    sync.RWMutex
	items []T

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	subsMu  sync.Mutex
	subs    map[int]func([]T)
	nextSub int
}

func NewOptimisticStore[T Identifiable](cfg StoreConfig[T], storage Storage) *OptimisticStore[T] {
	return &OptimisticStore[T]{
		cfg:     cfg,
		storage: storage,
		locks:   make(map[string]*sync.Mutex),
		subs:    make(map[int]func([]T)),
	}
}

// Items returns a copy of the current collection.
func (s *OptimisticStore[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OptimisticStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Fetch replaces the collection with the server's view and caches it. On
// failure the current collection is left untouched.
func (s *OptimisticStore[T]) Fetch(ctx context.Context) error {
	items, err := s.cfg.Fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.persist()
	s.notify()
	return nil
}

// LoadCached restores the last fetched collection from storage, for startup
// before the first round trip.
func (s *OptimisticStore[T]) LoadCached() error {
	data, err := s.storage.Get(s.cfg.CacheKey)
	if errors.Is(err, ErrNotStored) {
		return nil
	}
	if err != nil {
		return err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.notify()
	return nil
}

// Create is fail-closed: the entity joins the collection only after the
// server assigns it an id.
func (s *OptimisticStore[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	created, err := s.cfg.Create(ctx, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, *created)
	s.mu.Unlock()

	s.persist()
	s.notify()
	return created, nil
}

// Update applies the local transform immediately, then confirms with the
// server. On failure only this entity is restored; concurrent mutations on
// other entities are never clobbered.
func (s *OptimisticStore[T]) Update(ctx context.Context, id string, apply func(T) T, patch map[string]any) error {
	lock := s.entityLock(id)
	lock.Lock()
	defer lock.Unlock()

	prev, ok := s.replace(id, apply)
	if !ok {
		return ErrUnknownEntity
	}
	s.notify()

	if err := s.cfg.Update(ctx, id, patch); err != nil {
		s.replace(id, func(T) T { return prev })
		s.notify()
		return err
	}

	s.persist()
	return nil
}

// Remove deletes optimistically and reinserts the entity at its original
// position when the server call fails.
func (s *OptimisticStore[T]) Remove(ctx context.Context, id string) error {
	lock := s.entityLock(id)
	lock.Lock()
	defer lock.Unlock()

	prev, index, ok := s.take(id)
	if !ok {
		return ErrUnknownEntity
	}
	s.notify()

	if err := s.cfg.Delete(ctx, id); err != nil {
		s.insertAt(prev, index)
		s.notify()
		return err
	}

	s.persist()
	return nil
}

// Subscribe registers a listener for collection changes and returns its
// detach handle. A detached listener is never called again, even if a
// mutation it observed is still settling.
func (s *OptimisticStore[T]) Subscribe(fn func([]T)) *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return &Subscription{detach: func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}}
}

// Subscription is a handle to a registered listener.
type Subscription struct {
	once   sync.Once
	detach func()
}

func (s *Subscription) Detach() {
	s.once.Do(s.detach)
}

func (s *OptimisticStore[T]) notify() {
	items := s.Items()

	s.subsMu.Lock()
	fns := make([]func([]T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(items)
	}
}

func (s *OptimisticStore[T]) persist() {
	if s.cfg.CacheKey == "" {
		return
	}
	data, err := json.Marshal(s.Items())
	if err != nil {
		return
	}
	_ = s.storage.Set(s.cfg.CacheKey, data)
}

func (s *OptimisticStore[T]) entityLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// replace swaps the entity with apply(entity) and returns the previous value.
func (s *OptimisticStore[T]) replace(id string, apply func(T) T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.EntityID() == id {
			s.items[i] = apply(item)
			return item, true
		}
	}
	var zero T
	return zero, false
}

// take removes the entity and reports where it was.
func (s *OptimisticStore[T]) take(id string) (T, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.EntityID() == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return item, i, true
		}
	}
	var zero T
	return zero, 0, false
}

func (s *OptimisticStore[T]) insertAt(item T, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items[:index], append([]T{item}, s.items[index:]...)...)
}
