package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const keyOfflineSymptoms = "offline_symptom_logs"

// DurabilityTier reports where a symptom log ended up.
type DurabilityTier int

const (
	// PersistedRemote means the server accepted the log.
	PersistedRemote DurabilityTier = iota
	// QueuedLocally means the log is durable on disk and will be replayed by
	// the next Sync.
	QueuedLocally
)

// SymptomQueue is write-through-with-fallback for symptom logs: it tries the
// server first and, when the server is unreachable, parks the log durably so
// it survives a restart. Every queued log carries a client key so replays are
// idempotent on the server side.
type SymptomQueue struct {
	client  *Client
	storage Storage
	mu      sync.Mutex
}

func NewSymptomQueue(c *Client) *SymptomQueue {
	return &SymptomQueue{client: c, storage: c.storage}
}

// CreateLog records one symptom log. Transport failures and server faults
// fall back to the durable queue; validation rejections and expired sessions
// are returned to the caller, since queueing them could not succeed later
// either.
func (q *SymptomQueue) CreateLog(ctx context.Context, log SymptomLog) (DurabilityTier, error) {
	if log.ClientKey == "" {
		log.ClientKey = uuid.NewString()
	}

	_, err := q.client.CreateSymptomLog(ctx, log)
	if err == nil {
		return PersistedRemote, nil
	}
	if !queueable(err) {
		return 0, err
	}

	if qerr := q.enqueue(log); qerr != nil {
		return 0, errors.Join(err, qerr)
	}
	return QueuedLocally, nil
}

// queueable reports whether a later replay could plausibly succeed.
func queueable(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return IsNetworkError(err)
}

// Sync replays the queue in one bulk call. Entries the server created or had
// already seen are dropped; rejected entries are dropped too, since they can
// never be accepted. The queue survives intact when the bulk call itself
// fails. Returns how many entries the server settled and how many remain.
func (q *SymptomQueue) Sync(ctx context.Context) (settled, remaining int, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.load()
	if err != nil {
		return 0, 0, err
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	resp, err := q.client.BulkSymptomLogs(ctx, pending)
	if err != nil {
		return 0, len(pending), err
	}

	outcome := make(map[string]string, len(resp.Results))
	for _, r := range resp.Results {
		outcome[r.ClientKey] = r.Status
	}

	var keep []SymptomLog
	for _, log := range pending {
		status, ok := outcome[log.ClientKey]
		if !ok {
			keep = append(keep, log)
			continue
		}
		if status == "rejected" {
			slog.Warn("dropping rejected offline symptom log", "client_key", log.ClientKey)
		}
		settled++
	}

	if err := q.store(keep); err != nil {
		return settled, len(keep), err
	}
	return settled, len(keep), nil
}

// Pending returns the queued logs without mutating the queue.
func (q *SymptomQueue) Pending() ([]SymptomLog, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

func (q *SymptomQueue) enqueue(log SymptomLog) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.load()
	if err != nil {
		return err
	}
	return q.store(append(pending, log))
}

func (q *SymptomQueue) load() ([]SymptomLog, error) {
	data, err := q.storage.Get(keyOfflineSymptoms)
	if errors.Is(err, ErrNotStored) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pending []SymptomLog
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (q *SymptomQueue) store(pending []SymptomLog) error {
	if len(pending) == 0 {
		return q.storage.Delete(keyOfflineSymptoms)
	}
	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return q.storage.Set(keyOfflineSymptoms, data)
}
