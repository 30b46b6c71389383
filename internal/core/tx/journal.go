package tx

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultJournalSize is the number of results kept when none is configured.
const DefaultJournalSize = 1024

// Journal keeps the most recent apply results, rejected ones included, so
// callers can look up a receipt by transaction ID or by ledger sequence.
type Journal struct {
	mu sync.RWMutex

	// Key: transaction ID
	byID *lru.Cache[uuid.UUID, ApplyResult]

	// Key: ledger sequence after an applied transaction
	bySeq *lru.Cache[uint64, uuid.UUID]
}

// NewJournal creates a journal holding up to size results.
func NewJournal(size int) (*Journal, error) {
	if size <= 0 {
		size = DefaultJournalSize
	}

	byID, err := lru.New[uuid.UUID, ApplyResult](size)
	if err != nil {
		return nil, err
	}
	bySeq, err := lru.New[uint64, uuid.UUID](size)
	if err != nil {
		return nil, err
	}

	return &Journal{byID: byID, bySeq: bySeq}, nil
}

// Add records a result.
func (j *Journal) Add(r ApplyResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.byID.Add(r.ID, r)
	if r.Applied {
		j.bySeq.Add(r.Sequence, r.ID)
	}
}

// Get returns the result for a transaction ID. Lookups do not change the
// order Recent reports.
func (j *Journal) Get(id uuid.UUID) (ApplyResult, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.byID.Peek(id)
}

// BySequence returns the applied transaction that produced ledger sequence seq.
func (j *Journal) BySequence(seq uint64) (ApplyResult, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	id, ok := j.bySeq.Peek(seq)
	if !ok {
		return ApplyResult{}, false
	}
	return j.byID.Peek(id)
}

// Recent returns up to n results, newest last.
func (j *Journal) Recent(n int) []ApplyResult {
	j.mu.RLock()
	defer j.mu.RUnlock()
	keys := j.byID.Keys()
	if n > 0 && len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	out := make([]ApplyResult, 0, len(keys))
	for _, k := range keys {
		if r, ok := j.byID.Peek(k); ok {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of results held.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.byID.Len()
}
