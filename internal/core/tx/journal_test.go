package tx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	j, err := NewJournal(3)
	require.NoError(t, err)

	applied := ApplyResult{ID: uuid.New(), Result: TesSUCCESS, Applied: true, Sequence: 1}
	rejected := ApplyResult{ID: uuid.New(), Result: TecUNFUNDED_PAYMENT}
	j.Add(applied)
	j.Add(rejected)

	got, ok := j.Get(rejected.ID)
	require.True(t, ok)
	assert.Equal(t, TecUNFUNDED_PAYMENT, got.Result)

	got, ok = j.BySequence(1)
	require.True(t, ok)
	assert.Equal(t, applied.ID, got.ID)

	_, ok = j.BySequence(0)
	assert.False(t, ok, "rejected results have no sequence")
	assert.Equal(t, 2, j.Len())
}

func TestJournalEviction(t *testing.T) {
	j, err := NewJournal(2)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		j.Add(ApplyResult{ID: ids[i], Result: TesSUCCESS, Applied: true, Sequence: uint64(i + 1)})
	}

	_, ok := j.Get(ids[0])
	assert.False(t, ok, "oldest result should be evicted")
	assert.Equal(t, 2, j.Len())

	recent := j.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[1], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)

	recent = j.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, ids[2], recent[0].ID)
}

func TestJournalDefaultSize(t *testing.T) {
	j, err := NewJournal(0)
	require.NoError(t, err)
	for i := 0; i < DefaultJournalSize+5; i++ {
		j.Add(ApplyResult{ID: uuid.New()})
	}
	assert.Equal(t, DefaultJournalSize, j.Len())
}

func TestJournalLookupKeepsOrder(t *testing.T) {
	j, err := NewJournal(3)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		j.Add(ApplyResult{ID: ids[i], Result: TesSUCCESS, Applied: true, Sequence: uint64(i + 1)})
	}

	_, ok := j.Get(ids[0])
	require.True(t, ok)
	_, ok = j.BySequence(2)
	require.True(t, ok)

	newest := j.Recent(1)
	require.Len(t, newest, 1)
	assert.Equal(t, uint64(3), newest[0].Sequence)

	// A lookup must not save the oldest result from eviction
	j.Add(ApplyResult{ID: uuid.New(), Result: TesSUCCESS, Applied: true, Sequence: 4})
	_, ok = j.Get(ids[0])
	assert.False(t, ok)
}
