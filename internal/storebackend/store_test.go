package storebackend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdclarke5/sylver-go/position"
)

func TestMemorySaveAndGetStatus(t *testing.T) {
	assert := require.New(t)
	store := NewMemory()

	_, ok := store.GetStatus("{2, 3}")
	assert.False(ok)

	store.Save("{2, 3}", position.Record{Generators: []int{2, 3}}, StatusP, []int{1})
	status, ok := store.GetStatus("{2, 3}")
	assert.True(ok)
	assert.Equal(StatusP, status)
}

func TestMemoryNeverOverwritesPOrNWithUnknown(t *testing.T) {
	assert := require.New(t)
	store := NewMemory()

	store.Save("{4}", position.Record{}, StatusN, []int{6})
	store.Save("{4}", position.Record{}, StatusUnknown, nil)

	status, ok := store.GetStatus("{4}")
	assert.True(ok)
	assert.Equal(StatusN, status, "a concrete N must survive a later ? write")
}

func TestMemoryRepliesAccumulateByUnion(t *testing.T) {
	assert := require.New(t)
	store := NewMemory()

	store.Save("{4}", position.Record{}, StatusN, []int{6})
	store.Save("{4}", position.Record{}, StatusN, []int{7})

	entry := store.Entry("{4}")
	assert.NotNil(entry)
	assert.Len(entry.Replies, 2)
	_, hasSix := entry.Replies[6]
	_, hasSeven := entry.Replies[7]
	assert.True(hasSix)
	assert.True(hasSeven)
}

func TestMemoryEntrySnapshotIsIndependent(t *testing.T) {
	assert := require.New(t)
	store := NewMemory()
	store.Save("{4}", position.Record{}, StatusN, []int{6})

	snapshot := store.Entry("{4}")
	snapshot.Replies[99] = struct{}{}

	fresh := store.Entry("{4}")
	_, has99 := fresh.Replies[99]
	assert.False(has99, "mutating a snapshot must not affect the store")
}

func TestNoOpStoreDiscardsEverything(t *testing.T) {
	assert := require.New(t)
	var store NoOp

	store.Save("{4}", position.Record{}, StatusP, []int{6})
	_, ok := store.GetStatus("{4}")
	assert.False(ok)
}
