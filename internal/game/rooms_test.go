package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_CollectsOneCluePerRoom(t *testing.T) {
	o := NewOrchestrator()

	clue, ok := o.MarkRoomComplete(RoomEntrance)
	require.True(t, ok)
	assert.Equal(t, "Evidence", clue.Category)
	assert.Len(t, o.Clues(), 1)

	// Completing the same room again is idempotent.
	_, ok = o.MarkRoomComplete(RoomEntrance)
	assert.False(t, ok)
	assert.Len(t, o.Clues(), 1)

	// Unknown rooms award nothing.
	_, ok = o.MarkRoomComplete(RoomID(42))
	assert.False(t, ok)
	assert.Len(t, o.Clues(), 1)
}

func TestOrchestrator_ReadyForAccusationNeedsAllRooms(t *testing.T) {
	o := NewOrchestrator()
	rooms := []RoomID{RoomEntrance, RoomGallery, RoomLibrary, RoomStudy, RoomCellar}

	for i, r := range rooms {
		assert.False(t, o.ReadyForAccusation(), "not ready with %d rooms", i)
		_, ok := o.MarkRoomComplete(r)
		require.True(t, ok)
	}

	assert.True(t, o.ReadyForAccusation())
	assert.Len(t, o.Clues(), 5)
}

func TestSuspects_RosterMatchesCharacterIDs(t *testing.T) {
	roster := Suspects()
	require.Len(t, roster, 4)

	ids := make([]int, 0, len(roster))
	for _, s := range roster {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}
