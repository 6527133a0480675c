package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_FullPlayThrough(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	require.Equal(t, StateMenu, g.State())

	require.NoError(t, g.Start("Ada"))
	require.Equal(t, StateRooms, g.State())

	rooms := []RoomID{RoomEntrance, RoomGallery, RoomLibrary, RoomStudy, RoomCellar}
	for _, r := range rooms {
		require.NoError(t, g.EnterRoom(r))
		require.Equal(t, StatePlaying, g.State())

		solvePuzzle(t, g.Puzzle())
		require.NoError(t, g.CompleteRoom())
		require.Equal(t, StateRooms, g.State())
	}

	require.Len(t, g.Rooms().Clues(), 5)
	require.NoError(t, g.Accuse())
	require.Equal(t, StateAccusation, g.State())

	res := Result{FinalScore: 500, IsCorrect: true, Message: "Correct! You found the killer!"}
	require.NoError(t, g.Finish(res))
	assert.Equal(t, StateResults, g.State())
	assert.Equal(t, res, g.Result())
}

func TestGame_IllegalTransitionsAreRejected(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))

	assert.Error(t, g.EnterRoom(RoomEntrance), "cannot enter a room from the menu")
	assert.Error(t, g.Accuse(), "cannot accuse from the menu")
	assert.Error(t, g.Finish(Result{}), "cannot finish from the menu")
	assert.Error(t, g.Start("  "), "blank names are rejected")

	require.NoError(t, g.Start("Ada"))
	assert.Error(t, g.Start("Ada"), "cannot start twice")
	assert.Error(t, g.CompleteRoom(), "no room is being played")
	assert.Error(t, g.Accuse(), "no clues collected yet")
	assert.Error(t, g.EnterRoom(RoomID(42)), "unknown room")
	require.Equal(t, StateRooms, g.State())
}

func TestGame_CompleteRoomRequiresSolvedPuzzle(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	require.NoError(t, g.Start("Ada"))
	require.NoError(t, g.EnterRoom(RoomCellar))

	assert.Error(t, g.CompleteRoom(), "the maze is not solved yet")

	require.NoError(t, g.LeaveRoom())
	assert.Equal(t, StateRooms, g.State())
	assert.Empty(t, g.Rooms().Clues(), "leaving a room awards no clue")
}

// solvePuzzle drives each evaluator to its win condition.
func solvePuzzle(t *testing.T, p Puzzle) {
	t.Helper()

	switch v := p.(type) {
	case *SafeCracker:
		for !v.Solved() {
			advanceIntoArc(t, v)
			v.Stop()
		}
	case *Maze:
		for _, d := range []Direction{Down, Down, Right, Right, Down, Down, Right, Right} {
			v.Move(d)
		}
	case *WordScramble:
		for _, w := range []string{"POISON", "ALIBI", "CRIME"} {
			require.True(t, v.Submit(w))
		}
	case *RiddleQuiz:
		for _, a := range []int{3, 1, 1} {
			require.True(t, v.Answer(a))
		}
	case *MemoryGame:
		for _, idx := range pairIndexes(v) {
			v.Reveal(idx[0])
			v.Reveal(idx[1])
		}
	default:
		t.Fatalf("unknown puzzle type %T", p)
	}

	require.True(t, p.Solved())
}
