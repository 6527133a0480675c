package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// State is the play-through phase.
type State string

const (
	StateMenu       State = "menu"
	StateRooms      State = "rooms"
	StatePlaying    State = "playing"
	StateAccusation State = "accusation"
	StateResults    State = "results"
)

// Result is the scored outcome handed back by the server when the session
// closes.
type Result struct {
	FinalScore int64
	IsCorrect  bool
	Message    string
}

// Game is the explicit state machine driving one play-through:
//
//	menu --Start--> rooms --EnterRoom--> playing --CompleteRoom--> rooms
//	rooms --Accuse--> accusation --Finish--> results
//
// Illegal transitions return an error instead of silently mutating state.
type Game struct {
	state  State
	player string
	room   RoomID
	puzzle Puzzle
	rooms  *Orchestrator
	rng    *rand.Rand
	result Result
}

func NewGame(rng *rand.Rand) *Game {
	return &Game{
		state: StateMenu,
		rooms: NewOrchestrator(),
		rng:   rng,
	}
}

func (g *Game) State() State { return g.state }

func (g *Game) PlayerName() string { return g.player }

// Room returns the room being played, meaningful only in the playing state.
func (g *Game) Room() RoomID { return g.room }

// Puzzle returns the active evaluator, nil outside the playing state.
func (g *Game) Puzzle() Puzzle { return g.puzzle }

// Start begins the investigation for the named player.
func (g *Game) Start(name string) error {
	if g.state != StateMenu {
		return g.badTransition("start")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("game: player name is required")
	}

	g.player = strings.TrimSpace(name)
	g.state = StateRooms
	return nil
}

// EnterRoom opens a room and instantiates its puzzle. Completed rooms can
// be replayed; the clue is only awarded once.
func (g *Game) EnterRoom(room RoomID) error {
	if g.state != StateRooms {
		return g.badTransition("enter room")
	}

	p, err := NewPuzzle(room, g.rng)
	if err != nil {
		return err
	}

	g.room = room
	g.puzzle = p
	g.state = StatePlaying
	return nil
}

// LeaveRoom abandons the current puzzle and returns to room selection.
func (g *Game) LeaveRoom() error {
	if g.state != StatePlaying {
		return g.badTransition("leave room")
	}

	g.puzzle = nil
	g.state = StateRooms
	return nil
}

// CompleteRoom collects the room's clue once its puzzle is solved.
func (g *Game) CompleteRoom() error {
	if g.state != StatePlaying {
		return g.badTransition("complete room")
	}
	if !g.puzzle.Solved() {
		return fmt.Errorf("game: %s puzzle is not solved", g.room)
	}

	g.rooms.MarkRoomComplete(g.room)
	g.puzzle = nil
	g.state = StateRooms
	return nil
}

// Accuse moves to the accusation step once every room is done.
func (g *Game) Accuse() error {
	if g.state != StateRooms {
		return g.badTransition("accuse")
	}
	if !g.rooms.ReadyForAccusation() {
		return fmt.Errorf("game: %d clues still missing", roomCount-len(g.rooms.clues))
	}

	g.state = StateAccusation
	return nil
}

// Finish records the server's verdict and ends the play-through.
func (g *Game) Finish(res Result) error {
	if g.state != StateAccusation {
		return g.badTransition("finish")
	}

	g.result = res
	g.state = StateResults
	return nil
}

// Result is meaningful only in the results state.
func (g *Game) Result() Result { return g.result }

func (g *Game) Rooms() *Orchestrator { return g.rooms }

func (g *Game) badTransition(ev string) error {
	return fmt.Errorf("game: cannot %s in state %q", ev, g.state)
}
