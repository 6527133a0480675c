package game

import (
	"github.com/blackwood/manor/internal/domain"
)

const roomCount = 5

// roomClues is the static room -> clue lookup. One clue per room.
var roomClues = map[RoomID]domain.Clue{
	RoomEntrance: {Text: "A fine powder was found in the tea pot - Rat Poison", Category: "Evidence"},
	RoomGallery:  {Text: "The butler admitted he was in the kitchen at 7 PM", Category: "Witness"},
	RoomLibrary:  {Text: "Miss Catherine was desperate for money (overheard arguing)", Category: "Motive"},
	RoomStudy:    {Text: "A tea cup with lipstick marks belonged to Miss Catherine", Category: "Evidence"},
	RoomCellar:   {Text: "Miss Catherine poured Lord Blackwood's tea that evening", Category: "Witness"},
}

// Suspect is one entry from the accusation roster. The id matches the
// character reference data the server scores against; whether a suspect is
// the killer is never known client-side.
type Suspect struct {
	ID   int
	Name string
}

// Suspects returns the fixed accusation roster.
func Suspects() []Suspect {
	return []Suspect{
		{ID: 1, Name: "Miss Catherine"},
		{ID: 2, Name: "Dr. Whitmore"},
		{ID: 3, Name: "Mr. Cornelius"},
		{ID: 4, Name: "Lady Margaret"},
	}
}

// Orchestrator tracks completed rooms and the clues collected so far.
// State is in-memory only; an abandoned play-through simply drops it.
type Orchestrator struct {
	completed map[RoomID]bool
	clues     []domain.Clue
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		completed: make(map[RoomID]bool, roomCount),
	}
}

// MarkRoomComplete records the room and appends its clue. Completing a room
// twice is idempotent; an unknown room id is a no-op.
func (o *Orchestrator) MarkRoomComplete(room RoomID) (domain.Clue, bool) {
	clue, ok := roomClues[room]
	if !ok || o.completed[room] {
		return domain.Clue{}, false
	}

	o.completed[room] = true
	o.clues = append(o.clues, clue)
	return clue, true
}

// ReadyForAccusation reports whether every room has been completed.
func (o *Orchestrator) ReadyForAccusation() bool {
	return len(o.completed) == roomCount
}

func (o *Orchestrator) RoomCompleted(room RoomID) bool {
	return o.completed[room]
}

// Clues returns the collected clues in completion order.
func (o *Orchestrator) Clues() []domain.Clue {
	return o.clues
}
