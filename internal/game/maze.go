package game

const mazeSize = 5

// 1 is a wall, 0 is open. Start is the top-left corner, the exit is the
// bottom-right one.
var mazeWalls = [mazeSize][mazeSize]int{
	{0, 1, 0, 0, 0},
	{0, 1, 0, 1, 0},
	{0, 0, 0, 1, 0},
	{1, 1, 0, 1, 0},
	{0, 0, 0, 0, 0},
}

var mazeGoal = Cell{X: 4, Y: 4}

type Cell struct {
	X, Y int
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Maze is the grid-traversal puzzle: one cell per directional input,
// blocked by walls and the grid bounds. Reaching the exit cell solves it
// for good; later moves change nothing.
type Maze struct {
	pos    Cell
	solved bool
}

func NewMaze() *Maze {
	return &Maze{}
}

// Move attempts a single step and reports whether the position changed.
func (m *Maze) Move(d Direction) bool {
	if m.solved {
		return false
	}

	next := m.pos
	switch d {
	case Up:
		next.Y--
	case Down:
		next.Y++
	case Left:
		next.X--
	case Right:
		next.X++
	}

	if next.X < 0 || next.X >= mazeSize || next.Y < 0 || next.Y >= mazeSize {
		return false
	}
	if mazeWalls[next.Y][next.X] == 1 {
		return false
	}

	m.pos = next
	if m.pos == mazeGoal {
		m.solved = true
	}
	return true
}

func (m *Maze) Position() Cell { return m.pos }

func (m *Maze) Solved() bool { return m.solved }
