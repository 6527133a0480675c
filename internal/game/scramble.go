package game

import (
	"strings"
)

type scrambleEntry struct {
	Scrambled string
	Answer    string
}

var scrambleWords = []scrambleEntry{
	{Scrambled: "OOPSNI", Answer: "POISON"},
	{Scrambled: "LAIHBIR", Answer: "ALIBI"},
	{Scrambled: "RECIM", Answer: "CRIME"},
}

// WordScramble is the unscramble puzzle: every word in the fixed list must
// receive its exact, case-insensitive match. Solving order is free-form;
// advancement skips entries that are already solved.
type WordScramble struct {
	entries []scrambleEntry
	solved  []bool
	index   int
}

func NewWordScramble() *WordScramble {
	return &WordScramble{
		entries: scrambleWords,
		solved:  make([]bool, len(scrambleWords)),
	}
}

// Current returns the scrambled form of the word currently presented.
func (w *WordScramble) Current() string {
	return w.entries[w.index].Scrambled
}

// Submit checks guess against the current word. A wrong guess changes
// nothing; a right one marks the entry solved and advances past any entries
// solved earlier.
func (w *WordScramble) Submit(guess string) bool {
	if w.Solved() {
		return false
	}

	if !strings.EqualFold(strings.TrimSpace(guess), w.entries[w.index].Answer) {
		return false
	}

	w.solved[w.index] = true
	w.advance()
	return true
}

func (w *WordScramble) advance() {
	for i := 1; i <= len(w.entries); i++ {
		next := (w.index + i) % len(w.entries)
		if !w.solved[next] {
			w.index = next
			return
		}
	}
}

func (w *WordScramble) SolvedCount() int {
	n := 0
	for _, ok := range w.solved {
		if ok {
			n++
		}
	}
	return n
}

func (w *WordScramble) Solved() bool {
	return w.SolvedCount() == len(w.entries)
}
