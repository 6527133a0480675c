package game

import (
	"math/rand"
)

var memorySymbols = []string{"knife", "skull", "vial", "suspect", "money", "key"}

// RevealResult reports what a single card reveal did.
type RevealResult int

const (
	// RevealIgnored means the reveal was a no-op: the card is already
	// matched or face up, or a mismatched pair is still showing.
	RevealIgnored RevealResult = iota
	// RevealFirst means the card is the first of a pair, now face up.
	RevealFirst
	// RevealMatched means the card completed a matching pair.
	RevealMatched
	// RevealMismatch means the pair did not match; both cards stay shown
	// until Conceal is called.
	RevealMismatch
)

// MemoryGame is the pair-matching puzzle: every symbol appears twice in a
// shuffled deck. Two sequential reveals that mismatch are shown briefly and
// then hidden; the evaluator models the hide step as an explicit Conceal so
// the flow is deterministic under test.
type MemoryGame struct {
	cards    []string
	matched  []bool
	first    int
	pending  [2]int
	mismatch bool
}

func NewMemoryGame(rng *rand.Rand) *MemoryGame {
	cards := make([]string, 0, 2*len(memorySymbols))
	cards = append(cards, memorySymbols...)
	cards = append(cards, memorySymbols...)
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &MemoryGame{
		cards:   cards,
		matched: make([]bool, len(cards)),
		first:   -1,
	}
}

// Reveal turns the card at index i face up.
func (m *MemoryGame) Reveal(i int) RevealResult {
	if i < 0 || i >= len(m.cards) || m.mismatch || m.matched[i] || m.first == i {
		return RevealIgnored
	}

	if m.first < 0 {
		m.first = i
		return RevealFirst
	}

	if m.cards[m.first] == m.cards[i] {
		m.matched[m.first] = true
		m.matched[i] = true
		m.first = -1
		return RevealMatched
	}

	m.pending = [2]int{m.first, i}
	m.mismatch = true
	m.first = -1
	return RevealMismatch
}

// Conceal hides a mismatched pair, re-enabling reveals. In the UI this is
// driven by a short timer.
func (m *MemoryGame) Conceal() {
	m.mismatch = false
}

// Pending returns the mismatched pair currently shown, if any.
func (m *MemoryGame) Pending() ([2]int, bool) {
	return m.pending, m.mismatch
}

// Card returns the symbol at index i. The UI only shows it while the card
// is face up or matched.
func (m *MemoryGame) Card(i int) string { return m.cards[i] }

func (m *MemoryGame) Cards() int { return len(m.cards) }

func (m *MemoryGame) MatchedCount() int {
	n := 0
	for _, ok := range m.matched {
		if ok {
			n++
		}
	}
	return n
}

func (m *MemoryGame) Solved() bool {
	return m.MatchedCount() == len(m.cards)
}
