package game

// Riddle is one question from the fixed ordered list.
type Riddle struct {
	Question string
	Options  [4]string
	correct  int
}

var riddles = []Riddle{
	{
		Question: "I have a face and two hands, but no arms or legs. What am I?",
		Options:  [4]string{"A watch", "A painting", "A mirror", "A clock"},
		correct:  3,
	},
	{
		Question: "I am taken from a mine and shut up in a wooden case, from which I am never released, yet I am used by almost everyone. What am I?",
		Options:  [4]string{"A diamond", "Pencil lead", "Gold", "Coal"},
		correct:  1,
	},
	{
		Question: "What can travel around the world while staying in a corner?",
		Options:  [4]string{"An airplane", "A stamp", "A bird", "Wind"},
		correct:  1,
	},
}

// RiddleQuiz is the quiz puzzle: riddles must be answered correctly in
// sequence. A wrong choice has no effect, neither penalty nor advancement.
type RiddleQuiz struct {
	index    int
	answered int
}

func NewRiddleQuiz() *RiddleQuiz {
	return &RiddleQuiz{}
}

// Current returns the riddle currently presented.
func (q *RiddleQuiz) Current() Riddle {
	return riddles[q.index]
}

// Answer submits an option index for the current riddle.
func (q *RiddleQuiz) Answer(option int) bool {
	if q.Solved() {
		return false
	}

	if option != riddles[q.index].correct {
		return false
	}

	q.answered++
	if q.index < len(riddles)-1 {
		q.index++
	}
	return true
}

func (q *RiddleQuiz) Answered() int { return q.answered }

func (q *RiddleQuiz) Solved() bool {
	return q.answered == len(riddles)
}
