package games

// Input is a player action or a synthetic event.
type Input interface {
	input()
}

// Timeout is sent when a time limit expires without an answer.
type Timeout struct{}

// SetTime answers a clock challenge.
type SetTime struct {
	Hour   int
	Minute int
}

// Flip turns a card face up.
type Flip struct {
	Card int
}

// Choose selects an option by index.
type Choose struct {
	Option int
}

// Select makes a piece active.
type Select struct {
	Piece int
}

// Rotate turns the active piece a quarter turn clockwise.
type Rotate struct{}

// Place drops the active piece on a silhouette.
type Place struct {
	Target int
}

// Pick chooses a grid cell.
type Pick struct {
	Cell int
}

// Press presses a pad.
type Press struct {
	Pad int
}

// Move relocates a list item from one position to another.
type Move struct {
	From int
	To   int
}

// Submit confirms the current arrangement.
type Submit struct{}

func (Timeout) input() {}
func (SetTime) input() {}
func (Flip) input() {}
func (Choose) input() {}
func (Select) input() {}
func (Rotate) input() {}
func (Place) input() {}
func (Pick) input() {}
func (Press) input() {}
func (Move) input() {}
func (Submit) input() {}
