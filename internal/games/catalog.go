package games

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/senobi/internal/model"
)

// ErrUnknownGame is returned by Lookup for an unregistered game id.
var ErrUnknownGame = errors.New("unknown game")

// Category groups games by the skill they train.
type Category string

// Game categories.
const (
	CategoryTime      Category = "Time"
	CategoryMemory    Category = "Memory"
	CategoryLogic     Category = "Logic"
	CategoryAttention Category = "Attention"
	CategorySpatial   Category = "Spatial"
)

// Info describes a game for menus and listings.
type Info struct {
	ID           string
	Title        string
	Summary      string
	Instructions string
	Category     Category
	Icon         string
}

var infos = []Info{
	{
		ID: IDClock, Title: "Set the Clock", Icon: "🕒", Category: CategoryTime,
		Summary:      "Move the hands to the time shown.",
		Instructions: "Adjust hours and minutes until the dial shows the target time, then confirm. Small errors are tolerated, less so on harder levels.",
	},
	{
		ID: IDPairs, Title: "Pairs", Icon: "🃏", Category: CategoryMemory,
		Summary:      "Find every matching pair of cards.",
		Instructions: "Flip two cards per turn. Matching cards stay up, others flip back. Fewer turns means better efficiency.",
	},
	{
		ID: IDPatterns, Title: "Patterns", Icon: "🧩", Category: CategoryLogic,
		Summary:      "Complete the sequence.",
		Instructions: "Look at the sequence and pick the element that replaces the question mark.",
	},
	{
		ID: IDStroop, Title: "Ink Colors", Icon: "🎨", Category: CategoryAttention,
		Summary:      "Pick the ink color, not the word.",
		Instructions: "Each word names a color but is printed in another. Choose the color of the ink. On harder levels each word is timed.",
	},
	{
		ID: IDShapes, Title: "Fit the Shapes", Icon: "🔷", Category: CategorySpatial,
		Summary:      "Place each piece on its silhouette.",
		Instructions: "Select a piece, rotate it upright if needed, then drop it on the matching silhouette.",
	},
	{
		ID: IDOddOneOut, Title: "Odd One Out", Icon: "🔍", Category: CategoryAttention,
		Summary:      "Spot the cell that is different.",
		Instructions: "All cells look alike except one. Pick it.",
	},
	{
		ID: IDSimon, Title: "Simon Says", Icon: "🔴", Category: CategoryMemory,
		Summary:      "Repeat the sequence of lights.",
		Instructions: "Watch the pads light up, then press them in the same order. One mistake ends the round.",
	},
	{
		ID: IDRoutine, Title: "Daily Routine", Icon: "📅", Category: CategoryLogic,
		Summary:      "Put the steps of a day in order.",
		Instructions: "Reorder the activities from morning to night, then submit. Each step in the right place counts.",
	},
}

func infoFor(id string) Info {
	for _, info := range infos {
		if info.ID == id {
			return info
		}
	}
	return Info{ID: id, Title: id}
}

// Options configures the games that have tunable parameters.
type Options struct {
	Timing       model.TimingConfig
	RoutineSteps []string
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{Timing: model.DefaultTiming()}
}

// Catalog returns every game in menu order.
func Catalog(opts Options) []Game {
	t := opts.Timing
	return []Game{
		Clock{},
		Pairs{MatchReveal: t.MatchReveal, MismatchReveal: t.MismatchReveal},
		Patterns{},
		Stroop{Limits: [3]time.Duration{t.StroopEasy, t.StroopMedium, t.StroopHard}},
		Shapes{},
		OddOneOut{},
		Simon{},
		Routine{Steps: opts.RoutineSteps},
	}
}

// Lookup returns the game registered under id.
func Lookup(id string, opts Options) (Game, error) {
	for _, g := range Catalog(opts) {
		if g.ID() == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
}

// IDs returns every game id in menu order.
func IDs() []string {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// CategoryOf returns the category of a game id, or an empty string.
func CategoryOf(id string) Category {
	return infoFor(id).Category
}
