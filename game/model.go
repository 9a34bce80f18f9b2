// Package game holds the domain model of the hex-cell resource game:
// the static map layout, the per-tick mutable state, and the command
// vocabulary the host engine accepts.
package game

const (
	NumPlayers = 2
	Me         = 0
	Enemy      = 1

	// The host ends the game after this many ticks regardless of crystals.
	MaxTicks = 100
)

// Opponent returns the other player's index.
func Opponent(player int) int {
	return (player + 1) % NumPlayers
}

// Content describes what a cell yields when harvested.
type Content int

const (
	ContentNone Content = iota
	ContentEggs
	ContentCrystals
)

func (c Content) String() string {
	switch c {
	case ContentEggs:
		return "eggs"
	case ContentCrystals:
		return "crystals"
	default:
		return "none"
	}
}

// CellLayout is the immutable description of one hexagonal cell.
type CellLayout struct {
	Content          Content
	InitialResources int
	// Neighbors lists adjacent cell indices, 0 to 6 of them.
	Neighbors []int
}

// Layout is the immutable map: cells plus each player's bases.
type Layout struct {
	Cells []CellLayout
	Bases [NumPlayers][]int
}

func (l *Layout) NumCells() int {
	return len(l.Cells)
}

// State is the mutable per-tick game state. NumAnts[p] is indexed by cell;
// TotalAnts[p] is kept equal to its sum so hot paths never re-count.
type State struct {
	Tick      int
	NumAnts   [NumPlayers][]int
	TotalAnts [NumPlayers]int
	Resources []int
	Crystals  [NumPlayers]int
}

// NewState returns a zeroed state sized for numCells cells.
func NewState(numCells int) *State {
	s := &State{
		Resources: make([]int, numCells),
	}
	for p := 0; p < NumPlayers; p++ {
		s.NumAnts[p] = make([]int, numCells)
	}
	return s
}

// Clone deep-copies the state. Rollouts clone once then mutate in place.
func (s *State) Clone() *State {
	c := &State{
		Tick:      s.Tick,
		TotalAnts: s.TotalAnts,
		Crystals:  s.Crystals,
		Resources: append([]int(nil), s.Resources...),
	}
	for p := 0; p < NumPlayers; p++ {
		c.NumAnts[p] = append([]int(nil), s.NumAnts[p]...)
	}
	return c
}

// RecountAnts recomputes TotalAnts from NumAnts, e.g. after reading a turn.
func (s *State) RecountAnts() {
	for p := 0; p < NumPlayers; p++ {
		total := 0
		for _, n := range s.NumAnts[p] {
			total += n
		}
		s.TotalAnts[p] = total
	}
}
