// Package protocol frames the host game's newline-delimited ASCII wire
// format: the one-shot map description, per-tick state refreshes, and the
// semicolon-joined command line.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

// Reader parses host input. Turn count is tracked so State.Tick advances.
type Reader struct {
	scanner *bufio.Scanner
	turn    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

func (r *Reader) fields() ([]string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return strings.Fields(r.scanner.Text()), nil
}

func (r *Reader) ints(want int) ([]int, error) {
	fields, err := r.fields()
	if err != nil {
		return nil, err
	}
	if len(fields) < want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// ReadInitial parses the map: cell count, per-cell content/resources/
// neighbors, then the base lists.
func (r *Reader) ReadInitial() (*game.Layout, *game.State, error) {
	header, err := r.ints(1)
	if err != nil {
		return nil, nil, fmt.Errorf("read cell count: %w", err)
	}
	numCells := header[0]
	if numCells <= 0 {
		return nil, nil, fmt.Errorf("invalid cell count %d", numCells)
	}

	layout := &game.Layout{Cells: make([]game.CellLayout, numCells)}
	state := game.NewState(numCells)

	for i := 0; i < numCells; i++ {
		row, err := r.ints(8)
		if err != nil {
			return nil, nil, fmt.Errorf("read cell %d: %w", i, err)
		}

		var content game.Content
		switch row[0] {
		case 0:
			content = game.ContentNone
		case 1:
			content = game.ContentEggs
		case 2:
			content = game.ContentCrystals
		default:
			return nil, nil, fmt.Errorf("cell %d: invalid content code %d", i, row[0])
		}

		var neighbors []int
		for _, n := range row[2:8] {
			if n >= 0 {
				if n >= numCells {
					return nil, nil, fmt.Errorf("cell %d: neighbor %d out of range", i, n)
				}
				neighbors = append(neighbors, n)
			}
		}

		layout.Cells[i] = game.CellLayout{
			Content:          content,
			InitialResources: row[1],
			Neighbors:        neighbors,
		}
		state.Resources[i] = row[1]
	}

	baseCount, err := r.ints(1)
	if err != nil {
		return nil, nil, fmt.Errorf("read base count: %w", err)
	}
	for p := 0; p < game.NumPlayers; p++ {
		bases, err := r.ints(baseCount[0])
		if err != nil {
			return nil, nil, fmt.Errorf("read bases for player %d: %w", p, err)
		}
		for _, b := range bases {
			if b < 0 || b >= numCells {
				return nil, nil, fmt.Errorf("player %d: base %d out of range", p, b)
			}
		}
		layout.Bases[p] = bases
	}

	return layout, state, nil
}

// ReadTurn refreshes the state in place from one tick's input.
func (r *Reader) ReadTurn(s *game.State) error {
	crystals, err := r.ints(2)
	if err != nil {
		return err
	}
	s.Crystals[game.Me] = crystals[0]
	s.Crystals[game.Enemy] = crystals[1]

	for i := range s.Resources {
		row, err := r.ints(3)
		if err != nil {
			return fmt.Errorf("read cell %d: %w", i, err)
		}
		s.Resources[i] = row[0]
		s.NumAnts[game.Me][i] = row[1]
		s.NumAnts[game.Enemy][i] = row[2]
	}
	s.RecountAnts()

	s.Tick = r.turn
	r.turn++
	return nil
}

// WriteActions prints one command line; an empty set becomes WAIT.
func WriteActions(w io.Writer, actions []game.Action) error {
	if len(actions) == 0 {
		actions = []game.Action{game.Wait()}
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ";"))
	return err
}
