// Package monitor serves a live view of arena matches: an SVG hex map over
// a websocket that receives per-cell updates each tick, plus Prometheus
// counters describing the matches and the search.
package monitor

import (
	"fmt"
	"math"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

// EleUpdate is an element identifier and the attribute/content operations
// to apply to it client-side.
type EleUpdate struct {
	EleId string `json:"eleId"`
	Ops   []Op   `json:"ops"`
}

// Op is an attribute key and its new value; "textContent" sets the
// element's text.
type Op struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Snapshot is what the arena publishes after every simulated tick.
type Snapshot struct {
	MatchID   string
	Tick      int
	Resources []int
	NumAnts   [game.NumPlayers][]int
	Crystals  [game.NumPlayers]int
	// Iterations is the searching player's solver iterations this turn.
	Iterations int
	BestScore  float64
}

// HexCell positions one cell for the SVG template. Cells are laid out on a
// ring spiral purely for display; adjacency on screen is cosmetic.
type HexCell struct {
	Id      int
	X, Y    float64
	Content string
}

// LayoutCells converts the map into display positions.
func LayoutCells(layout *game.Layout) []HexCell {
	n := layout.NumCells()
	cells := make([]HexCell, n)
	for i := 0; i < n; i++ {
		// Spiral placement: cell 0 at the center, successive cells on
		// widening rings.
		ring := 0
		for (ring*ring*3 + ring*3) < i {
			ring++
		}
		angle := 0.0
		if i > 0 {
			angle = 2 * math.Pi * float64(i) / float64(ring*6)
		}
		radius := float64(ring) * 36
		cells[i] = HexCell{
			Id:      i,
			X:       400 + radius*math.Cos(angle),
			Y:       300 + radius*math.Sin(angle),
			Content: layout.Cells[i].Content.String(),
		}
	}
	return cells
}

// Updates diffs a snapshot into element operations for the client.
func Updates(s Snapshot) []EleUpdate {
	var updates []EleUpdate
	for cell := range s.Resources {
		updates = append(updates, EleUpdate{
			EleId: fmt.Sprintf("cell-%d", cell),
			Ops: []Op{
				{Key: "textContent", Value: fmt.Sprintf("%d|%d/%d", s.NumAnts[game.Me][cell], s.NumAnts[game.Enemy][cell], s.Resources[cell])},
			},
		})
	}
	updates = append(updates, EleUpdate{
		EleId: "scoreline",
		Ops: []Op{
			{Key: "textContent", Value: fmt.Sprintf("tick %d — me %d / enemy %d — iters %d best %.1f",
				s.Tick, s.Crystals[game.Me], s.Crystals[game.Enemy], s.Iterations, s.BestScore)},
		},
	})
	return updates
}

const indexTemplate = `
<html>
	<body>
		<div id="scoreline">waiting for match...</div>
		<svg width="800px" height="600px">
		{{ range $cell := . }}
			<g>
				<circle cx="{{ printf "%.0f" $cell.X }}" cy="{{ printf "%.0f" $cell.Y }}" r="16"
					fill="none" stroke="black" stroke-width="1px"/>
				<text id="cell-{{ $cell.Id }}"
					x="{{ printf "%.0f" $cell.X }}" y="{{ printf "%.0f" $cell.Y }}"
					font-size="8" dominant-baseline="middle" text-anchor="middle">{{ $cell.Content }}</text>
			</g>
		{{ end }}
		</svg>
		<script>
			const ws = new WebSocket("ws://" + location.host + "/ws");
			ws.onmessage = (msg) => {
				for (const update of JSON.parse(msg.data)) {
					const ele = document.getElementById(update.eleId);
					if (!ele) continue;
					for (const op of update.ops) {
						if (op.key === "textContent") { ele.textContent = op.value; }
						else { ele.setAttribute(op.key, op.value); }
					}
				}
			};
		</script>
	</body>
</html>
`
