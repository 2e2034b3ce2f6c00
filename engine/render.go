package engine

import (
	"strings"

	"github.com/muesli/termenv"

	"muehle/game"
)

// Render draws the board one ring per row, outer ring first, with spoke
// markers between the rows. Pieces show as the owning player's digit,
// colored when the terminal supports it.
func Render(board *game.GameBoard) string {
	design := board.Design()

	ringSize := 0
	for _, pos := range design.Fields() {
		if pos.Ring == 0 {
			ringSize++
		}
	}

	profile := termenv.ColorProfile()
	styles := [2]termenv.Color{
		profile.Color("9"),  // player 0: bright red
		profile.Color("12"), // player 1: bright blue
	}

	rows := make([]string, 3)
	for ring := 0; ring < 3; ring++ {
		cells := make([]string, ringSize)
		for index := 0; index < ringSize; index++ {
			cells[index] = " "
			if piece, ok := board.Get(game.Position{Ring: ring, Index: index}); ok {
				digit := string(rune('0' + piece.Player))
				cells[index] = termenv.String(digit).Foreground(styles[piece.Player]).String()
			}
		}
		rows[ring] = "- " + strings.Join(cells, " - ")
	}

	// A spoke is drawn wherever the topology links across rings, so an
	// extended board shows one at every index.
	spokes := make([]string, 0, ringSize)
	for index := 0; index < ringSize; index++ {
		if design.IsLinkedTo(game.Position{Ring: 0, Index: index}, game.Position{Ring: 1, Index: index}) {
			spokes = append(spokes, "|")
		} else {
			spokes = append(spokes, " ")
		}
	}
	separator := "\n  " + strings.Join(spokes, "   ") + "\n"

	return strings.Join(rows, separator)
}
