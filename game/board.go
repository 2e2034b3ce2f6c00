package game

import "fmt"

// GameBoard is the mutable occupancy of a BoardDesign. Per-player piece
// counts are kept in sync with every insert and remove, so Count is O(1).
type GameBoard struct {
	design BoardDesign
	fields map[Position]Piece
	count  [2]int
}

func NewGameBoard(design BoardDesign) *GameBoard {
	return &GameBoard{
		design: design,
		fields: make(map[Position]Piece),
	}
}

func (b *GameBoard) Design() BoardDesign { return b.design }

// Clone copies the occupancy and counts; the immutable design is shared.
func (b *GameBoard) Clone() *GameBoard {
	clone := &GameBoard{
		design: b.design,
		fields: make(map[Position]Piece, len(b.fields)),
		count:  b.count,
	}
	for pos, piece := range b.fields {
		clone.fields[pos] = piece
	}
	return clone
}

// Count returns the number of pieces the player has on the board.
func (b *GameBoard) Count(player PlayerID) int {
	return b.count[player]
}

// CountTotal returns both players' piece counts.
func (b *GameBoard) CountTotal() (int, int) {
	return b.count[0], b.count[1]
}

func (b *GameBoard) Get(pos Position) (Piece, bool) {
	piece, ok := b.fields[pos]
	return piece, ok
}

func (b *GameBoard) IsEmpty(pos Position) bool {
	_, ok := b.fields[pos]
	return !ok
}

// Empty returns the unoccupied positions in field order. Iterating the
// design instead of the occupancy map keeps the order deterministic.
func (b *GameBoard) Empty() []Position {
	var empty []Position
	for _, pos := range b.design.Fields() {
		if b.IsEmpty(pos) {
			empty = append(empty, pos)
		}
	}
	return empty
}

// Pieces returns the positions of the player's pieces in field order.
func (b *GameBoard) Pieces(player PlayerID) []Position {
	var pieces []Position
	for _, pos := range b.design.Fields() {
		if b.owns(player, pos) {
			pieces = append(pieces, pos)
		}
	}
	return pieces
}

func (b *GameBoard) owns(player PlayerID, pos Position) bool {
	piece, ok := b.fields[pos]
	return ok && piece.Player == player
}

// Mills returns every completed mill line of the player.
func (b *GameBoard) Mills(player PlayerID) [][3]Position {
	var mills [][3]Position
	for _, line := range b.design.Lines() {
		if b.owns(player, line[0]) && b.owns(player, line[1]) && b.owns(player, line[2]) {
			mills = append(mills, line)
		}
	}
	return mills
}

// InsideMill reports whether the player's piece at pos is part of a
// completed mill.
func (b *GameBoard) InsideMill(player PlayerID, pos Position) bool {
	if !b.owns(player, pos) {
		return false
	}
	for _, line := range b.design.LinesOf(pos) {
		if b.owns(player, line[0]) && b.owns(player, line[1]) {
			return true
		}
	}
	return false
}

// PiecesInsideMill returns the player's pieces protected by completed mills.
func (b *GameBoard) PiecesInsideMill(player PlayerID) []Position {
	inside := b.millPositions(player)
	var pieces []Position
	for _, pos := range b.Pieces(player) {
		if inside[pos] {
			pieces = append(pieces, pos)
		}
	}
	return pieces
}

// PiecesOutsideMill returns the player's pieces not covered by any mill.
// These are captured first when the opponent completes a mill.
func (b *GameBoard) PiecesOutsideMill(player PlayerID) []Position {
	inside := b.millPositions(player)
	var pieces []Position
	for _, pos := range b.Pieces(player) {
		if !inside[pos] {
			pieces = append(pieces, pos)
		}
	}
	return pieces
}

func (b *GameBoard) millPositions(player PlayerID) map[Position]bool {
	inside := make(map[Position]bool)
	for _, line := range b.Mills(player) {
		for _, pos := range line {
			inside[pos] = true
		}
	}
	return inside
}

// ReadyMills returns the (second, third) pairs that would complete a mill
// for player if the empty position pos were filled. A non-empty pos has no
// ready mills.
func (b *GameBoard) ReadyMills(player PlayerID, pos Position) [][2]Position {
	if !b.IsEmpty(pos) {
		return nil
	}
	var ready [][2]Position
	for _, line := range b.design.LinesOf(pos) {
		if b.owns(player, line[0]) && b.owns(player, line[1]) {
			ready = append(ready, line)
		}
	}
	return ready
}

// Place puts a new piece on an empty position.
func (b *GameBoard) Place(pos Position, piece Piece) error {
	if !b.IsEmpty(pos) {
		return fmt.Errorf("%w: place on occupied position %v", ErrIllegalMutation, pos)
	}
	b.fields[pos] = piece
	b.count[piece.Player]++
	return nil
}

// Move slides a piece along one topological link.
func (b *GameBoard) Move(start, end Position) error {
	if !b.design.IsLinkedTo(start, end) {
		return fmt.Errorf("%w: %v is not linked to %v", ErrIllegalMutation, start, end)
	}
	return b.Jump(start, end)
}

// Jump relocates a piece to any empty position.
func (b *GameBoard) Jump(start, end Position) error {
	if !b.IsEmpty(end) {
		return fmt.Errorf("%w: jump to occupied position %v", ErrIllegalMutation, end)
	}
	piece, ok := b.fields[start]
	if !ok {
		return fmt.Errorf("%w: no piece at %v", ErrIllegalMutation, start)
	}
	delete(b.fields, start)
	b.fields[end] = piece
	return nil
}

// Remove takes the piece at pos off the board, if there is one.
func (b *GameBoard) Remove(pos Position) (Piece, bool) {
	piece, ok := b.fields[pos]
	if ok {
		delete(b.fields, pos)
		b.count[piece.Player]--
	}
	return piece, ok
}

// AvailableMoves returns the empty neighbors of pos.
func (b *GameBoard) AvailableMoves(pos Position) []Position {
	var moves []Position
	for _, npos := range b.design.NeighborsOf(pos) {
		if b.IsEmpty(npos) {
			moves = append(moves, npos)
		}
	}
	return moves
}
