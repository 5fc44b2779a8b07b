// Package attacks answers "which squares does a piece of kind K on square S
// attack, given occupancy O?" for every piece kind. All lookup structures
// are built eagerly when a Table is constructed; a Table never mutates
// afterwards and may be shared by any number of concurrent readers without
// coordination.
package attacks

import "github.com/apollochess/apollo/internal/board"

// Table holds every precomputed attack structure: fixed leaper tables
// (knight, king, pawn), the magic-bitboard lookup tables for sliders, and
// the between/line geometry tables used by legality filtering upstream.
type Table struct {
	knight     [64]board.Bitboard
	king       [64]board.Bitboard
	pawn       [2][64]board.Bitboard // [Color][Square], capture pattern
	pawnPushes [2][64]board.Bitboard // [Color][Square], single push targets

	between [64][64]board.Bitboard // squares strictly between two squares
	line    [64][64]board.Bitboard // full line through two squares

	bishopMagics [64]magic
	rookMagics   [64]magic
	bishopTable  []board.Bitboard
	rookTable    []board.Bitboard
}

// New builds a fully populated attack table. The cost is paid once; every
// query afterwards is a table lookup.
func New() *Table {
	t := &Table{}
	t.initKnight()
	t.initKing()
	t.initPawns()
	t.initBetween()
	t.initLine()
	t.initMagics()
	return t
}

// Knight returns the knight attack bitboard for a square. Occupancy never
// matters for knights.
func (t *Table) Knight(sq board.Square) board.Bitboard {
	return t.knight[sq]
}

// King returns the king attack bitboard for a square.
func (t *Table) King(sq board.Square) board.Bitboard {
	return t.king[sq]
}

// Pawn returns the squares a pawn of the given color on sq would attack
// (diagonal captures, forward relative to its color). It is defined on
// every rank, including ranks a pawn can never legally occupy; callers own
// that check.
func (t *Table) Pawn(sq board.Square, c board.Color) board.Bitboard {
	return t.pawn[c][sq]
}

// PawnPushes returns the single-push target square for a pawn of the given
// color on sq.
func (t *Table) PawnPushes(sq board.Square, c board.Color) board.Bitboard {
	return t.pawnPushes[c][sq]
}

// Bishop returns the bishop attack bitboard for a square given the board
// occupancy. Each diagonal ray extends through empty squares and stops at,
// and includes, the first occupied square, friend or foe.
func (t *Table) Bishop(sq board.Square, occupied board.Bitboard) board.Bitboard {
	m := &t.bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.magic) >> m.shift
	return t.bishopTable[m.offset+uint32(idx)]
}

// Rook returns the rook attack bitboard for a square given the board
// occupancy, with the same first-blocker semantics as Bishop.
func (t *Table) Rook(sq board.Square, occupied board.Bitboard) board.Bitboard {
	m := &t.rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.magic) >> m.shift
	return t.rookTable[m.offset+uint32(idx)]
}

// Queen returns the queen attack bitboard: the union of rook and bishop
// attacks from the same square.
func (t *Table) Queen(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Bishop(sq, occupied) | t.Rook(sq, occupied)
}

// Between returns the bitboard of squares strictly between two squares, or
// empty if they are not aligned on a rank, file or diagonal.
func (t *Table) Between(a, b board.Square) board.Bitboard {
	return t.between[a][b]
}

// Line returns the full line through two aligned squares, endpoints
// included, or empty if they are not aligned.
func (t *Table) Line(a, b board.Square) board.Bitboard {
	return t.line[a][b]
}

// Aligned returns true if sq lies on the line through a and b.
func (t *Table) Aligned(a, b, sq board.Square) bool {
	return t.line[a][b]&board.SquareBB(sq) != 0
}

func (t *Table) initKnight() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)

		attacks := board.EmptyBB

		// Two ranks, one file
		attacks |= (bb << 17) & board.NotFileA
		attacks |= (bb << 15) & board.NotFileH
		attacks |= (bb >> 17) & board.NotFileH
		attacks |= (bb >> 15) & board.NotFileA

		// One rank, two files
		attacks |= (bb << 10) & board.NotFileAB
		attacks |= (bb << 6) & board.NotFileGH
		attacks |= (bb >> 10) & board.NotFileGH
		attacks |= (bb >> 6) & board.NotFileAB

		t.knight[sq] = attacks
	}
}

func (t *Table) initKing() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)

		attacks := bb.North() | bb.South() | bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		t.king[sq] = attacks
	}
}

func (t *Table) initPawns() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)

		t.pawn[board.White][sq] = bb.NorthEast() | bb.NorthWest()
		t.pawn[board.Black][sq] = bb.SouthEast() | bb.SouthWest()

		t.pawnPushes[board.White][sq] = bb.North()
		t.pawnPushes[board.Black][sq] = bb.South()
	}
}

func (t *Table) initBetween() {
	for a := board.A1; a <= board.H8; a++ {
		for b := board.A1; b <= board.H8; b++ {
			if a == b {
				continue
			}

			f1, r1 := a.File(), a.Rank()
			f2, r2 := b.File(), b.Rank()

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			// Skip unaligned pairs.
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var between board.Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				if f < 0 || f > 7 || r < 0 || r > 7 {
					break
				}
				between |= board.SquareBB(board.NewSquare(f, r))
				f += df
				r += dr
			}

			t.between[a][b] = between
		}
	}
}

func (t *Table) initLine() {
	for a := board.A1; a <= board.H8; a++ {
		for b := board.A1; b <= board.H8; b++ {
			if a == b {
				continue
			}

			f1, r1 := a.File(), a.Rank()
			f2, r2 := b.File(), b.Rank()

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var line board.Bitboard

			f, r := f1, r1
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= board.SquareBB(board.NewSquare(f, r))
				f -= df
				r -= dr
			}

			f, r = f1+df, r1+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= board.SquareBB(board.NewSquare(f, r))
				f += df
				r += dr
			}

			t.line[a][b] = line
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
