package attacks

import (
	"testing"

	"lukechampine.com/frand"

	"github.com/apollochess/apollo/internal/board"
)

var table = New()

func randomOccupancy(pieces int) board.Bitboard {
	var occ board.Bitboard
	for i := 0; i < pieces; i++ {
		occ = occ.Set(board.Square(frand.Intn(64)))
	}
	return occ
}

func squaresBB(squares ...board.Square) board.Bitboard {
	var b board.Bitboard
	for _, sq := range squares {
		b = b.Set(sq)
	}
	return b
}

func TestKnightAttacksF5(t *testing.T) {
	// A knight on f5 attacks a fixed set of eight squares, regardless of
	// anything else on the board.
	want := squaresBB(board.D4, board.D6, board.E3, board.E7,
		board.G3, board.G7, board.H4, board.H6)

	if got := table.Knight(board.F5); got != want {
		t.Errorf("Knight(f5) =\n%swant\n%s", got, want)
	}
}

func TestKnightAttacksCorners(t *testing.T) {
	tests := []struct {
		sq   board.Square
		want board.Bitboard
	}{
		{board.A1, squaresBB(board.B3, board.C2)},
		{board.H1, squaresBB(board.G3, board.F2)},
		{board.A8, squaresBB(board.B6, board.C7)},
		{board.H8, squaresBB(board.G6, board.F7)},
	}

	for _, tc := range tests {
		if got := table.Knight(tc.sq); got != tc.want {
			t.Errorf("Knight(%v) =\n%swant\n%s", tc.sq, got, tc.want)
		}
	}
}

func TestKnightAttackCounts(t *testing.T) {
	// Every square yields between 2 (corners) and 8 attacked squares.
	for sq := board.A1; sq <= board.H8; sq++ {
		n := table.Knight(sq).PopCount()
		if n < 2 || n > 8 {
			t.Errorf("Knight(%v) has %d targets", sq, n)
		}
	}
}

func TestKingAttacks(t *testing.T) {
	tests := []struct {
		sq   board.Square
		want board.Bitboard
	}{
		{board.A1, squaresBB(board.A2, board.B1, board.B2)},
		{board.E4, squaresBB(board.D3, board.D4, board.D5, board.E3,
			board.E5, board.F3, board.F4, board.F5)},
		{board.H8, squaresBB(board.G7, board.G8, board.H7)},
	}

	for _, tc := range tests {
		if got := table.King(tc.sq); got != tc.want {
			t.Errorf("King(%v) =\n%swant\n%s", tc.sq, got, tc.want)
		}
	}
}

func TestPawnAttacks(t *testing.T) {
	tests := []struct {
		sq   board.Square
		c    board.Color
		want board.Bitboard
	}{
		{board.E4, board.White, squaresBB(board.D5, board.F5)},
		{board.E4, board.Black, squaresBB(board.D3, board.F3)},
		{board.A4, board.White, squaresBB(board.B5)},
		{board.H4, board.Black, squaresBB(board.G3)},
		// Back-rank pawns cannot legally exist, but the function still
		// answers what such a pawn would attack.
		{board.E1, board.Black, squaresBB()},
		{board.E8, board.White, squaresBB()},
		{board.E1, board.White, squaresBB(board.D2, board.F2)},
	}

	for _, tc := range tests {
		if got := table.Pawn(tc.sq, tc.c); got != tc.want {
			t.Errorf("Pawn(%v, %v) =\n%swant\n%s", tc.sq, tc.c, got, tc.want)
		}
	}
}

func TestPawnPushes(t *testing.T) {
	if got := table.PawnPushes(board.E2, board.White); got != squaresBB(board.E3) {
		t.Errorf("PawnPushes(e2, White) = %v", got)
	}
	if got := table.PawnPushes(board.E7, board.Black); got != squaresBB(board.E6) {
		t.Errorf("PawnPushes(e7, Black) = %v", got)
	}
}

func TestQueenIsRookUnionBishop(t *testing.T) {
	// For all squares and a spread of occupancies, queen attacks must be
	// exactly the union of rook and bishop attacks.
	for trial := 0; trial < 128; trial++ {
		occ := randomOccupancy(frand.Intn(32))
		for sq := board.A1; sq <= board.H8; sq++ {
			want := table.Rook(sq, occ) | table.Bishop(sq, occ)
			if got := table.Queen(sq, occ); got != want {
				t.Fatalf("Queen(%v, %x) != Rook|Bishop", sq, uint64(occ))
			}
		}
	}
}

func TestSlidersMatchRayCasting(t *testing.T) {
	// The magic lookup is an optimization only: for every square and any
	// occupancy it must agree with the naive walk-the-ray oracle.
	for trial := 0; trial < 256; trial++ {
		occ := randomOccupancy(frand.Intn(40))
		for sq := board.A1; sq <= board.H8; sq++ {
			if got, want := table.Rook(sq, occ), rookAttacksSlow(sq, occ); got != want {
				t.Fatalf("Rook(%v, %x) =\n%swant\n%s", sq, uint64(occ), got, want)
			}
			if got, want := table.Bishop(sq, occ), bishopAttacksSlow(sq, occ); got != want {
				t.Fatalf("Bishop(%v, %x) =\n%swant\n%s", sq, uint64(occ), got, want)
			}
		}
	}
}

func TestRookRayStopsAtFirstBlocker(t *testing.T) {
	// Rook on d4, blockers on d6 and f4: the north ray must include d5
	// and d6 but nothing beyond, and the east ray must stop at f4. The
	// blocker squares themselves are attacked whether friend or foe.
	occ := squaresBB(board.D4, board.D6, board.F4)
	got := table.Rook(board.D4, occ)

	want := squaresBB(
		board.D5, board.D6, // north, stops at blocker
		board.D3, board.D2, board.D1, // south, open
		board.E4, board.F4, // east, stops at blocker
		board.C4, board.B4, board.A4, // west, open
	)

	if got != want {
		t.Errorf("Rook(d4) with blockers =\n%swant\n%s", got, want)
	}

	if got.IsSet(board.D7) || got.IsSet(board.G4) {
		t.Error("ray extended past the first blocker")
	}
}

func TestRookEmptyBoardCoversRankAndFile(t *testing.T) {
	for sq := board.A1; sq <= board.H8; sq++ {
		want := (board.FileMask[sq.File()] | board.RankMask[sq.Rank()]).Clear(sq)
		if got := table.Rook(sq, board.EmptyBB); got != want {
			t.Errorf("Rook(%v, empty) =\n%swant\n%s", sq, got, want)
		}
	}
}

func TestQueenAttacksF5EmptyBoard(t *testing.T) {
	rankFile := (board.FileF | board.Rank5).Clear(board.F5)
	diagonals := squaresBB(
		board.G6, board.H7, // northeast
		board.E4, board.D3, board.C2, board.B1, // southwest
		board.E6, board.D7, board.C8, // northwest
		board.G4, board.H3, // southeast
	)
	want := rankFile | diagonals

	if got := table.Queen(board.F5, board.EmptyBB); got != want {
		t.Errorf("Queen(f5, empty) =\n%swant\n%s", got, want)
	}
}

func TestLeapersIgnoreOccupancy(t *testing.T) {
	// Knight and king tables are fixed at construction; any two tables
	// agree, and no occupancy can influence the answer because the
	// methods never see one.
	other := New()
	for sq := board.A1; sq <= board.H8; sq++ {
		if table.Knight(sq) != other.Knight(sq) {
			t.Errorf("Knight(%v) differs between independently built tables", sq)
		}
		if table.King(sq) != other.King(sq) {
			t.Errorf("King(%v) differs between independently built tables", sq)
		}
		for c := board.White; c <= board.Black; c++ {
			if table.Pawn(sq, c) != other.Pawn(sq, c) {
				t.Errorf("Pawn(%v, %v) differs between independently built tables", sq, c)
			}
		}
	}
}

func TestBetweenAndLine(t *testing.T) {
	tests := []struct {
		a, b board.Square
		want board.Bitboard
	}{
		{board.A1, board.H8, squaresBB(board.B2, board.C3, board.D4,
			board.E5, board.F6, board.G7)},
		{board.A1, board.A8, squaresBB(board.A2, board.A3, board.A4,
			board.A5, board.A6, board.A7)},
		{board.C3, board.C4, board.EmptyBB},
		{board.A1, board.B3, board.EmptyBB}, // not aligned
	}

	for _, tc := range tests {
		if got := table.Between(tc.a, tc.b); got != tc.want {
			t.Errorf("Between(%v, %v) =\n%swant\n%s", tc.a, tc.b, got, tc.want)
		}
	}

	if got := table.Line(board.D4, board.F4); got != board.Rank4 {
		t.Errorf("Line(d4, f4) =\n%swant rank 4", got)
	}
	if got := table.Line(board.A1, board.H8); got.PopCount() != 8 {
		t.Errorf("Line(a1, h8) has %d squares, want 8", got.PopCount())
	}

	if !table.Aligned(board.A1, board.H8, board.D4) {
		t.Error("d4 should be aligned with a1-h8")
	}
	if table.Aligned(board.A1, board.H8, board.D5) {
		t.Error("d5 should not be aligned with a1-h8")
	}
}

func BenchmarkQueenAttacks(b *testing.B) {
	occ := randomOccupancy(24)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.Queen(board.Square(i&63), occ)
	}
}

func BenchmarkTableConstruction(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New()
	}
}
