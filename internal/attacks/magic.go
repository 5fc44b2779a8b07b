package attacks

import "github.com/apollochess/apollo/internal/board"

// Fancy magic bitboards for sliding pieces. For each square a relevant
// occupancy mask is multiplied by a fixed magic constant; the top bits of
// the product index into a shared flat table of precomputed attack sets.
// The lookup is observably identical to casting rays and stopping at the
// first blocker; the slow ray generators below remain the source of truth
// when the tables are filled.

// magic holds the lookup data for one square.
type magic struct {
	mask   board.Bitboard // relevant occupancy mask (edges excluded)
	magic  uint64         // magic multiplier
	shift  uint8          // bits to shift the product right
	offset uint32         // index into the flat attack table
}

// Total entries across all 64 squares.
const (
	bishopTableSize = 5248
	rookTableSize   = 102400
)

// Pre-computed magic numbers (found through trial and error).
var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func (t *Table) initMagics() {
	t.bishopTable = make([]board.Bitboard, bishopTableSize)
	t.rookTable = make([]board.Bitboard, rookTableSize)
	t.initBishopMagics()
	t.initRookMagics()
}

func (t *Table) initBishopMagics() {
	var offset uint32
	for sq := board.A1; sq <= board.H8; sq++ {
		mask := bishopMask(sq)
		bits := mask.PopCount()

		t.bishopMagics[sq] = magic{
			mask:   mask,
			magic:  bishopMagicNumbers[sq],
			shift:  uint8(64 - bits),
			offset: offset,
		}

		// Enumerate every subset of the relevant mask and fill the table
		// with ray-cast attacks for that occupancy.
		numEntries := 1 << bits
		for i := 0; i < numEntries; i++ {
			occ := indexToOccupancy(i, bits, mask)
			idx := (uint64(occ) * bishopMagicNumbers[sq]) >> (64 - bits)
			t.bishopTable[offset+uint32(idx)] = bishopAttacksSlow(sq, occ)
		}
		offset += uint32(numEntries)
	}
}

func (t *Table) initRookMagics() {
	var offset uint32
	for sq := board.A1; sq <= board.H8; sq++ {
		mask := rookMask(sq)
		bits := mask.PopCount()

		t.rookMagics[sq] = magic{
			mask:   mask,
			magic:  rookMagicNumbers[sq],
			shift:  uint8(64 - bits),
			offset: offset,
		}

		numEntries := 1 << bits
		for i := 0; i < numEntries; i++ {
			occ := indexToOccupancy(i, bits, mask)
			idx := (uint64(occ) * rookMagicNumbers[sq]) >> (64 - bits)
			t.rookTable[offset+uint32(idx)] = rookAttacksSlow(sq, occ)
		}
		offset += uint32(numEntries)
	}
}

// bishopMask returns the relevant occupancy mask for a bishop on sq.
// Edge squares never change the result and are excluded.
func bishopMask(sq board.Square) board.Bitboard {
	return bishopAttacksSlow(sq, 0) &^ board.Edges
}

// rookMask returns the relevant occupancy mask for a rook on sq.
func rookMask(sq board.Square) board.Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask board.Bitboard

	for f := 1; f < 7; f++ {
		if f != file {
			mask |= board.SquareBB(board.NewSquare(f, rank))
		}
	}

	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= board.SquareBB(board.NewSquare(file, r))
		}
	}

	return mask
}

// indexToOccupancy spreads the bits of index over the set squares of mask,
// producing the index-th occupancy subset.
func indexToOccupancy(index, bits int, mask board.Bitboard) board.Bitboard {
	var occ board.Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= board.SquareBB(sq)
		}
	}
	return occ
}

// bishopAttacksSlow computes bishop attacks by ray casting. Used to fill
// the magic tables and as the reference oracle in tests.
func bishopAttacksSlow(sq board.Square, occupied board.Bitboard) board.Bitboard {
	var attacks board.Bitboard
	file, rank := sq.File(), sq.Rank()

	for f, r := file+1, rank+1; f <= 7 && r <= 7; f, r = f+1, r+1 {
		s := board.NewSquare(f, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for f, r := file-1, rank+1; f >= 0 && r <= 7; f, r = f-1, r+1 {
		s := board.NewSquare(f, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for f, r := file+1, rank-1; f <= 7 && r >= 0; f, r = f+1, r-1 {
		s := board.NewSquare(f, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for f, r := file-1, rank-1; f >= 0 && r >= 0; f, r = f-1, r-1 {
		s := board.NewSquare(f, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	return attacks
}

// rookAttacksSlow computes rook attacks by ray casting.
func rookAttacksSlow(sq board.Square, occupied board.Bitboard) board.Bitboard {
	var attacks board.Bitboard
	file, rank := sq.File(), sq.Rank()

	for r := rank + 1; r <= 7; r++ {
		s := board.NewSquare(file, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for r := rank - 1; r >= 0; r-- {
		s := board.NewSquare(file, r)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for f := file + 1; f <= 7; f++ {
		s := board.NewSquare(f, rank)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	for f := file - 1; f >= 0; f-- {
		s := board.NewSquare(f, rank)
		attacks |= board.SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
	}

	return attacks
}
