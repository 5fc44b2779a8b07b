// Package zobrist provides the key material for 64-bit position hashing.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// A position's hash is the XOR of the keys for every piece placement plus
// the castling-rights, en-passant-file and side-to-move keys. Because XOR
// is its own inverse, the position type that owns the board state can
// update its hash incrementally as moves are made and unmade. The
// transposition table consumes the resulting hash as an opaque key.
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/apollochess/apollo/internal/board"
)

const bignum = 1<<63 - 2

// Keys holds one independently drawn set of Zobrist keys.
type Keys struct {
	piece      [2][6][64]uint64 // [Color][PieceType][Square]
	enPassant  [8]uint64        // one per file
	castling   [16]uint64       // every castling-rights combination
	sideToMove uint64           // XORed in when black is to move
}

// New draws a fresh set of keys. Keys are never zero, so XORing one in or
// out always changes the hash.
func New() *Keys {
	k := &Keys{}
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			for sq := board.A1; sq <= board.H8; sq++ {
				k.piece[c][pt][sq] = frand.Uint64n(bignum) + 1
			}
		}
	}
	for file := 0; file < 8; file++ {
		k.enPassant[file] = frand.Uint64n(bignum) + 1
	}
	for i := 0; i < 16; i++ {
		k.castling[i] = frand.Uint64n(bignum) + 1
	}
	k.sideToMove = frand.Uint64n(bignum) + 1
	return k
}

// PieceKey returns the key for a piece of the given color and type on sq.
func (k *Keys) PieceKey(c board.Color, pt board.PieceType, sq board.Square) uint64 {
	return k.piece[c][pt][sq]
}

// EnPassantKey returns the key for an en passant target on the given file.
func (k *Keys) EnPassantKey(file int) uint64 {
	return k.enPassant[file]
}

// CastlingKey returns the key for a castling-rights combination (0-15).
func (k *Keys) CastlingKey(rights uint8) uint64 {
	return k.castling[rights]
}

// SideToMoveKey returns the key XORed in when black is to move.
func (k *Keys) SideToMoveKey() uint64 {
	return k.sideToMove
}
