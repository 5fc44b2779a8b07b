// apollo-bench exercises the two hot subsystems of the engine core: it
// times attack-table construction and query throughput, then hammers the
// transposition table from several goroutines and reports hit rates.
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/apollochess/apollo/internal/board"
	"github.com/apollochess/apollo/internal/engine"
	"github.com/apollochess/apollo/internal/zobrist"
)

var (
	queries  = flag.Int("queries", 5_000_000, "number of sliding-attack queries to time")
	inserts  = flag.Int("inserts", 1_000_000, "number of transposition-table inserts per worker")
	workers  = flag.Int("workers", runtime.NumCPU(), "number of concurrent transposition-table workers")
	keySpace = flag.Uint64("key-space", 1<<18, "number of distinct hashes the stress test draws from")
	debug    = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	benchAttackTable()
	benchTranspositionTable()
}

func benchAttackTable() {
	start := time.Now()
	eng := engine.New()
	built := time.Since(start)
	log.Info().Dur("elapsed", built).Msg("attack-table-built")

	at := eng.AttackTable()

	// Random but valid occupancies: a handful of set squares each.
	occs := make([]board.Bitboard, 1024)
	for i := range occs {
		var occ board.Bitboard
		for j := 0; j < 24; j++ {
			occ = occ.Set(board.Square(frand.Intn(64)))
		}
		occs[i] = occ
	}

	start = time.Now()
	var sink board.Bitboard
	for i := 0; i < *queries; i++ {
		sq := board.Square(i & 63)
		occ := occs[i&(len(occs)-1)]
		sink ^= at.Queen(sq, occ)
	}
	elapsed := time.Since(start)

	log.Info().
		Int("queries", *queries).
		Dur("elapsed", elapsed).
		Float64("queries-per-second", float64(*queries)/elapsed.Seconds()).
		Uint64("sink", uint64(sink)).
		Msg("queen-attack-throughput")
}

func benchTranspositionTable() {
	tt := engine.NewTranspositionTable()
	tt.Initialize()

	keys := zobrist.New()

	// Derive the stress-test hash space from real zobrist key material so
	// the keys have the same distribution search would produce.
	hashes := make([]uint64, *keySpace)
	for i := range hashes {
		c := board.Color(i & 1)
		pt := board.PieceType(i % 6)
		sq := board.Square(i & 63)
		hashes[i] = keys.PieceKey(c, pt, sq) ^ uint64(i)<<32
	}

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < *inserts; i++ {
				h := hashes[frand.Intn(len(hashes))]
				if entry, ok := tt.Query(h); ok {
					// Touch the copy so the query is not dead code.
					_ = entry.Depth
					continue
				}
				tt.Insert(h, engine.Entry{
					BestMove: board.NewMove(board.E2, board.E4),
					Depth:    uint8(w + 1),
					Kind:     engine.NodePV,
					Score:    int16(i & 0x7FFF),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("transposition-stress-failed")
	}
	elapsed := time.Since(start)

	ops := *workers * *inserts
	log.Info().
		Int("workers", *workers).
		Int("operations", ops).
		Dur("elapsed", elapsed).
		Float64("ops-per-second", float64(ops)/elapsed.Seconds()).
		Int("entries", tt.Len()).
		Uint64("stores", tt.Stores()).
		Float64("hit-rate-pct", tt.HitRate()).
		Msg("transposition-table-stress")

	tt.Clear()
}
