// Package engine contains the composition root that owns the attack table
// for the lifetime of a search session, and the transposition table shared
// by search workers.
package engine

import (
	"github.com/apollochess/apollo/internal/attacks"
)

// Engine owns one fully built attack table. It has no other state: the
// search algorithm, move generator and protocol layers live above this
// module and borrow the table through AttackTable.
//
// Multiple Engines may coexist; each builds its own table. The tables are
// pure functions of board geometry, so independently built tables always
// agree in content.
type Engine struct {
	attackTable *attacks.Table
}

// New constructs an Engine, paying the full attack-table generation cost
// up front.
func New() *Engine {
	return &Engine{
		attackTable: attacks.New(),
	}
}

// AttackTable returns the engine's attack table. The table is immutable
// and valid for the lifetime of the Engine; any number of goroutines may
// query it concurrently.
func (e *Engine) AttackTable() *attacks.Table {
	return e.attackTable
}
