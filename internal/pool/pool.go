// Package pool implements the bounded, best-cost-first solution pool
// each heuristic writes into (spec.md §3).
package pool

import "gonum.org/v1/gonum/mat"

// Entry is one recorded solution and its objective cost.
type Entry struct {
	Solution *mat.VecDense
	Cost     float64
}

// Pool is an ordered, best-cost-first sequence of entries, owned by a
// single heuristic for the duration of its run; the Search only reads
// pools after every worker has joined, so no synchronization is needed
// inside Pool itself (spec.md §5).
type Pool struct {
	entries []Entry
	limit   int
}

// New creates a pool capped at limit entries (0 means unbounded).
func New(limit int) *Pool {
	return &Pool{limit: limit}
}

// Add inserts (sol, cost) keeping entries ordered by ascending cost,
// ties broken by insertion order (stable insert), and truncates to the
// pool's limit if set.
func (p *Pool) Add(sol *mat.VecDense, cost float64) {
	e := Entry{Solution: sol, Cost: cost}
	i := 0
	for i < len(p.entries) && p.entries[i].Cost <= cost {
		i++
	}
	p.entries = append(p.entries, Entry{})
	copy(p.entries[i+1:], p.entries[i:])
	p.entries[i] = e
	if p.limit > 0 && len(p.entries) > p.limit {
		p.entries = p.entries[:p.limit]
	}
}

// Size returns the number of entries currently held.
func (p *Pool) Size() int {
	return len(p.entries)
}

// At returns the i'th best entry (0 is the lowest cost).
func (p *Pool) At(i int) Entry {
	return p.entries[i]
}

// Best returns the lowest-cost entry and true, or a zero Entry and false
// if the pool is empty.
func (p *Pool) Best() (Entry, bool) {
	if len(p.entries) == 0 {
		return Entry{}, false
	}
	return p.entries[0], true
}
