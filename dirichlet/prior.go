// Package dirichlet implements a Dirichlet-smoothed multinomial: an
// empirical counter over a generic event space combined with a fixed
// Dirichlet prior, yielding smoothed counts and probabilities for
// sparse observations. The prior is never re-estimated; only the
// empirical counts change.
//
// The types are plain single-threaded values with no internal
// locking. Concurrent mutation must be serialized by the caller.
package dirichlet

import (
	"github.com/pkg/errors"

	"github.com/probkit/dirmult/collections"
	"github.com/probkit/dirmult/wire"
)

// Weight pairs an event with its pseudo-count, for building
// asymmetric priors.
type Weight[E Event] struct {
	Event  E
	Weight float64
}

// Prior is a Dirichlet prior over an event space, in one of two
// variants: Symmetric (a single shared pseudo-count) or Asymmetric (a
// per-event pseudo-count table). A prior is immutable once built;
// replacing one is a plain assignment.
type Prior[E Event] interface {
	// PseudoCount returns the prior's pseudo-count for ev. A symmetric
	// prior defines it for every possible event; an asymmetric prior
	// returns ErrNotFound for events it was not built with.
	PseudoCount(ev E) (float64, error)

	// TotalPseudoCount returns the cached total pseudo-count mass. O(1).
	TotalPseudoCount() float64

	// Clone returns a deep copy.
	Clone() Prior[E]

	encodeTo(w *wire.Writer) error
}

// Symmetric applies one shared pseudo-count to every event, including
// events never observed.
type Symmetric[E Event] struct {
	alpha    float64
	alphaSum float64
}

// NewSymmetric builds a symmetric prior with pseudo-count alpha over a
// vocabulary of n events. The total mass n*alpha is computed once here
// and cached; it is not recomputed against any later-observed
// vocabulary size.
func NewSymmetric[E Event](alpha float64, n uint64) Symmetric[E] {
	return Symmetric[E]{alpha: alpha, alphaSum: float64(n) * alpha}
}

// PseudoCount returns alpha for any event.
func (p Symmetric[E]) PseudoCount(E) (float64, error) {
	return p.alpha, nil
}

// TotalPseudoCount returns the cached n*alpha.
func (p Symmetric[E]) TotalPseudoCount() float64 {
	return p.alphaSum
}

// Alpha returns the shared pseudo-count.
func (p Symmetric[E]) Alpha() float64 {
	return p.alpha
}

// Clone returns a copy. Symmetric priors carry no owned state, so this
// is a value copy.
func (p Symmetric[E]) Clone() Prior[E] {
	return p
}

// Asymmetric holds an explicit pseudo-count per event. Events outside
// the table have no defined pseudo-count.
type Asymmetric[E Event] struct {
	weights  *collections.OrderedMap[E, float64]
	alphaSum float64
}

// NewAsymmetric builds an asymmetric prior from the given pairs,
// consumed once in order. Later pairs for the same event overwrite
// earlier ones in the table, but the total mass accumulates the raw
// sum over the whole sequence, duplicates included, so with duplicate
// events TotalPseudoCount can differ from the sum of the final table.
func NewAsymmetric[E Event](pairs []Weight[E]) *Asymmetric[E] {
	weights := collections.NewOrderedMap[E, float64](len(pairs))
	var sum float64
	for _, p := range pairs {
		weights.Set(p.Event, p.Weight)
		sum += p.Weight
	}
	return &Asymmetric[E]{weights: weights, alphaSum: sum}
}

// PseudoCount looks ev up in the table, returning ErrNotFound if absent.
func (p *Asymmetric[E]) PseudoCount(ev E) (float64, error) {
	w, ok := p.weights.Get(ev)
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "pseudo-count of %v", ev)
	}
	return w, nil
}

// TotalPseudoCount returns the cached sum of the supplied weights.
func (p *Asymmetric[E]) TotalPseudoCount() float64 {
	return p.alphaSum
}

// Len returns the number of events in the table.
func (p *Asymmetric[E]) Len() int {
	return p.weights.Len()
}

// Clone returns a deep copy with its own table.
func (p *Asymmetric[E]) Clone() Prior[E] {
	return &Asymmetric[E]{weights: p.weights.Clone(), alphaSum: p.alphaSum}
}
