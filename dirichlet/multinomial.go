package dirichlet

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/probkit/dirmult/collections"
)

// Multinomial counts observed events and combines them with a
// Dirichlet prior to produce smoothed counts and probabilities.
//
// The running total always equals the sum of the entries in the count
// table; every mutator maintains it incrementally. Counts may go
// negative; no bounds are enforced.
type Multinomial[E Event] struct {
	counts *collections.OrderedMap[E, float64]
	total  float64
	prior  Prior[E]
}

// New returns an empty multinomial with a zero-weight symmetric prior.
func New[E Event]() *Multinomial[E] {
	return NewWithPrior[E](NewSymmetric[E](0, 0))
}

// NewWithPrior returns an empty multinomial smoothed by the given prior.
func NewWithPrior[E Event](p Prior[E]) *Multinomial[E] {
	return &Multinomial[E]{
		counts: collections.NewOrderedMap[E, float64](0),
		prior:  p,
	}
}

// Add adds weight to the observed count of ev. Negative weights are
// legal and simply reduce the count.
func (m *Multinomial[E]) Add(ev E, weight float64) {
	c, _ := m.counts.Get(ev)
	m.counts.Set(ev, c+weight)
	m.total += weight
}

// Sub subtracts weight from the observed count of ev.
func (m *Multinomial[E]) Sub(ev E, weight float64) {
	m.Add(ev, -weight)
}

// Count returns the smoothed count of ev: its observed count (zero if
// never observed) plus the prior's pseudo-count. An asymmetric prior
// that lacks ev surfaces ErrNotFound.
func (m *Multinomial[E]) Count(ev E) (float64, error) {
	pseudo, err := m.prior.PseudoCount(ev)
	if err != nil {
		return 0, err
	}
	c, _ := m.counts.Get(ev)
	return c + pseudo, nil
}

// Total returns the smoothed total: observed total plus the prior's
// total pseudo-count.
func (m *Multinomial[E]) Total() float64 {
	return m.total + m.prior.TotalPseudoCount()
}

// Probability returns the smoothed probability Count(ev)/Total().
// When Total() is zero the result is NaN or Inf; that is left to the
// caller, matching the unguarded count arithmetic elsewhere.
func (m *Multinomial[E]) Probability(ev E) (float64, error) {
	c, err := m.Count(ev)
	if err != nil {
		return 0, err
	}
	return c / m.Total(), nil
}

// Sample draws an event proportionally to its smoothed probability.
// It walks the observed events in their stable order, accumulating
// Probability, and returns the first event whose cumulative sum
// reaches the drawn threshold.
//
// Only previously-observed events can be drawn; events that exist
// solely in the prior's vocabulary are never returned, so this is an
// approximation of the full posterior predictive. ErrNoSample is
// returned if the cumulative sum never reaches the threshold.
func (m *Multinomial[E]) Sample(rng *rand.Rand) (E, error) {
	u := rng.Float64()

	var picked E
	var found bool
	var cum float64
	var iterErr error
	m.counts.Range(func(ev E, _ float64) bool {
		p, err := m.Probability(ev)
		if err != nil {
			iterErr = err
			return false
		}
		cum += p
		if cum >= u {
			picked = ev
			found = true
			return false
		}
		return true
	})
	if iterErr != nil {
		return picked, iterErr
	}
	if !found {
		return picked, errors.Wrapf(ErrNoSample, "cumulative probability %g below threshold %g", cum, u)
	}
	return picked, nil
}

// Merge folds other's observed counts and total into m. The receiver
// keeps its own prior; other's prior is ignored and other is left
// unmodified. The operation is deliberately asymmetric: the left
// operand wins.
func (m *Multinomial[E]) Merge(other *Multinomial[E]) {
	other.counts.Range(func(ev E, c float64) bool {
		cur, _ := m.counts.Get(ev)
		m.counts.Set(ev, cur+c)
		return true
	})
	m.total += other.total
}

// EachSeen calls cb for every event with an entry in the count table,
// in stable insertion order, until cb returns false. Entries whose
// count is exactly zero are still visited.
func (m *Multinomial[E]) EachSeen(cb func(ev E, count float64) bool) {
	m.counts.Range(cb)
}

// Len returns the number of distinct observed events.
func (m *Multinomial[E]) Len() int {
	return m.counts.Len()
}

// Clear empties the count table and resets the total. The prior is
// untouched, so Total() afterwards equals the prior's mass.
func (m *Multinomial[E]) Clear() {
	m.counts = collections.NewOrderedMap[E, float64](0)
	m.total = 0
}

// Prior returns the multinomial's prior.
func (m *Multinomial[E]) Prior() Prior[E] {
	return m.prior
}
