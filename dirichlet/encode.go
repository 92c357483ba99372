package dirichlet

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/probkit/dirmult/collections"
	"github.com/probkit/dirmult/wire"
)

// Prior record layout: a uvarint variant tag, then the variant body.
// Symmetric stores alpha and an implied vocabulary size
// round(alphaSum/alpha); the size is lossy when alpha is zero.
// Asymmetric stores the table as an entry count followed by
// (event, weight) pairs in table order.
const (
	tagSymmetric  = 0
	tagAsymmetric = 1
)

func (p Symmetric[E]) encodeTo(w *wire.Writer) error {
	if err := w.Uvarint(tagSymmetric); err != nil {
		return err
	}
	if err := w.Float64(p.alpha); err != nil {
		return err
	}
	var n uint64
	if p.alpha != 0 {
		n = uint64(math.Round(p.alphaSum / p.alpha))
	}
	return w.Uvarint(n)
}

func (p *Asymmetric[E]) encodeTo(w *wire.Writer) error {
	if err := w.Uvarint(tagAsymmetric); err != nil {
		return err
	}
	if err := w.Uvarint(uint64(p.weights.Len())); err != nil {
		return err
	}
	var err error
	p.weights.Range(func(ev E, wt float64) bool {
		if err = encodeEvent(w, ev); err != nil {
			return false
		}
		err = w.Float64(wt)
		return err == nil
	})
	return err
}

// EncodePrior writes p to w in the binary prior format.
func EncodePrior[E Event](w io.Writer, p Prior[E]) error {
	return p.encodeTo(wire.NewWriter(w))
}

// LoadPrior replaces *p with the prior decoded from r. A stream with
// no bytes where the leading tag would be is a defined no-op: *p is
// left unchanged, representing "no persisted prior". A stream that
// ends after the tag surfaces ErrTruncated, and *p is unchanged.
func LoadPrior[E Event](r io.Reader, p *Prior[E]) error {
	return loadPrior(wire.NewReader(r), p)
}

func loadPrior[E Event](br *wire.Reader, p *Prior[E]) error {
	tag, err := br.Uvarint()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return asTruncated(err, "prior tag")
	}
	decoded, err := decodePriorBody[E](br, tag)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func decodePriorBody[E Event](br *wire.Reader, tag uint64) (Prior[E], error) {
	switch tag {
	case tagSymmetric:
		alpha, err := br.Float64()
		if err != nil {
			return nil, asTruncated(err, "symmetric alpha")
		}
		n, err := br.Uvarint()
		if err != nil {
			return nil, asTruncated(err, "symmetric vocabulary size")
		}
		return NewSymmetric[E](alpha, n), nil

	case tagAsymmetric:
		n, err := br.Uvarint()
		if err != nil {
			return nil, asTruncated(err, "asymmetric entry count")
		}
		weights := collections.NewOrderedMap[E, float64](int(n))
		var sum float64
		for i := uint64(0); i < n; i++ {
			ev, err := decodeEvent[E](br)
			if err != nil {
				return nil, asTruncated(err, "asymmetric event")
			}
			wt, err := br.Float64()
			if err != nil {
				return nil, asTruncated(err, "asymmetric weight")
			}
			weights.Set(ev, wt)
			sum += wt
		}
		return &Asymmetric[E]{weights: weights, alphaSum: sum}, nil

	default:
		return nil, errors.Errorf("dirichlet: unknown prior tag %d", tag)
	}
}

// Encode writes the multinomial to w: total, entry count, the
// (event, count) pairs in stable order, then the nested prior record.
func (m *Multinomial[E]) Encode(w io.Writer) error {
	bw := wire.NewWriter(w)
	if err := bw.Float64(m.total); err != nil {
		return err
	}
	if err := bw.Uvarint(uint64(m.counts.Len())); err != nil {
		return err
	}
	var err error
	m.counts.Range(func(ev E, c float64) bool {
		if err = encodeEvent(bw, ev); err != nil {
			return false
		}
		err = bw.Float64(c)
		return err == nil
	})
	if err != nil {
		return err
	}
	return m.prior.encodeTo(bw)
}

// Decode replaces the multinomial's state with the record on r.
// Existing counts are cleared first; a stream with no bytes where the
// total would be is a defined no-op that leaves the instance cleared
// with its prior intact. The counts are decoded into a temporary
// table that is swapped in only once the whole record (including the
// nested prior) has been consumed; a failure partway leaves the
// instance cleared. Truncation inside the record surfaces
// ErrTruncated.
func (m *Multinomial[E]) Decode(r io.Reader) error {
	br := wire.NewReader(r)

	m.Clear()

	total, err := br.Float64()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return asTruncated(err, "total")
	}

	n, err := br.Uvarint()
	if err != nil {
		return asTruncated(err, "entry count")
	}

	counts := collections.NewOrderedMap[E, float64](int(n))
	for i := uint64(0); i < n; i++ {
		ev, err := decodeEvent[E](br)
		if err != nil {
			return asTruncated(err, "event")
		}
		c, err := br.Float64()
		if err != nil {
			return asTruncated(err, "count")
		}
		counts.Set(ev, c)
	}

	prior := m.prior
	if err := loadPrior(br, &prior); err != nil {
		return err
	}

	m.counts = counts
	m.total = total
	m.prior = prior
	return nil
}

func asTruncated(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, what)
	}
	return errors.Wrap(err, what)
}
