// Package unigram implements a smoothed unigram language model over
// hashed word ids. Words are hashed into a fixed-length id space, so
// models trained on different datasets stay comparable without a
// shared global vocabulary; collisions are accepted.
package unigram

import (
	"io"
	"math"

	spooky "github.com/dgryski/go-spooky"
	"github.com/pkg/errors"

	"github.com/probkit/dirmult/dirichlet"
	"github.com/probkit/dirmult/wire"
)

// Model is a unigram language model. Word counts live in a
// Dirichlet-smoothed multinomial under a symmetric prior with
// alpha = 1/vecLen over the whole id space, so unseen words keep a
// small probability mass.
type Model struct {
	dist   *dirichlet.Multinomial[uint64]
	vecLen uint64
}

// NewModel returns an empty model with the given id-space size.
func NewModel(vecLen uint64) *Model {
	prior := dirichlet.NewSymmetric[uint64](1/float64(vecLen), vecLen)
	return &Model{
		dist:   dirichlet.NewWithPrior[uint64](prior),
		vecLen: vecLen,
	}
}

// Train builds a model with the given id-space size from the training
// tokens.
func Train(tokens []string, vecLen uint64) *Model {
	m := NewModel(vecLen)
	for _, t := range tokens {
		m.Add(t)
	}
	return m
}

// Add counts one occurrence of token.
func (m *Model) Add(token string) {
	m.dist.Add(m.id(token), 1)
}

// Probability returns the smoothed probability of token.
func (m *Model) Probability(token string) float64 {
	// symmetric prior: cannot fail
	p, _ := m.dist.Probability(m.id(token))
	return p
}

// LogLikelihood returns the log likelihood of a sequence of words,
// i.e. p(W|model) = \prod p(w_1|model) p(w_2|model) ...
func (m *Model) LogLikelihood(ws []string) float64 {
	var score float64
	for _, w := range ws {
		score += math.Log(m.Probability(w))
	}
	return score
}

// VecLen returns the size of the hashed id space.
func (m *Model) VecLen() uint64 {
	return m.vecLen
}

func (m *Model) id(token string) uint64 {
	return spooky.Hash64([]byte(token)) % m.vecLen
}

// Encode writes the model to w: the id-space size, then the
// multinomial record.
func (m *Model) Encode(w io.Writer) error {
	bw := wire.NewWriter(w)
	if err := bw.Uvarint(m.vecLen); err != nil {
		return err
	}
	return m.dist.Encode(w)
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (*Model, error) {
	br := wire.NewReader(r)
	vecLen, err := br.Uvarint()
	if err != nil {
		return nil, errors.Wrap(err, "id-space size")
	}
	if vecLen == 0 {
		return nil, errors.New("unigram: zero id-space size")
	}
	m := NewModel(vecLen)
	if err := m.dist.Decode(br); err != nil {
		return nil, err
	}
	return m, nil
}
