package unigram

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLikelihood(t *testing.T) {
	tokens := []string{"this", "is", "a", "test"}
	m := Train(tokens, 10)

	// two of these tokens collide under spooky mod 10, so the hashed
	// counts are {1, 1, 2}; with alpha = 1/10 and total mass 4 + 1 the
	// per-token scores are log(1.1/5) and log(2.1/5)
	act := m.LogLikelihood(tokens)
	exp := 2*math.Log(1.1/5.0) + 2*math.Log(2.1/5.0)

	require.InDelta(t, exp, act, 1e-8)
}

func TestUnseenTokenMass(t *testing.T) {
	m := Train([]string{"alpha", "beta"}, 1000)

	// an unseen token keeps at least the symmetric prior mass
	// alpha/(total+1), and never exceeds a trained token's mass
	p := m.Probability("a-token-that-was-never-trained")
	require.GreaterOrEqual(t, p, (1.0/1000)/3.0)
	require.LessOrEqual(t, p, m.Probability("alpha"))
}

func TestRoundTrip(t *testing.T) {
	tokens := []string{"the", "quick", "brown", "fox", "the", "the"}
	m := Train(tokens, 101)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	loaded, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, m.VecLen(), loaded.VecLen())

	for _, tok := range append(tokens, "unseen") {
		require.InDelta(t, m.Probability(tok), loaded.Probability(tok), 1e-12)
	}
	require.InDelta(t, m.LogLikelihood(tokens), loaded.LogLikelihood(tokens), 1e-9)
}

func TestDecodeRejectsZeroVecLen(t *testing.T) {
	// a zero id-space size would divide by zero on every lookup
	_, err := Decode(bytes.NewReader([]byte{0}))
	require.Error(t, err)
}
