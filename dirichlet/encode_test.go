package dirichlet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type wordID uint32

func requirePseudo[E Event](t *testing.T, p Prior[E], ev E, want float64) {
	t.Helper()
	c, err := p.PseudoCount(ev)
	require.NoError(t, err)
	require.InDelta(t, want, c, 1e-12)
}

func TestSymmetricPriorRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePrior[string](&buf, NewSymmetric[string](0.1, 3)))

	loaded := Prior[string](NewSymmetric[string](99, 99))
	require.NoError(t, LoadPrior(&buf, &loaded))

	requirePseudo(t, loaded, "anything", 0.1)
	require.InDelta(t, 0.3, loaded.TotalPseudoCount(), 1e-12)
}

func TestSymmetricZeroAlphaRoundTrip(t *testing.T) {
	// with alpha == 0 the implied vocabulary size is lossy, but the
	// total mass n*0 == 0 survives either way
	var buf bytes.Buffer
	require.NoError(t, EncodePrior[string](&buf, NewSymmetric[string](0, 17)))

	loaded := Prior[string](NewSymmetric[string](99, 99))
	require.NoError(t, LoadPrior(&buf, &loaded))

	requirePseudo(t, loaded, "x", 0)
	require.Equal(t, 0.0, loaded.TotalPseudoCount())
}

func TestAsymmetricPriorRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	orig := NewAsymmetric([]Weight[string]{
		{Event: "x", Weight: 0.5},
		{Event: "y", Weight: 1.5},
	})
	require.NoError(t, EncodePrior[string](&buf, orig))

	loaded := Prior[string](NewSymmetric[string](0, 0))
	require.NoError(t, LoadPrior(&buf, &loaded))

	requirePseudo(t, loaded, "x", 0.5)
	requirePseudo(t, loaded, "y", 1.5)
	require.InDelta(t, 2.0, loaded.TotalPseudoCount(), 1e-12)
	_, err := loaded.PseudoCount("z")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestNumericEventRoundTrip(t *testing.T) {
	// named unsigned event type
	m := NewWithPrior[wordID](NewAsymmetric([]Weight[wordID]{
		{Event: 7, Weight: 0.5},
		{Event: 300, Weight: 1.0},
	}))
	m.Add(7, 2.0)
	m.Add(300, 4.0)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	loaded := New[wordID]()
	require.NoError(t, loaded.Decode(&buf))

	c, err := loaded.Count(7)
	require.NoError(t, err)
	require.InDelta(t, 2.5, c, 1e-9)
	c, err = loaded.Count(300)
	require.NoError(t, err)
	require.InDelta(t, 5.0, c, 1e-9)

	// signed event type with negative ids
	n := New[int]()
	n.Add(-5, 1.5)
	n.Add(12, 2.0)

	buf.Reset()
	require.NoError(t, n.Encode(&buf))
	loadedInt := New[int]()
	require.NoError(t, loadedInt.Decode(&buf))
	c, err = loadedInt.Count(-5)
	require.NoError(t, err)
	require.InDelta(t, 1.5, c, 1e-9)
}

func TestMultinomialRoundTrip(t *testing.T) {
	priors := map[string]Prior[string]{
		"symmetric":  NewSymmetric[string](0.1, 3),
		"asymmetric": NewAsymmetric([]Weight[string]{{Event: "a", Weight: 0.5}, {Event: "b", Weight: 1.5}}),
	}

	for name, prior := range priors {
		t.Run(name, func(t *testing.T) {
			m := NewWithPrior[string](prior)
			m.Add("a", 2.0)
			m.Add("b", 1.0)

			var buf bytes.Buffer
			require.NoError(t, m.Encode(&buf))

			loaded := New[string]()
			require.NoError(t, loaded.Decode(&buf))

			require.Equal(t, m.Len(), loaded.Len())
			require.InDelta(t, m.Total(), loaded.Total(), 1e-9)

			var want, got []string
			m.EachSeen(func(ev string, _ float64) bool { want = append(want, ev); return true })
			loaded.EachSeen(func(ev string, _ float64) bool { got = append(got, ev); return true })
			require.Equal(t, want, got)

			for _, ev := range want {
				wc, err := m.Count(ev)
				require.NoError(t, err)
				lc, err := loaded.Count(ev)
				require.NoError(t, err)
				require.InDelta(t, wc, lc, 1e-9)
			}
		})
	}
}

func TestDecodeEmptyStream(t *testing.T) {
	m := NewWithPrior[string](NewSymmetric[string](0.1, 3))
	m.Add("a", 2.0)

	// an empty stream is a defined no-op load: counts cleared, prior kept
	require.NoError(t, m.Decode(bytes.NewReader(nil)))
	require.Equal(t, 0, m.Len())
	require.InDelta(t, 0.3, m.Total(), 1e-9)
}

func TestLoadPriorEmptyStream(t *testing.T) {
	p := Prior[string](NewSymmetric[string](0.1, 3))
	require.NoError(t, LoadPrior(bytes.NewReader(nil), &p))
	requirePseudo(t, p, "x", 0.1)
	require.InDelta(t, 0.3, p.TotalPseudoCount(), 1e-12)
}

func TestDecodeMissingNestedPriorKeepsOwn(t *testing.T) {
	m := NewWithPrior[string](NewSymmetric[string](0.1, 3))
	m.Add("a", 2.0)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	// strip the trailing prior record: tag (1 byte) + alpha (8 bytes) + n (1 byte)
	data := buf.Bytes()
	data = data[:len(data)-10]

	loaded := NewWithPrior[string](NewSymmetric[string](0.5, 2))
	require.NoError(t, loaded.Decode(bytes.NewReader(data)))

	// counts restored, own prior retained
	require.Equal(t, 1, loaded.Len())
	c, err := loaded.Count("a")
	require.NoError(t, err)
	require.InDelta(t, 2.5, c, 1e-9)
}

func TestDecodeTruncated(t *testing.T) {
	m := NewWithPrior[string](NewAsymmetric([]Weight[string]{{Event: "x", Weight: 0.5}}))
	m.Add("alpha", 1.0)
	m.Add("beta", 2.0)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	data := buf.Bytes()

	// cut mid-record: inside the count entries
	loaded := New[string]()
	err := loaded.Decode(bytes.NewReader(data[:12]))
	require.True(t, errors.Is(err, ErrTruncated))

	// cut inside the nested prior body, after its tag
	loadedPrior := Prior[string](NewSymmetric[string](0, 0))
	var pbuf bytes.Buffer
	require.NoError(t, EncodePrior[string](&pbuf, NewSymmetric[string](0.1, 3)))
	err = LoadPrior(bytes.NewReader(pbuf.Bytes()[:4]), &loadedPrior)
	require.True(t, errors.Is(err, ErrTruncated))
}
