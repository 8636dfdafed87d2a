package codec

import (
	"github.com/halvarsen/evolve/wire"
)

// pair is the k/v element the map framing writes through WriteSequence; it
// stays package-private since callers only ever see WriteMap/ReadMap.
type pair[K, V any] struct {
	Key K
	Val V
}

// WriteMap appends m as a framed sequence of key-value pairs (§4.C), using
// the same known-length iterator framing as WriteSequence.
func WriteMap[K comparable, V any](w *wire.Writer, m map[K]V, encodeKey func(w *wire.Writer, k K), encodeVal func(w *wire.Writer, v V)) error {
	pairs := make([]pair[K, V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, pair[K, V]{Key: k, Val: v})
	}

	return WriteSequence(w, pairs, func(w *wire.Writer, p pair[K, V]) {
		encodeKey(w, p.Key)
		encodeVal(w, p.Val)
	})
}

// ReadMap reverses WriteMap, accepting either of WriteSequence's framings.
func ReadMap[K comparable, V any](r *wire.Reader, decodeKey func(r *wire.Reader) (K, error), decodeVal func(r *wire.Reader) (V, error)) (map[K]V, error) {
	pairs, err := ReadSequence(r, func(r *wire.Reader) (pair[K, V], error) {
		k, err := decodeKey(r)
		if err != nil {
			return pair[K, V]{}, err
		}

		v, err := decodeVal(r)
		if err != nil {
			return pair[K, V]{}, err
		}

		return pair[K, V]{Key: k, Val: v}, nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[K]V, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Val
	}

	return out, nil
}
