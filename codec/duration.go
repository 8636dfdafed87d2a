package codec

import (
	"time"

	"github.com/halvarsen/evolve/wire"
)

// WriteDuration appends d as u64 whole seconds followed by u32 nanoseconds.
func WriteDuration(w *wire.Writer, d time.Duration) {
	secs := d / time.Second
	nanos := d % time.Second

	w.WriteUint64(uint64(secs)) //nolint:gosec
	w.WriteUint32(uint32(nanos))
}

// ReadDuration reverses WriteDuration.
func ReadDuration(r *wire.Reader) (time.Duration, error) {
	secs, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}

	nanos, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}

	return time.Duration(secs)*time.Second + time.Duration(nanos), nil //nolint:gosec
}
