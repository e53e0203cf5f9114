package resample

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// NewRNG returns a deterministic random source for the given seed.
// Identical seeds yield bit-for-bit identical simulation traces, which
// golden tests depend on. Use frand.New() (the engine default) when
// reproducibility does not matter.
func NewRNG(seed uint64) *frand.RNG {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return frand.NewCustom(s[:], 1024, 12)
}
