package mitigation

import (
	"fmt"
	"math"

	"github.com/oqtopus-team/readout-mitigator/core"
)

// BasisBitString returns the bit string of a basis-state index, zero-padded
// to qubitCount characters. Bit k, counted from the least significant end,
// corresponds to qubit k. The circuit generator, the codec and the matrix
// builder all rely on this ordering; row i of the calibration matrix is only
// meaningful if every component agrees on it.
func BasisBitString(index, qubitCount int) string {
	return fmt.Sprintf("%0*b", qubitCount, index)
}

// EncodeVector converts a sparse outcome-count mapping into a dense vector of
// length 2^qubitCount. Position i holds the count of basis state i; bit
// strings missing from the mapping mean zero count, not an error.
func EncodeVector(counts core.Counts, qubitCount int) core.CountVector {
	dim := 1 << qubitCount
	vec := make(core.CountVector, dim)
	for i := 0; i < dim; i++ {
		if c, ok := counts[BasisBitString(i, qubitCount)]; ok {
			vec[i] = float64(c)
		}
	}
	return vec
}

// DecodeCounts converts a dense count vector back into the sparse mapping.
// Negative components are an artifact of applying the inverted calibration
// matrix to noisy input and are clamped to zero; entries that end up at zero
// are omitted, matching the input convention.
func DecodeCounts(vec core.CountVector, qubitCount int) core.Counts {
	counts := make(core.Counts)
	for i, v := range vec {
		rounded := int64(math.Round(v))
		if rounded <= 0 {
			continue
		}
		counts[BasisBitString(i, qubitCount)] = uint32(rounded)
	}
	return counts
}
