//go:build unit
// +build unit

package mitigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibrationCircuits(t *testing.T) {
	circuits := CalibrationCircuits(2)
	assert.Equal(t, 4, len(circuits))

	wantPrepares := [][]int{
		{},
		{0},
		{1},
		{0, 1},
	}
	for i, c := range circuits {
		assert.Equal(t, 2, c.QubitCount, "circuit %d", i)
		assert.True(t, c.MeasureAll, "circuit %d", i)
		assert.Equal(t, wantPrepares[i], c.PrepareOnes, "circuit %d", i)
	}
}

func TestCalibrationCircuitsSingleQubit(t *testing.T) {
	circuits := CalibrationCircuits(1)
	assert.Equal(t, 2, len(circuits))
	assert.Equal(t, []int{}, circuits[0].PrepareOnes)
	assert.Equal(t, []int{0}, circuits[1].PrepareOnes)
}

// Circuit i must prepare exactly the basis state whose bit string is
// BasisBitString(i, n). The matrix builder indexes rows by this agreement.
func TestCalibrationCircuitsMatchBitStrings(t *testing.T) {
	const n = 3
	circuits := CalibrationCircuits(n)
	for i, c := range circuits {
		bits := BasisBitString(i, n)
		for q := 0; q < n; q++ {
			prepared := false
			for _, p := range c.PrepareOnes {
				if p == q {
					prepared = true
				}
			}
			// string index n-1-q holds qubit q
			assert.Equal(t, bits[n-1-q] == '1', prepared,
				"circuit %d qubit %d", i, q)
		}
	}
}
