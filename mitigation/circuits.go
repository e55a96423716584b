package mitigation

import (
	"github.com/oqtopus-team/readout-mitigator/core"
)

// CalibrationCircuits returns one circuit specification per computational
// basis state i in [0, 2^qubitCount), in index order. Circuit i prepares |1>
// on exactly the qubits whose bit is set in i and measures every qubit.
func CalibrationCircuits(qubitCount int) []*core.CircuitSpec {
	circuits := make([]*core.CircuitSpec, 0, 1<<qubitCount)
	for i := 0; i < 1<<qubitCount; i++ {
		prepare := []int{}
		for k := 0; k < qubitCount; k++ {
			if i>>k&1 == 1 {
				prepare = append(prepare, k)
			}
		}
		circuits = append(circuits, &core.CircuitSpec{
			QubitCount:  qubitCount,
			PrepareOnes: prepare,
			MeasureAll:  true,
		})
	}
	return circuits
}
