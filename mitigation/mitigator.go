package mitigation

import (
	"fmt"
	"sync"

	"github.com/go-faster/errors"
	"github.com/oqtopus-team/readout-mitigator/core"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

const PSEUDO_INVERSE_MITIGATION = "pseudo_inverse"
const MITIGATION_SETTING_KEY = "mitigation"

// PseudoInverseMitigator corrects readout errors with the linear method from
// IBM's qiskit textbook chapter on measurement error mitigation:
// https://qiskit.org/textbook/ch-quantum-hardware/measurement-error-mitigation.html
//
// Row i of the calibration matrix is the normalized outcome distribution
// observed after preparing basis state i, so A[i][k] is the empirical
// probability of observing state k given that state i was prepared. The
// stored operator is the plain inverse of that row-stochastic matrix, applied
// directly to observed count vectors. The textbook procedure does not
// transpose before inverting and neither does this implementation.
type PseudoInverseMitigator struct {
	qubitCount int
	dim        int

	mu       sync.RWMutex
	operator *mat.Dense // nil until BuildErrorMitigationMatrix succeeds
}

func NewPseudoInverseMitigator(qubitCount int) (*PseudoInverseMitigator, error) {
	if qubitCount < 1 {
		return nil, fmt.Errorf("qubit count(%d) must be greater than 0", qubitCount)
	}
	return &PseudoInverseMitigator{
		qubitCount: qubitCount,
		dim:        1 << qubitCount,
	}, nil
}

func (m *PseudoInverseMitigator) Setup(conf *core.Conf) error {
	qubitCount := conf.QubitCount
	if v, ok := core.GetComponentSetting(MITIGATION_SETTING_KEY); ok {
		if mp, ok := v.(map[string]interface{}); ok {
			if qc, ok := mp["qubit_count"].(int64); ok {
				qubitCount = int(qc)
			}
		}
	}
	if qubitCount < 1 {
		return fmt.Errorf("qubit count(%d) must be greater than 0", qubitCount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qubitCount = qubitCount
	m.dim = 1 << qubitCount
	m.operator = nil
	zap.L().Debug(fmt.Sprintf("set up pseudo inverse mitigator for %d qubits", qubitCount))
	return nil
}

func (m *PseudoInverseMitigator) QubitCount() int {
	return m.qubitCount
}

func (m *PseudoInverseMitigator) OperatorReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.operator != nil
}

func (m *PseudoInverseMitigator) BuildCalibrationCircuits() []*core.CircuitSpec {
	return CalibrationCircuits(m.qubitCount)
}

// BuildErrorMitigationMatrix builds the calibration matrix from one outcome
// mapping per basis state and stores its inverse as the mitigation operator.
// On any failure the operator is cleared so that MitigateErrors keeps
// reporting the not-built condition instead of using a stale matrix.
func (m *PseudoInverseMitigator) BuildErrorMitigationMatrix(calibrationCounts []core.Counts) error {
	a, err := m.buildCalibrationMatrix(calibrationCounts)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to build the calibration matrix/reason:%s", err))
		m.clearOperator()
		return err
	}
	var inverse mat.Dense
	if err := inverse.Inverse(a); err != nil {
		zap.L().Error(fmt.Sprintf("failed to invert the calibration matrix/reason:%s", err))
		m.clearOperator()
		return errors.Wrap(err, "calibration matrix is singular or ill-conditioned")
	}
	m.mu.Lock()
	m.operator = &inverse
	m.mu.Unlock()
	zap.L().Debug(fmt.Sprintf("built the %dx%d error mitigation matrix", m.dim, m.dim))
	return nil
}

func (m *PseudoInverseMitigator) buildCalibrationMatrix(calibrationCounts []core.Counts) (*mat.Dense, error) {
	if len(calibrationCounts) != m.dim {
		return nil, fmt.Errorf("got %d calibration results, need %d (one per basis state)",
			len(calibrationCounts), m.dim)
	}
	var verr error
	for i, counts := range calibrationCounts {
		if counts.TotalShots() == 0 {
			verr = multierr.Append(verr,
				fmt.Errorf("calibration run %d has zero total shots", i))
		}
	}
	if verr != nil {
		return nil, verr
	}
	a := mat.NewDense(m.dim, m.dim, nil)
	for i, counts := range calibrationCounts {
		vec := EncodeVector(counts, m.qubitCount)
		total := 0.0
		for _, v := range vec {
			total += v
		}
		for k, v := range vec {
			a.Set(i, k, v/total)
		}
	}
	return a, nil
}

func (m *PseudoInverseMitigator) clearOperator() {
	m.mu.Lock()
	m.operator = nil
	m.mu.Unlock()
}

// MitigateErrors applies the stored operator to one observed outcome-count
// mapping or dense count vector. The total of the returned mapping is not
// guaranteed to equal the observed total; linear inversion does not conserve
// probability mass once negative components are clamped, and the result is
// deliberately not renormalized.
func (m *PseudoInverseMitigator) MitigateErrors(observed core.Observation) (core.Counts, error) {
	m.mu.RLock()
	operator := m.operator
	m.mu.RUnlock()
	if operator == nil {
		return make(core.Counts), fmt.Errorf("error mitigation matrix is not built")
	}

	var vec core.CountVector
	switch {
	case observed.Counts != nil && observed.Vector != nil:
		return make(core.Counts), fmt.Errorf("invalid observation: both counts and vector are set")
	case observed.Counts != nil:
		vec = EncodeVector(observed.Counts, m.qubitCount)
	case observed.Vector != nil:
		if len(observed.Vector) != m.dim {
			return make(core.Counts), fmt.Errorf("observed vector has length %d, want %d",
				len(observed.Vector), m.dim)
		}
		vec = observed.Vector
	default:
		return make(core.Counts), fmt.Errorf("invalid observation: neither counts nor vector is set")
	}

	mitigated := mat.NewVecDense(m.dim, nil)
	mitigated.MulVec(operator, mat.NewVecDense(m.dim, vec))
	return DecodeCounts(mitigated.RawVector().Data, m.qubitCount), nil
}
