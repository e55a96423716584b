package mitigation

import (
	"fmt"

	"github.com/oqtopus-team/readout-mitigator/core"
	"go.uber.org/zap"
)

// PseudoInverseMitigation corrects the counts of a processed job in place.
// The raw counts are kept in Result.RawCounts. On any failure the job is
// marked FAILED and the counts are left untouched, so the caller can still
// fall back to the uncorrected result.
func PseudoInverseMitigation(jd *core.JobData) {
	numOfQubits, err := getNumOfQubits(jd.Result.Counts)
	if err != nil {
		zap.L().Error("failed to get number of qubits/reason: ", zap.Error(err))
		jd.Status = core.FAILED
		return
	}

	c := core.GetSystemComponents().Container
	err = c.Invoke(
		func(m core.MitigationManager) error {
			if numOfQubits != m.QubitCount() {
				return fmt.Errorf("counts have %d-qubit keys but the mitigation engine handles %d qubits",
					numOfQubits, m.QubitCount())
			}
			octs := jd.Result.Counts
			zap.L().Debug(fmt.Sprintf("original counts: %v", octs))
			mitigated, merr := m.MitigateErrors(core.NewCountsObservation(octs))
			if merr != nil {
				return merr
			}
			zap.L().Debug(fmt.Sprintf("mitigated counts: %v", mitigated))
			jd.Result.RawCounts = octs
			jd.Result.Counts = mitigated
			return nil
		})
	if err != nil {
		zap.L().Error("failed to mitigate readout errors/reason: ", zap.Error(err))
		jd.Status = core.FAILED
		return
	}
	jd.Status = core.SUCCEEDED
	zap.L().Debug(fmt.Sprintf("MitigationJob Result: %v", jd.Result))
}

func getNumOfQubits(counts core.Counts) (int, error) {
	if len(counts) == 0 {
		return 0, fmt.Errorf("counts is empty")
	}
	candidateNum := 0
	for k := range counts {
		if candidateNum == 0 {
			candidateNum = len(k)
		} else {
			if candidateNum != len(k) {
				return 0, fmt.Errorf("different length of keys in counts")
			}
		}
	}
	return candidateNum, nil
}
