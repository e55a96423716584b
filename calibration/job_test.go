//go:build unit
// +build unit

package calibration

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/oqtopus-team/readout-mitigator/backend"
	"github.com/oqtopus-team/readout-mitigator/core"
	"github.com/oqtopus-team/readout-mitigator/mitigation"
	"github.com/stretchr/testify/assert"
)

var jm *core.JobManager

func TestMain(m *testing.M) {
	jm, _ = core.NewJobManager(
		&CalibrationJob{},
	)
	m.Run()
}

func setupForTest(t *testing.T, qubitCount int, b core.BackendManager) (*mitigation.PseudoInverseMitigator, *core.SystemComponents) {
	t.Helper()
	core.ResetSetting()
	m, err := mitigation.NewPseudoInverseMitigator(qubitCount)
	assert.Nil(t, err)
	conf := &core.Conf{
		QubitCount:        qubitCount,
		DeviceSettingPath: filepath.Join(t.TempDir(), "no_such_file.toml"),
	}
	s := core.SCWithMitigator(m, b, conf)
	return m, s
}

func calibrationJob(t *testing.T, shots int) core.Job {
	t.Helper()
	jd := core.NewJobData()
	jd.ID = uuid.NewString()
	jd.Shots = shots
	jd.Status = core.READY
	jd.JobType = CALIBRATION_JOB
	jc, err := core.NewJobContext()
	assert.Nil(t, err)
	j, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	return j
}

func TestCalibrationJob(t *testing.T) {
	m, s := setupForTest(t, 2, &backend.SimulatorBackend{})
	defer s.TearDown()
	assert.False(t, m.OperatorReady())

	j := calibrationJob(t, 1000)
	j.PreProcess()
	assert.False(t, j.IsFinished())
	j.Process()

	assert.Equal(t, core.SUCCEEDED, j.JobData().Status)
	assert.True(t, m.OperatorReady())
	assert.Contains(t, j.JobData().Result.Message, "2 qubits")

	// a noiseless backend calibrates to the identity, so mitigation passes
	// counts through unchanged
	observed := core.Counts{"00": 10, "11": 90}
	got, err := m.MitigateErrors(core.NewCountsObservation(observed))
	assert.Nil(t, err)
	assert.Equal(t, observed, got)
}

func TestCalibrationJobDuplicateID(t *testing.T) {
	_, s := setupForTest(t, 1, &backend.SimulatorBackend{})
	defer s.TearDown()

	first := calibrationJob(t, 100)
	first.PreProcess()
	assert.False(t, first.IsFinished())

	jd := core.NewJobData()
	jd.ID = first.JobData().ID
	jd.Shots = 100
	jd.Status = core.READY
	jd.JobType = CALIBRATION_JOB
	jc, _ := core.NewJobContext()
	second, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	second.PreProcess()

	assert.Equal(t, core.FAILED, second.JobData().Status)
	assert.Contains(t, second.JobData().Result.Message, "already used")
}

type failRunBackend struct {
	core.UnimplementedBackend
}

func (failRunBackend) Run(spec *core.CircuitSpec, shots int) (core.Counts, error) {
	return nil, fmt.Errorf("backend is down")
}

func TestCalibrationJobBackendFailure(t *testing.T) {
	m, s := setupForTest(t, 1, &failRunBackend{})
	defer s.TearDown()

	j := calibrationJob(t, 100)
	j.PreProcess()
	j.Process()

	assert.Equal(t, core.FAILED, j.JobData().Status)
	assert.Contains(t, j.JobData().Result.Message, "failed to run calibration circuit")
	assert.False(t, m.OperatorReady())
}
