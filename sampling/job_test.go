//go:build unit
// +build unit

package sampling

import (
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
		&SamplingJob{},
	)
	m.Run()
}

func setupForTest(t *testing.T) (*mitigation.PseudoInverseMitigator, *core.SystemComponents) {
	t.Helper()
	core.ResetSetting()
	m, err := mitigation.NewPseudoInverseMitigator(1)
	assert.Nil(t, err)
	conf := &core.Conf{
		QubitCount:        1,
		DeviceSettingPath: filepath.Join(t.TempDir(), "no_such_file.toml"),
	}
	s := core.SCWithMitigator(m, &backend.SimulatorBackend{}, conf)
	return m, s
}

func identityCalibration() []core.Counts {
	return []core.Counts{
		{"0": 1000},
		{"1": 1000},
	}
}

func samplingJob(t *testing.T, mitigationInfo string) core.Job {
	t.Helper()
	jd := core.NewJobData()
	jd.ID = uuid.NewString()
	jd.Shots = 100
	jd.Circuit = &core.CircuitSpec{QubitCount: 1, PrepareOnes: []int{0}, MeasureAll: true}
	jd.Status = core.READY
	jd.JobType = SAMPLING_JOB
	jd.MitigationInfo = mitigationInfo
	jc, err := core.NewJobContext()
	assert.Nil(t, err)
	j, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	return j
}

func TestSamplingJobWithMitigation(t *testing.T) {
	m, s := setupForTest(t)
	defer s.TearDown()
	assert.Nil(t, m.BuildErrorMitigationMatrix(identityCalibration()))

	j := samplingJob(t, `{"readout": "pseudo_inverse"}`)
	j.PreProcess()
	assert.False(t, j.IsFinished())
	j.Process()
	assert.Equal(t, core.SUCCEEDED, j.JobData().Status)
	assert.Equal(t, core.Counts{"1": 100}, j.JobData().Result.Counts)

	j.PostProcess()
	assert.Equal(t, core.SUCCEEDED, j.JobData().Status)
	assert.Equal(t, core.Counts{"1": 100}, j.JobData().Result.Counts)
	assert.Equal(t, core.Counts{"1": 100}, j.JobData().Result.RawCounts)

	sj, ok := j.(*SamplingJob)
	assert.True(t, ok)
	assert.True(t, sj.mitigationInfo.Mitigated)
}

func TestSamplingJobSkipsMitigation(t *testing.T) {
	_, s := setupForTest(t)
	defer s.TearDown()

	j := samplingJob(t, "")
	j.PreProcess()
	j.Process()
	j.PostProcess()

	assert.Equal(t, core.SUCCEEDED, j.JobData().Status)
	assert.Equal(t, core.Counts{"1": 100}, j.JobData().Result.Counts)
	assert.Nil(t, j.JobData().Result.RawCounts)
}

func TestSamplingJobMitigationWithoutOperator(t *testing.T) {
	_, s := setupForTest(t)
	defer s.TearDown()

	j := samplingJob(t, `{"readout": "pseudo_inverse"}`)
	j.PreProcess()
	j.Process()
	assert.Equal(t, core.SUCCEEDED, j.JobData().Status)

	j.PostProcess()
	assert.Equal(t, core.FAILED, j.JobData().Status)
	// counts stay uncorrected so the caller can still read the raw result
	assert.Equal(t, core.Counts{"1": 100}, j.JobData().Result.Counts)
}

func TestSamplingJobWithoutCircuit(t *testing.T) {
	_, s := setupForTest(t)
	defer s.TearDown()

	jd := core.NewJobData()
	jd.ID = uuid.NewString()
	jd.Shots = 100
	jd.Status = core.READY
	jd.JobType = SAMPLING_JOB
	jc, _ := core.NewJobContext()
	j, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)

	j.PreProcess()
	assert.Equal(t, core.FAILED, j.JobData().Status)
	assert.Contains(t, j.JobData().Result.Message, "no circuit specification")
}

func TestSamplingJobDuplicateID(t *testing.T) {
	_, s := setupForTest(t)
	defer s.TearDown()

	first := samplingJob(t, "")
	first.PreProcess()
	assert.False(t, first.IsFinished())

	jd := core.NewJobData()
	jd.ID = first.JobData().ID
	jd.Shots = 100
	jd.Circuit = &core.CircuitSpec{QubitCount: 1, MeasureAll: true}
	jd.Status = core.READY
	jd.JobType = SAMPLING_JOB
	jc, _ := core.NewJobContext()
	second, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	second.PreProcess()

	assert.Equal(t, core.FAILED, second.JobData().Status)
	assert.Contains(t, second.JobData().Result.Message, "already used")
}
