package calibration

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-openapi/strfmt"
	"github.com/oqtopus-team/readout-mitigator/core"
	"go.uber.org/zap"
)

const CALIBRATION_JOB = "calibration"

// CalibrationJob runs the full set of basis-state preparation circuits on the
// backend and rebuilds the engine's error mitigation matrix from the results.
// It carries no circuit of its own; the circuits come from the engine so that
// their count and ordering always match the engine's qubit count.
type CalibrationJob struct {
	jobData    *core.JobData
	jobContext *core.JobContext
}

func (j *CalibrationJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	return &CalibrationJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *CalibrationJob) PreProcess() {
	if err := j.preProcessImpl(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to pre-process a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
		return
	}
	return
}

func (j *CalibrationJob) preProcessImpl() (err error) {
	err = nil
	jd := j.JobData()
	container := core.GetSystemComponents().Container
	err = container.Invoke(
		func(d core.DBManager) error {
			if d.ExistInInnerJobIDSet(jd.ID) {
				return core.ErrorJobIDConflict
			}
			return nil
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to check the existence of a job(%s). Reason:%s",
			jd.ID, err.Error()))
		return
	}
	_ = container.Invoke(
		func(d core.DBManager) error {
			d.AddToInnerJobIDSet(jd.ID)
			return nil
		})
	return
}

func (j *CalibrationJob) Process() {
	c := core.GetSystemComponents().Container
	err := c.Invoke(
		func(b core.BackendManager, m core.MitigationManager) error {
			return runCalibration(j.JobData(), b, m)
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to calibrate in a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
	}
	zap.L().Debug(fmt.Sprintf("finished to process a job(%s)/status:%s", j.JobData().ID, j.JobData().Status))
}

func runCalibration(jd *core.JobData, b core.BackendManager, m core.MitigationManager) error {
	circuits := m.BuildCalibrationCircuits()
	zap.L().Info(fmt.Sprintf("running %d calibration circuits for job(%s) with %d shots each",
		len(circuits), jd.ID, jd.Shots))
	start := time.Now()
	results := make([]core.Counts, 0, len(circuits))
	for i, spec := range circuits {
		counts, err := b.Run(spec, jd.Shots)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to run calibration circuit %d", i))
		}
		zap.L().Debug(fmt.Sprintf("calibration circuit %d counts: %v", i, counts))
		results = append(results, counts)
	}
	if err := m.BuildErrorMitigationMatrix(results); err != nil {
		return err
	}
	jd.Result.ExecutionTime = time.Since(start)
	jd.Result.Message = fmt.Sprintf("built the error mitigation matrix for %d qubits", m.QubitCount())
	jd.Status = core.SUCCEEDED
	jd.Ended = strfmt.DateTime(time.Now())
	return nil
}

func (j *CalibrationJob) PostProcess() {
	return
}

func (j *CalibrationJob) IsFinished() bool {
	return j.JobData().Status == core.SUCCEEDED || j.JobData().Status == core.FAILED
}

func (j *CalibrationJob) JobData() *core.JobData {
	return j.jobData
}

func (j *CalibrationJob) JobType() string {
	return CALIBRATION_JOB
}

func (j *CalibrationJob) JobContext() *core.JobContext {
	return j.jobContext
}

func (j *CalibrationJob) Clone() core.Job {
	cloned := &CalibrationJob{
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
	}
	return cloned
}
