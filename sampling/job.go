package sampling

import (
	"fmt"

	"github.com/oqtopus-team/readout-mitigator/core"
	"github.com/oqtopus-team/readout-mitigator/mitigation"
	"go.uber.org/zap"
)

const SAMPLING_JOB = "sampling"

// SamplingJob executes an arbitrary circuit specification and, when the job's
// MitigationInfo asks for it, corrects the observed counts with the readout
// mitigation engine in PostProcess.
type SamplingJob struct {
	jobData        *core.JobData
	jobContext     *core.JobContext
	mitigationInfo *mitigation.MitigationInfo
}

func (j *SamplingJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	return &SamplingJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *SamplingJob) PreProcess() {
	if err := j.preProcessImpl(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to pre-process a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
		return
	}
	j.setMitigationInfo()
	return
}

func (j *SamplingJob) preProcessImpl() (err error) {
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
	if jd.Circuit == nil {
		err = fmt.Errorf("no circuit specification in a job(%s)", jd.ID)
		return
	}
	_ = container.Invoke(
		func(d core.DBManager) error {
			d.AddToInnerJobIDSet(jd.ID)
			return nil
		})
	return
}

func (j *SamplingJob) setMitigationInfo() {
	j.mitigationInfo = mitigation.NewMitigationInfoFromJobData(j.JobData())
}

func (j *SamplingJob) Process() {
	c := core.GetSystemComponents().Container
	err := c.Invoke(
		func(b core.BackendManager) error {
			return b.Send(j)
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to send a job(%s) to the backend. Reason:%s", j.JobData().ID, err.Error()))
		j.JobData().Status = core.FAILED
	}
	zap.L().Debug(fmt.Sprintf("finished to process a job(%s)/status:%s", j.JobData().ID, j.JobData().Status))
}

func (j *SamplingJob) PostProcess() {
	if j.mitigationInfo == nil || !j.mitigationInfo.NeedToBeMitigated {
		zap.L().Debug(fmt.Sprintf("skip readout mitigation for a job(%s)", j.JobData().ID))
		return
	}
	zap.L().Debug(fmt.Sprintf("start to do pseudo inverse mitigation for a job(%s)", j.JobData().ID))
	mitigation.PseudoInverseMitigation(j.JobData())
	j.mitigationInfo.Mitigated = true
	return
}

func (j *SamplingJob) IsFinished() bool {
	return j.JobData().Status == core.SUCCEEDED || j.JobData().Status == core.FAILED
}

func (j *SamplingJob) JobData() *core.JobData {
	return j.jobData
}

func (j *SamplingJob) JobType() string {
	return SAMPLING_JOB
}

func (j *SamplingJob) JobContext() *core.JobContext {
	return j.jobContext
}

func (j *SamplingJob) Clone() core.Job {
	cloned := &SamplingJob{
		jobData:        j.jobData.Clone(),
		jobContext:     j.jobContext,
		mitigationInfo: j.mitigationInfo,
	}
	return cloned
}
