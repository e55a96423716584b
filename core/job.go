package core

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"
)

var ErrorJobIDConflict = errors.New("jobID is already used")
var jobManager *JobManager

const NORMAL_JOB = "normal"

type Job interface {
	// Job Control
	New(*JobData, *JobContext) Job
	PreProcess()
	Process()
	PostProcess()
	IsFinished() bool

	// Data Access
	JobData() *JobData // Get mutable JobData
	JobType() string
	JobContext() *JobContext
	Clone() Job
}

type JobContext struct {
	*Channels
}

func NewJobContext() (*JobContext, error) {
	s := GetSystemComponents()
	if s == nil {
		return nil, fmt.Errorf("system components is not initialized")
	}
	c := s.Channels
	if c == nil {
		return nil, fmt.Errorf("channels is not initialized")
	}
	return &JobContext{
		Channels: GetSystemComponents().Channels,
	}, nil
}

type JobParam struct {
	JobID          string
	Circuit        *CircuitSpec
	Shots          int
	MitigationInfo string
	JobType        string
}

// NormalJob runs a circuit on the backend without any post-processing.
type NormalJob struct {
	jobData    *JobData
	jobContext *JobContext
}

func (j *NormalJob) New(jd *JobData, jc *JobContext) Job {
	return &NormalJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *NormalJob) PreProcess() {
	return
}

func (j *NormalJob) Process() {
	c := GetSystemComponents().Container
	err := c.Invoke(
		func(b BackendManager) error {
			return b.Send(j)
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to send a job(%s) to the backend. Reason:%s", j.JobData().ID, err.Error()))
		j.JobData().Status = FAILED
	}
	zap.L().Debug(fmt.Sprintf("finished to process a job(%s)/status:%s", j.JobData().ID, j.JobData().Status))
}

func (j *NormalJob) PostProcess() {
	return
}

func (j *NormalJob) IsFinished() bool {
	return j.JobData().Status == SUCCEEDED || j.JobData().Status == FAILED
}

func (j *NormalJob) JobData() *JobData {
	return j.jobData
}

func (j *NormalJob) JobType() string {
	return NORMAL_JOB
}

func (j *NormalJob) JobContext() *JobContext {
	return j.jobContext
}

func (j *NormalJob) Clone() Job {
	cloned := &NormalJob{
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
	}
	return cloned
}

func GetJob(id string) (job Job) {
	job = nil
	c := GetSystemComponents().Container
	err := c.Invoke(
		func(d DBManager) error {
			var getErr error
			job, getErr = d.Get(id)
			return getErr
		})
	if err != nil {
		zap.L().Info(fmt.Sprintf("failed to find a job(%s)", id))
		return nil
	}
	return job
}

func DeleteJob(id string) bool {
	c := GetSystemComponents().Container
	err := c.Invoke(
		func(d DBManager) error {
			return d.Delete(id)
		})
	if err != nil {
		zap.L().Info(fmt.Sprintf("failed to delete a job(%s)", id))
		return false
	}
	return true
}

// factory pattern
type JobManager struct {
	acceptableJobs []Job //empty jobs
}

func (j *JobManager) RegisterJob(jobs ...Job) error {
	for _, job := range jobs {
		// check if job is already registered
		for _, t := range j.acceptableJobs {
			if reflect.TypeOf(t) == reflect.TypeOf(job) {
				return fmt.Errorf("job:%s is already registered", job.JobType())
			}

		}
		zap.L().Debug(fmt.Sprintf("registering job type %s", job.JobType()))
		j.acceptableJobs = append(j.acceptableJobs, job)
	}
	return nil
}

func (j *JobManager) AcceptableJobTypes() []string {
	types := []string{}
	for _, job := range j.acceptableJobs {
		types = append(types, job.JobType())
	}
	return types
}

func (j *JobManager) NewJobWithValidation(param *JobParam, jc *JobContext) (Job, error) {
	if param.JobType == "" { // default job type
		param.JobType = NORMAL_JOB
	}
	if err := validateJobParam(param); err != nil {
		zap.L().Info(fmt.Sprintf("failed to validate job param. Reason:%s", err.Error()))
		return nil, err
	}
	return j.NewJob(param, jc)
}

func (j *JobManager) NewJob(param *JobParam, jc *JobContext) (Job, error) {
	jd := NewJobData()
	jd.ID = param.JobID
	jd.Circuit = param.Circuit
	jd.Shots = param.Shots
	jd.MitigationInfo = param.MitigationInfo
	jd.JobType = param.JobType
	return j.NewJobFromJobData(jd, jc)
}

func (j *JobManager) NewJobFromJobDataWithValidation(jd *JobData, jc *JobContext) (Job, error) {
	if jd.JobType == "" { // default job type
		jd.JobType = NORMAL_JOB
	}
	p := &JobParam{
		JobID:          jd.ID,
		Circuit:        jd.Circuit,
		Shots:          jd.Shots,
		MitigationInfo: jd.MitigationInfo,
		JobType:        jd.JobType,
	}
	if err := validateJobParam(p); err != nil {
		zap.L().Info(fmt.Sprintf("failed to validate job data. Reason:%s", err.Error()))
		return nil, err
	}
	return j.NewJobFromJobData(jd, jc)
}

func (j *JobManager) NewJobFromJobData(jd *JobData, jc *JobContext) (Job, error) {
	if jd.JobType == "" { // default job type
		jd.JobType = NORMAL_JOB
	}
	zap.L().Debug(fmt.Sprintf("creating a job from job data. Job ID:%s, Job Type:%s", jd.ID, jd.JobType))
	for _, aj := range j.acceptableJobs {
		zap.L().Debug(fmt.Sprintf("checking job type %s", aj.JobType()))
		if aj.JobType() == jd.JobType {
			// create a new job instance
			t := reflect.TypeOf(aj)
			newInstance := reflect.New(t).Elem().Interface()
			job := newInstance.(Job).New(jd, jc)
			return job, nil
		}
	}
	return nil, fmt.Errorf("job type %s is not registered", jd.JobType)
}

func validateJobParam(p *JobParam) (err error) {
	err = nil
	if p.JobID == "" {
		return fmt.Errorf("jobID is empty")
	}
	if p.Shots <= 0 {
		msg := fmt.Sprintf("shots(%d) must be greater than 0", p.Shots)
		zap.L().Info(msg + fmt.Sprintf("/jobID:%s", p.JobID))
		return fmt.Errorf(msg)
	}
	maxShots := GetSystemComponents().GetDeviceInfo().MaxShots
	if p.Shots > maxShots {
		msg := fmt.Sprintf("shots(%d) is over the limit(%d)",
			p.Shots, maxShots)
		zap.L().Info(msg + fmt.Sprintf("/jobID:%s", p.JobID))
		return fmt.Errorf(msg)
	}
	if p.Circuit != nil {
		maxQubits := GetSystemComponents().GetDeviceInfo().MaxQubits
		if p.Circuit.QubitCount > maxQubits {
			msg := fmt.Sprintf("circuit has too many qubits(%d). The device only has %d qubits",
				p.Circuit.QubitCount, maxQubits)
			zap.L().Info(msg + fmt.Sprintf("/jobID:%s", p.JobID))
			return fmt.Errorf(msg)
		}
	}
	return
}

func NewJobManager(jobs ...Job) (*JobManager, error) {
	jm := &JobManager{}
	for _, job := range jobs {
		zap.L().Debug(fmt.Sprintf("registering job type %s", job.JobType()))
		err := jm.RegisterJob(job)
		if err != nil {
			return nil, err
		}
	}
	jobManager = jm
	return jm, nil
}

func GetJobManager() *JobManager {
	return jobManager
}

func SetFailureWithError(j Job, err error) (msg string) {
	jd := j.JobData()
	return SetFailureWithErrorToJobData(jd, err)
}

func SetFailureWithErrorToJobData(jd *JobData, err error) (msg string) {
	msg = err.Error()
	jd.Result.Message = msg
	jd.Status = FAILED
	jd.Ended = strfmt.DateTime(time.Now())
	return msg
}
