package core

import (
	"fmt"

	"go.uber.org/dig"
)

const MockMaxQubits int = 10
const MockMaxShots int = 10000

type UnimplementedJob struct {
	jobData    *JobData
	jobContext *JobContext
}

func (j *UnimplementedJob) New(jd *JobData, jc *JobContext) Job {
	return &UnimplementedJob{
		jobData:    jd,
		jobContext: jc,
	}
}

func (j *UnimplementedJob) PreProcess() {
	return
}

func (j *UnimplementedJob) Process() {
	return
}

func (j *UnimplementedJob) PostProcess() {
	return
}

func (j *UnimplementedJob) IsFinished() bool {
	return j.JobData().Status == SUCCEEDED || j.JobData().Status == FAILED
}

func (j *UnimplementedJob) JobData() *JobData {
	return j.jobData
}

func (j *UnimplementedJob) JobType() string {
	return j.jobData.JobType
}

func (j *UnimplementedJob) JobContext() *JobContext {
	return j.jobContext
}

func (j *UnimplementedJob) Clone() Job {
	cloned := &UnimplementedJob{
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
	}
	return cloned
}

type UnimplementedBackend struct{}

func (u *UnimplementedBackend) Setup(*Conf) error {
	return nil
}

func (u *UnimplementedBackend) Send(Job) error {
	return nil
}

func (u *UnimplementedBackend) Run(spec *CircuitSpec, shots int) (Counts, error) {
	return make(Counts), nil
}

func (u *UnimplementedBackend) GetDeviceInfo() *DeviceInfo {
	return &DeviceInfo{
		MaxQubits:    MockMaxQubits,
		MaxShots:     MockMaxShots,
		DeviceName:   "unimplementedBackend",
		ProviderName: "unimplementedProvider",
		Status:       Available,
	}
}

type successBackendForTest struct {
	UnimplementedBackend
}

func (successBackendForTest) Send(j Job) error {
	// TODO: fix this SRP violation
	j.JobData().Status = SUCCEEDED
	return nil
}

// Run reports the prepared basis state for every shot, so a calibration
// against this backend yields the identity response matrix.
func (successBackendForTest) Run(spec *CircuitSpec, shots int) (Counts, error) {
	ideal := make([]byte, spec.QubitCount)
	for i := range ideal {
		ideal[i] = '0'
	}
	for _, q := range spec.PrepareOnes {
		ideal[spec.QubitCount-q-1] = '1'
	}
	return Counts{string(ideal): uint32(shots)}, nil
}

type unimplementedDB struct {
	innerJobIDSet map[string]struct{}
}

func (u *unimplementedDB) Setup(DBChan, *Conf) error {
	u.innerJobIDSet = make(map[string]struct{})
	return nil
}
func (u *unimplementedDB) Insert(Job) error { return nil }
func (u *unimplementedDB) Get(JobID string) (Job, error) {
	return &NormalJob{}, nil
}
func (u *unimplementedDB) Update(Job) error    { return nil }
func (u *unimplementedDB) Delete(string) error { return nil }
func (u *unimplementedDB) AddToInnerJobIDSet(jobID string) {
	u.innerJobIDSet[jobID] = struct{}{}
}
func (u *unimplementedDB) RemoveFromInnerJobIDSet(jobID string) {
	delete(u.innerJobIDSet, jobID)
}
func (u *unimplementedDB) ExistInInnerJobIDSet(jobID string) bool {
	_, ok := u.innerJobIDSet[jobID]
	return ok
}

type successDBForTest struct {
	unimplementedDB
}

func (successDBForTest) Get(jobID string) (Job, error) {
	return &NormalJob{
		jobData: &JobData{
			ID:     jobID,
			Status: RUNNING,
		},
	}, nil
}

type notFindDBForTest struct {
	unimplementedDB
}

func (notFindDBForTest) Get(jobID string) (Job, error) {
	return &NormalJob{}, fmt.Errorf("failed to find %s", jobID)
}

type unimplementedScheduler struct{}

func (u *unimplementedScheduler) Setup(*Conf) error           { return nil }
func (u *unimplementedScheduler) Start() error                { return nil }
func (u *unimplementedScheduler) HandleJob(_ Job)             { return }
func (u *unimplementedScheduler) GetCurrentQueueSize() int    { return 0 }
func (u *unimplementedScheduler) IsOverRefillThreshold() bool { return false }

// passThroughMitigatorForTest pretends the operator is built and returns
// observed counts unchanged.
type passThroughMitigatorForTest struct{}

func (p *passThroughMitigatorForTest) Setup(*Conf) error { return nil }
func (p *passThroughMitigatorForTest) QubitCount() int   { return MockMaxQubits }
func (p *passThroughMitigatorForTest) BuildCalibrationCircuits() []*CircuitSpec {
	return []*CircuitSpec{}
}
func (p *passThroughMitigatorForTest) BuildErrorMitigationMatrix([]Counts) error { return nil }
func (p *passThroughMitigatorForTest) MitigateErrors(observed Observation) (Counts, error) {
	if observed.Counts == nil {
		return make(Counts), nil
	}
	return observed.Counts, nil
}
func (p *passThroughMitigatorForTest) OperatorReady() bool { return true }

func SCWithUnimplementedContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() BackendManager { return &successBackendForTest{} })
	c.Provide(func() DBManager {
		db := &successDBForTest{}
		db.Setup(nil, &Conf{})
		return db
	})
	c.Provide(func() Scheduler { return &unimplementedScheduler{} })
	c.Provide(func() MitigationManager { return &passThroughMitigatorForTest{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithDBContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() BackendManager { return &successBackendForTest{} })
	c.Provide(func() DBManager { return &MemoryDB{} })
	c.Provide(func() Scheduler { return &unimplementedScheduler{} })
	c.Provide(func() MitigationManager { return &passThroughMitigatorForTest{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithScheduler(sc Scheduler) *SystemComponents {
	c := dig.New()
	c.Provide(func() BackendManager { return &successBackendForTest{} })
	c.Provide(func() DBManager { return &MemoryDB{} })
	c.Provide(func() Scheduler { return sc })
	c.Provide(func() MitigationManager { return &passThroughMitigatorForTest{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{QueueMaxSize: 1000})
	return s
}

// SCWithMitigator wires a concrete mitigation engine and backend into the
// container for calibration tests.
func SCWithMitigator(m MitigationManager, b BackendManager, conf *Conf) *SystemComponents {
	c := dig.New()
	c.Provide(func() BackendManager { return b })
	c.Provide(func() DBManager { return &MemoryDB{} })
	c.Provide(func() Scheduler { return &unimplementedScheduler{} })
	c.Provide(func() MitigationManager { return m })
	s := NewSystemComponents(c)
	s.Setup(conf)
	return s
}
