//go:build unit
// +build unit

package core

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJobManager(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()
	jm, err := NewJobManager(
		&NormalJob{},
	)
	assert.Nil(t, err)
	assert.NotNil(t, jm)
	as := jm.AcceptableJobTypes()
	assert.Equal(t, len(as), 1)
	assert.Equal(t, as[0], "normal")

	err = jm.RegisterJob(&NormalJob{})
	assert.EqualError(t, err, "job:normal is already registered")

	as = jm.AcceptableJobTypes()
	assert.Equal(t, len(as), 1)
	assert.Equal(t, as[0], "normal")

	jc, err := NewJobContext()
	assert.Nil(t, err)

	job, err := jm.NewJobFromJobData(
		&JobData{ID: "test"},
		jc,
	)

	assert.Nil(t, err)
	assert.Equal(t, job.JobData().ID, "test")
}

func TestNewJobWithValidation(t *testing.T) {
	s := SCWithDBContainer()
	defer s.TearDown()

	testCircuit := &CircuitSpec{QubitCount: 2, PrepareOnes: []int{0}, MeasureAll: true}

	jm, err := NewJobManager()
	assert.Nil(t, err)
	assert.NotNil(t, jm)
	jm.RegisterJob(&NormalJob{})

	tests := []struct {
		name        string
		param       *JobParam
		wantError   string
		wantJobData *JobData
	}{
		{
			name: "0 shots",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: testCircuit,
				Shots:   0,
			},
			wantError: "shots(0) must be greater than 0",
		},
		{
			name: "negative shots",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: testCircuit,
				Shots:   -1,
			},
			wantError: "shots(-1) must be greater than 0",
		},
		{
			name: "over max shots",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: testCircuit,
				Shots:   MockMaxShots + 1,
			},
			wantError: fmt.Sprintf(
				"shots(%d) is over the limit(%d)",
				MockMaxShots+1, MockMaxShots),
		},
		{
			name: "too many qubits",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: &CircuitSpec{QubitCount: MockMaxQubits + 1, MeasureAll: true},
				Shots:   1000,
			},
			wantError: fmt.Sprintf(
				"circuit has too many qubits(%d). The device only has %d qubits",
				MockMaxQubits+1, MockMaxQubits),
		},
		{
			name: "empty job ID",
			param: &JobParam{
				JobID:   "",
				Circuit: testCircuit,
				Shots:   1000,
			},
			wantError: "jobID is empty",
		},
		{
			name: "normal with max shots",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: testCircuit,
				Shots:   MockMaxShots,
			},
			wantError: "",
			wantJobData: &JobData{
				JobType: NORMAL_JOB,
				Circuit: testCircuit,
				Shots:   MockMaxShots,
			},
		},
		{
			name: "normal with 1 shot",
			param: &JobParam{
				JobID:   uuid.NewString(),
				Circuit: testCircuit,
				Shots:   1,
			},
			wantError: "",
			wantJobData: &JobData{
				JobType: NORMAL_JOB,
				Circuit: testCircuit,
				Shots:   1,
			},
		},
		{
			name: "no circuit is allowed",
			param: &JobParam{
				JobID: uuid.NewString(),
				Shots: 1000,
			},
			wantError: "",
			wantJobData: &JobData{
				JobType: NORMAL_JOB,
				Shots:   1000,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jc, err := NewJobContext()
			assert.Nil(t, err)
			job, err := jm.NewJobWithValidation(tt.param, jc)
			if tt.wantError == "" {
				assert.Nil(t, err)
				tt.wantJobData.ID = tt.param.JobID
				tt.wantJobData.Result = NewResult()
				tt.wantJobData.Created = job.JobData().Created // ignore time
				assert.Equal(t, job.JobData(), tt.wantJobData)
			} else {
				assert.Equal(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestCloneNormalJob(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()
	jm, err := NewJobManager(&NormalJob{})
	assert.Nil(t, err)

	jd := &JobData{
		ID:      "test",
		Circuit: &CircuitSpec{QubitCount: 1, MeasureAll: true},
		Shots:   1000,
	}
	jc, err := NewJobContext()
	assert.Nil(t, err)
	org, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	cloned := org.Clone()
	assert.Nil(t, err)
	assert.False(t, cloned == org)
	assert.False(t, cloned.JobData() == org.JobData(),
		"cloned.JobData()=%p, nj.JobData()=%p", cloned.JobData(), org.JobData())
	assert.Equal(t, cloned.JobData().ID, org.JobData().ID)
	assert.Equal(t, cloned.JobData().Circuit, org.JobData().Circuit)
	assert.Equal(t, cloned.JobData().Shots, org.JobData().Shots)

	org.JobData().ID = "test2"
	assert.NotEqual(t, cloned.JobData().ID, org.JobData().ID)

	org.JobData().Status = RUNNING
	cloned.JobData().Status = SUCCEEDED
	assert.NotEqual(t, cloned.JobData().Status, org.JobData().Status)
}

func TestSetFailureWithError(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()
	jm, err := NewJobManager(&NormalJob{})
	assert.Nil(t, err)
	jc, err := NewJobContext()
	assert.Nil(t, err)
	j, err := jm.NewJobFromJobData(&JobData{ID: "test", Result: NewResult()}, jc)
	assert.Nil(t, err)

	msg := SetFailureWithError(j, fmt.Errorf("something broke"))
	assert.Equal(t, "something broke", msg)
	assert.Equal(t, FAILED, j.JobData().Status)
	assert.Equal(t, "something broke", j.JobData().Result.Message)
}
