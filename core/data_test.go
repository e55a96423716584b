//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
)

func TestResultToString(t *testing.T) {
	tests := []struct {
		name       string
		result     *Result
		wantString string
	}{
		{
			name:   "empty result",
			result: NewResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {},
			    "raw_counts": null,
			    "message": "",
			    "execution_time": 0
			  }
			`),
		},
		{
			name:   "message in result",
			result: messageInResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {},
			    "raw_counts": null,
			    "message": "dummy message",
			    "execution_time": 0
			  }
			`),
		},
		{
			name:   "counts in result",
			result: countsInResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {
			      "00": 10,
			      "01": 20
			    },
			    "raw_counts": null,
			    "message": "",
			    "execution_time": 0
			  }
			`),
		},
		{
			name:   "mitigated counts keep the raw counts",
			result: mitigatedResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {
			      "00": 12,
			      "01": 18
			    },
			    "raw_counts": {
			      "00": 10,
			      "01": 20
			    },
			    "message": "",
			    "execution_time": 0
			  }
			`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := tt.result.ToString()
			assert.Equal(t, tt.wantString, act)
		})
	}
}

func messageInResult() *Result {
	r := NewResult()
	r.Message = "dummy message"
	return r
}

func countsInResult() *Result {
	r := NewResult()
	r.Counts = make(Counts)
	r.Counts["00"] = uint32(10)
	r.Counts["01"] = uint32(20)
	return r
}

func mitigatedResult() *Result {
	r := countsInResult()
	r.RawCounts = r.Counts
	r.Counts = Counts{"00": 12, "01": 18}
	return r
}

func TestCountsTotalShots(t *testing.T) {
	assert.Equal(t, uint32(0), Counts{}.TotalShots())
	assert.Equal(t, uint32(1000), Counts{"00": 600, "11": 400}.TotalShots())
}

func TestCircuitSpecString(t *testing.T) {
	c := CircuitSpec{QubitCount: 2, PrepareOnes: []int{0}, MeasureAll: true}
	assert.Equal(t, `{"qubit_count":2,"prepare_ones":[0],"measure_all":true}`, c.String())
}

func TestStatusRoundTrip(t *testing.T) {
	for _, st := range []Status{SUBMITTED, READY, RUNNING, SUCCEEDED, FAILED, CANCELLED} {
		parsed, err := ToStatus(st.String())
		assert.Nil(t, err)
		assert.Equal(t, st, parsed)
	}
	_, err := ToStatus("nonsense")
	assert.Error(t, err)
}

func TestCloneJobData(t *testing.T) {
	tests := []struct {
		name    string
		jobData *JobData
	}{
		{
			name: "no properties",
			jobData: &JobData{
				ID:      "dummy_id",
				Circuit: &CircuitSpec{QubitCount: 2, MeasureAll: true},
				Shots:   1000,
				Result:  NewResult(),
				Created: strfmt.NewDateTime(),
				Ended:   strfmt.NewDateTime(),
			},
		},
		{
			name: "with properties",
			jobData: &JobData{
				ID:      "dummy_id",
				Circuit: &CircuitSpec{QubitCount: 2, PrepareOnes: []int{0, 1}, MeasureAll: true},
				Shots:   1000,
				Result:  mitigatedResult(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clonedJobData := tt.jobData.Clone()

			assert.False(t, tt.jobData == clonedJobData)
			assert.Equal(t, tt.jobData.ID, clonedJobData.ID)
			assert.Equal(t, tt.jobData.Circuit, clonedJobData.Circuit)
			assert.Equal(t, tt.jobData.Shots, clonedJobData.Shots)
			assert.Equal(t, tt.jobData.Created, clonedJobData.Created)
			assert.Equal(t, tt.jobData.Ended, clonedJobData.Ended)
			assert.False(t, tt.jobData.Result == clonedJobData.Result)
		})
	}
}
