package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type Status int // Status of the job known to the caller that is not as the same meaning in the engine.
type Counts map[string]uint32
type CountVector []float64

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// TotalShots is the sum of all outcome counts. Missing bit strings mean
// zero count, so the sum over present keys is the full shot count.
func (c Counts) TotalShots() uint32 {
	var total uint32
	for _, v := range c {
		total += v
	}
	return total
}

func ToStatus(s string) (Status, error) {
	switch s {
	case "submitted":
		return SUBMITTED, nil
	case "ready":
		return READY, nil
	case "running":
		return RUNNING, nil
	case "succeeded":
		return SUCCEEDED, nil
	case "failed":
		return FAILED, nil
	case "cancelled":
		return CANCELLED, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", s)
	}
}

const (
	SUBMITTED Status = iota // In the queue of the caller.
	READY                   // Has never been processed on a backend. All the jobs in the engine are in this status at first.
	RUNNING                 // Being processed and has been processed on a backend.
	SUCCEEDED               // Finished successfully.
	FAILED                  // Finished with failure.
	CANCELLED               // Finished with cancellation.
)

func (s Status) String() string {
	switch s {
	case SUBMITTED:
		return "submitted"
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case SUCCEEDED:
		return "succeeded"
	case FAILED:
		return "failed"
	case CANCELLED:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CircuitSpec is the opaque circuit description exchanged with the backend.
// PrepareOnes lists the qubits initialized to |1> before measurement; every
// other qubit stays in |0>. MeasureAll marks a full measurement of all qubits.
type CircuitSpec struct {
	QubitCount  int   `json:"qubit_count"`
	PrepareOnes []int `json:"prepare_ones"`
	MeasureAll  bool  `json:"measure_all"`
}

func (c CircuitSpec) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.CircuitSpec")
		return ""
	}
	return string(st)
}

// Observation is the tagged-variant input of MitigationManager.MitigateErrors.
// Exactly one of Counts (sparse) or Vector (dense, length 2^n) must be set.
type Observation struct {
	Counts Counts
	Vector CountVector
}

func NewCountsObservation(c Counts) Observation {
	return Observation{Counts: c}
}

func NewVectorObservation(v CountVector) Observation {
	return Observation{Vector: v}
}

type Result struct {
	Counts        Counts        `json:"counts"`
	RawCounts     Counts        `json:"raw_counts"` // counts before mitigation, kept when mitigation runs
	Message       string        `json:"message"`
	ExecutionTime time.Duration `json:"execution_time"`
}

func cloneCounts(counts Counts) Counts {
	clone := make(Counts)
	for k, v := range counts {
		clone[k] = v
	}
	return clone
}

type JobData struct {
	ID             string
	Status         Status
	Shots          int
	Circuit        *CircuitSpec
	Result         *Result
	JobType        string
	Created        strfmt.DateTime
	Ended          strfmt.DateTime
	Info           string
	MitigationInfo string
}

func (jd *JobData) Clone() *JobData {
	c := deepcopy.Copy(jd).(*JobData)
	c.Created = *jd.Created.DeepCopy()
	c.Ended = *jd.Ended.DeepCopy()
	return c
}

func NewResult() *Result {
	return &Result{
		Counts: make(Counts),
	}
}

func NewJobData() *JobData {
	return &JobData{
		Result:  NewResult(),
		Created: strfmt.DateTime(time.Now()),
	}
}

func CloneJobData(i *JobData) *JobData {
	o := NewJobData()
	o.ID = i.ID
	o.Status = i.Status
	o.Shots = i.Shots
	o.Circuit = i.Circuit
	o.Result.Counts = cloneCounts(i.Result.Counts)
	o.Result.RawCounts = cloneCounts(i.Result.RawCounts)
	o.Result.Message = i.Result.Message
	o.JobType = i.JobType
	o.Created = i.Created
	o.Ended = i.Ended
	o.MitigationInfo = i.MitigationInfo
	return o
}

func (r *Result) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.Result")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}
