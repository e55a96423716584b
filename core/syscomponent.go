package core

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

var systemComponents *SystemComponents

type DBChan chan Job

type Channels struct {
	DBChan
	// when more channel is needed, add here
	// would use map[string]chan Job
}

func NewChannels() *Channels {
	return &Channels{
		DBChan: make(DBChan),
	}
}

func (c *Channels) Close() {
	close(c.DBChan)
}

func (c *Channels) Check() error {
	if c.DBChan == nil {
		return fmt.Errorf("DBChan is nil")
	}
	return nil
}

type DeviceInfo struct {
	DeviceName   string       `json:"device_name"`
	ProviderName string       `json:"provider_name"`
	Type         string       `json:"type"`
	Status       DeviceStatus `json:"status"`
	MaxQubits    int          `json:"max_qubits"`
	MaxShots     int          `json:"max_shots"`
	CalibratedAt string       `json:"calibrated_at"`
}

type DeviceStatus int

const (
	Available DeviceStatus = iota
	Unavailable
)

func (ds DeviceStatus) String() string {
	switch ds {
	case Available:
		return "Available"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

// BackendManager is the execution collaborator boundary. Send drives a job
// through the backend; Run executes a single circuit specification for the
// given number of shots and returns the outcome-count mapping, where missing
// bit strings imply zero count.
type BackendManager interface {
	Setup(*Conf) error
	Send(Job) error
	Run(spec *CircuitSpec, shots int) (Counts, error)
	GetDeviceInfo() *DeviceInfo
}

// MitigationManager owns the calibration matrix and its inverse exclusively.
// MitigateErrors must fail explicitly while the operator is not built.
type MitigationManager interface {
	Setup(*Conf) error
	QubitCount() int
	BuildCalibrationCircuits() []*CircuitSpec
	BuildErrorMitigationMatrix(calibrationCounts []Counts) error
	MitigateErrors(observed Observation) (Counts, error)
	OperatorReady() bool
}

type Scheduler interface {
	Setup(*Conf) error
	Start() error
	HandleJob(Job)
	// Queue Data Access
	GetCurrentQueueSize() int
	IsOverRefillThreshold() bool
}

type DBManager interface {
	Setup(DBChan, *Conf) error
	Insert(Job) error
	Get(string) (Job, error)
	Update(Job) error
	Delete(string) error

	AddToInnerJobIDSet(string)
	RemoveFromInnerJobIDSet(string)
	ExistInInnerJobIDSet(string) bool
}

type SystemComponents struct {
	*dig.Container
	*Channels
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{
		con,
		NewChannels(),
	}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	dbChan := s.DBChan

	zap.L().Debug("Setting up scheduler")
	var err error
	err = s.Invoke(
		func(sc Scheduler) error {
			return sc.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up DB")
	err = s.Invoke(
		func(d DBManager) error {
			return d.Setup(dbChan, conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up backend")
	err = s.Invoke(func(b BackendManager) error {
		return b.Setup(conf)
	})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up mitigation engine")
	err = s.Invoke(
		func(m MitigationManager) error {
			return m.Setup(conf)
		})
	if err != nil {
		return err
	}
	systemComponents = s
	return nil
}

func (s *SystemComponents) TearDown() {
	s.Channels.Close()
}

func (s *SystemComponents) StartContainer() error {
	return s.Container.Invoke(
		func(sc Scheduler) error {
			return sc.Start()
		})
}

func (s *SystemComponents) GetDeviceInfo() *DeviceInfo {
	var deviceInfo *DeviceInfo
	s.Invoke(
		func(b BackendManager) error {
			deviceInfo = b.GetDeviceInfo()
			return nil
		})
	return deviceInfo
}

func (s *SystemComponents) GetCurrentQueueSize() int {
	var size int
	s.Invoke(
		func(sc Scheduler) {
			size = sc.GetCurrentQueueSize()
		})
	return size
}

func (s *SystemComponents) IsQueueOverRefillThreshold() bool {
	var over bool
	s.Invoke(
		func(sc Scheduler) {
			over = sc.IsOverRefillThreshold()
		})
	return over
}

func (s *SystemComponents) IsOperatorReady() bool {
	var ready bool
	s.Invoke(
		func(m MitigationManager) {
			ready = m.OperatorReady()
		})
	return ready
}
