package backend

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/oqtopus-team/readout-mitigator/core"

	"go.uber.org/zap"
)

const SimulatorDeviceName = "ReadoutNoiseSimulator"
const SimulatorProviderName = "LocalProvider"

var source rand.Source = rand.NewSource(time.Now().UnixNano())
var randGenerator *rand.Rand = rand.New(source)

// SimulatorBackend executes circuit specifications locally. State preparation
// is exact; each measured bit is flipped independently with the per-qubit
// probabilities from the device setting, which models readout error only.
type SimulatorBackend struct {
	deviceSetting *DeviceSetting
}

func (s *SimulatorBackend) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up Simulator backend")
	ds, err := LoadDeviceSetting(conf.DeviceSettingPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to load a device setting. Reason:%s", err))
		return err
	}
	s.deviceSetting = ds
	return nil
}

func (s *SimulatorBackend) Send(j core.Job) error {
	jd := j.JobData()
	zap.L().Info("Starting Simulator backend execution of Job ID:" + jd.ID)
	start := time.Now()
	counts, err := s.Run(jd.Circuit, jd.Shots)
	if err != nil {
		msg := core.SetFailureWithError(j, err)
		zap.L().Info(msg)
		return err
	}
	jd.Result.Counts = counts
	jd.Result.ExecutionTime = time.Since(start)
	jd.Status = core.SUCCEEDED
	jd.Ended = strfmt.DateTime(time.Now())
	zap.L().Debug(fmt.Sprintf("Job ID:%s is processed/status: %s", jd.ID, jd.Status))
	return nil
}

// Run implements the execution contract of the mitigation core: one circuit
// specification and a shot count in, an outcome-count mapping out. Outcomes
// with zero count are left out of the mapping.
func (s *SimulatorBackend) Run(spec *core.CircuitSpec, shots int) (core.Counts, error) {
	if spec == nil {
		return nil, fmt.Errorf("no circuit specification")
	}
	if shots <= 0 {
		return nil, fmt.Errorf("shots(%d) must be greater than 0", shots)
	}
	if spec.QubitCount < 1 {
		return nil, fmt.Errorf("circuit has no qubits")
	}
	if spec.QubitCount > s.deviceSetting.MaxQubits {
		return nil, fmt.Errorf("Too many qubits in your circuit. We only have %d qubits.",
			s.deviceSetting.MaxQubits)
	}

	n := spec.QubitCount
	ideal := make([]byte, n)
	for i := range ideal {
		ideal[i] = '0'
	}
	for _, q := range spec.PrepareOnes {
		if q < 0 || q >= n {
			return nil, fmt.Errorf("prepared qubit %d is out of range [0, %d)", q, n)
		}
		// bit k of the outcome string, counted from the right, is qubit k
		ideal[n-q-1] = '1'
	}

	counts := make(core.Counts)
	observed := make([]byte, n)
	for i := 0; i < shots; i++ {
		for k := 0; k < n; k++ {
			bit := ideal[n-k-1]
			if randGenerator.Float64() < s.deviceSetting.flipProb(k, bit) {
				bit = flip(bit)
			}
			observed[n-k-1] = bit
		}
		counts[string(observed)]++
	}
	return counts, nil
}

func (s *SimulatorBackend) GetDeviceInfo() *core.DeviceInfo {
	return &core.DeviceInfo{
		DeviceName:   s.deviceSetting.DeviceName,
		ProviderName: s.deviceSetting.ProviderName,
		Type:         s.deviceSetting.DeviceType,
		Status:       core.Available,
		MaxQubits:    s.deviceSetting.MaxQubits,
		MaxShots:     s.deviceSetting.MaxShots,
	}
}

func flip(bit byte) byte {
	if bit == '0' {
		return '1'
	}
	return '0'
}
