package backend

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/oqtopus-team/readout-mitigator/common"
	"go.uber.org/zap"
)

type DeviceSetting struct {
	DeviceName   string          `toml:"device_name"`
	DeviceType   string          `toml:"device_type"`
	ProviderName string          `toml:"provider_name"`
	MaxQubits    int             `toml:"max_qubits"`
	MaxShots     int             `toml:"max_shots"`
	Qubits       []*QubitSetting `toml:"qubits"`
}

// QubitSetting carries the readout-error characteristics of one qubit.
// ProbMeas1Prep0 is the probability of reporting 1 when the true outcome is 0,
// ProbMeas0Prep1 the reverse. Qubits absent from the setting read out noiselessly.
type QubitSetting struct {
	ID             int     `toml:"id"`
	ProbMeas1Prep0 float64 `toml:"prob_meas1_prep0"`
	ProbMeas0Prep1 float64 `toml:"prob_meas0_prep1"`
}

func LoadDeviceSetting(path string) (*DeviceSetting, error) {
	blob, readErr := common.ReadFile(path)
	ds := NewDeviceSetting()
	if readErr != nil {
		zap.L().Info(fmt.Sprintf("Failed to read file:%s Reason:%s", path, readErr))
		return ds, nil
	}
	if _, err := toml.Decode(blob, ds); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode blob:%s", blob))
		return &DeviceSetting{}, err
	}
	if err := ds.validate(); err != nil {
		zap.L().Error(fmt.Sprintf("invalid device setting in %s/reason:%s", path, err))
		return &DeviceSetting{}, err
	}
	return ds, nil
}

func NewDeviceSetting() *DeviceSetting {
	return &DeviceSetting{
		DeviceName:   SimulatorDeviceName,
		DeviceType:   "simulator",
		ProviderName: SimulatorProviderName,
		MaxQubits:    10,
		MaxShots:     100000,
	}
}

func (ds *DeviceSetting) validate() error {
	for _, q := range ds.Qubits {
		if q.ProbMeas1Prep0 < 0 || q.ProbMeas1Prep0 > 1 {
			return fmt.Errorf("qubit %d has prob_meas1_prep0 out of [0,1]: %f", q.ID, q.ProbMeas1Prep0)
		}
		if q.ProbMeas0Prep1 < 0 || q.ProbMeas0Prep1 > 1 {
			return fmt.Errorf("qubit %d has prob_meas0_prep1 out of [0,1]: %f", q.ID, q.ProbMeas0Prep1)
		}
	}
	return nil
}

// flipProb returns the probability that the readout of the given qubit flips
// the true bit.
func (ds *DeviceSetting) flipProb(qubit int, trueBit byte) float64 {
	for _, q := range ds.Qubits {
		if q.ID != qubit {
			continue
		}
		if trueBit == '0' {
			return q.ProbMeas1Prep0
		}
		return q.ProbMeas0Prep1
	}
	return 0
}
