//go:build unit
// +build unit

package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
)

func writeDeviceSetting(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "device_setting.toml")
	assert.Nil(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDeviceSetting(t *testing.T) {
	path := writeDeviceSetting(t, heredoc.Doc(`
		device_name = "TestDevice"
		device_type = "simulator"
		provider_name = "TestProvider"
		max_qubits = 4
		max_shots = 5000

		[[qubits]]
		id = 0
		prob_meas1_prep0 = 0.05
		prob_meas0_prep1 = 0.08
	`))
	ds, err := LoadDeviceSetting(path)
	assert.Nil(t, err)
	assert.Equal(t, "TestDevice", ds.DeviceName)
	assert.Equal(t, 4, ds.MaxQubits)
	assert.Equal(t, 5000, ds.MaxShots)
	assert.Equal(t, 1, len(ds.Qubits))
	assert.Equal(t, 0.05, ds.Qubits[0].ProbMeas1Prep0)
	assert.Equal(t, 0.08, ds.Qubits[0].ProbMeas0Prep1)
}

func TestLoadDeviceSettingMissingFile(t *testing.T) {
	ds, err := LoadDeviceSetting(filepath.Join(t.TempDir(), "no_such_file.toml"))
	assert.Nil(t, err)
	assert.Equal(t, SimulatorDeviceName, ds.DeviceName)
	assert.Equal(t, SimulatorProviderName, ds.ProviderName)
	assert.Equal(t, 10, ds.MaxQubits)
	assert.Equal(t, 100000, ds.MaxShots)
	assert.Equal(t, 0, len(ds.Qubits))
}

func TestLoadDeviceSettingInvalidProbability(t *testing.T) {
	path := writeDeviceSetting(t, heredoc.Doc(`
		[[qubits]]
		id = 0
		prob_meas1_prep0 = 1.5
		prob_meas0_prep1 = 0.1
	`))
	_, err := LoadDeviceSetting(path)
	assert.ErrorContains(t, err, "prob_meas1_prep0 out of [0,1]")
}

func TestFlipProb(t *testing.T) {
	ds := &DeviceSetting{
		Qubits: []*QubitSetting{
			{ID: 1, ProbMeas1Prep0: 0.05, ProbMeas0Prep1: 0.08},
		},
	}
	assert.Equal(t, 0.05, ds.flipProb(1, '0'))
	assert.Equal(t, 0.08, ds.flipProb(1, '1'))
	// qubits without a setting read out noiselessly
	assert.Equal(t, 0.0, ds.flipProb(0, '0'))
	assert.Equal(t, 0.0, ds.flipProb(0, '1'))
}
