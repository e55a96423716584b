//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name               string
		confVersion        string
		versionByBuildFlag string
		want               string
	}{
		{
			name:               "build flag wins",
			confVersion:        "0.1.0",
			versionByBuildFlag: "0.2.0",
			want:               "0.2.0",
		},
		{
			name:        "conf version",
			confVersion: "0.1.0",
			want:        "0.1.0",
		},
		{
			name: "no version info",
			want: NoVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(&Conf{Version: tt.confVersion}, tt.versionByBuildFlag)
			assert.Equal(t, tt.want, Version)
		})
	}
}

func TestSetInfo(t *testing.T) {
	c := &Conf{
		QubitCount:       3,
		CalibrationShots: 2048,
		QueueMaxSize:     50,
	}
	SetInfo(c)
	assert.Equal(t, 3, CurrentInfo.Conf.QubitCount)
	assert.Equal(t, 2048, CurrentInfo.Conf.CalibrationShots)
	assert.Equal(t, 50, CurrentInfo.Conf.QueueMaxSize)
}
