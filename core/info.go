package core

type NonSecretConf struct {
	DevMode                 bool
	DisableStdoutLog        bool
	EnableFileLog           bool
	LogDir                  string
	LogLevel                string
	LogRotationMaxDays      int
	QubitCount              int
	CalibrationShots        int
	DeviceSettingPath       string
	QueueMaxSize            int
	QueueRefillThreshold    int
	DisableStartCalibration bool
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:                 c.DevMode,
		DisableStdoutLog:        c.DisableStdoutLog,
		EnableFileLog:           c.EnableFileLog,
		LogDir:                  c.LogDir,
		LogLevel:                c.LogLevel,
		LogRotationMaxDays:      c.LogRotationMaxDays,
		QubitCount:              c.QubitCount,
		CalibrationShots:        c.CalibrationShots,
		DeviceSettingPath:       c.DeviceSettingPath,
		QueueMaxSize:            c.QueueMaxSize,
		QueueRefillThreshold:    c.QueueRefillThreshold,
		DisableStartCalibration: c.DisableStartCalibration,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
