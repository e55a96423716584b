package core

type Conf struct {
	Version                 string `long:"version" description:"version of mitigator server" env:"ROMIT_VERSION"`
	DevMode                 bool   `long:"dev-mode" description:"run in dev mode" env:"ROMIT_DEV_MODE"`
	DisableStdoutLog        bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"ROMIT_DISABLE_STDOUT_LOG"`
	EnableFileLog           bool   `long:"enable-file-log" description:"enable log in file" env:"ROMIT_ENABLE_FILE_LOG"`
	LogDir                  string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"ROMIT_LOG_DIR"`
	LogLevel                string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"ROMIT_LOG_LEVEL"`
	LogRotationMaxDays      int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"ROMIT_LOG_ROTATION_MAX_DAYS"`
	QubitCount              int    `long:"qubit-count" description:"number of qubits handled by the mitigation engine" default:"2" env:"ROMIT_QUBIT_COUNT"`
	CalibrationShots        int    `long:"calibration-shots" description:"number of shots per calibration circuit" default:"8192" env:"ROMIT_CALIBRATION_SHOTS"`
	DeviceSettingPath       string `long:"device-setting-path" description:"device setting file path" default:"./device_setting.toml" env:"ROMIT_DEVICE_SETTING_PATH"`
	QueueMaxSize            int    `long:"queue-max-size" description:"queue max size" default:"100" env:"ROMIT_QUEUE_MAX_SIZE"`
	QueueRefillThreshold    int    `long:"queue-refill-threshold" description:"queue refill threshold" default:"10" env:"ROMIT_QUEUE_REFILL_THRESHOLD"`
	DisableStartCalibration bool   `long:"disable-start-calibration" description:"do not submit a calibration job on startup" env:"ROMIT_DISABLE_START_CALIBRATION"`
	SettingPath             string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"ROMIT_SETTING_PATH"`
}
