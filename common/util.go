package common

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

func ReadFile(filepath string) (string, error) {
	bytes, err := os.ReadFile(filepath)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// For ad hoc JSON printing for logging
func PlainJsonString(jsonInput string) string {
	if jsonInput[0] == '"' {
		jsonInput = jsonInput[1:]
	}
	if jsonInput[len(jsonInput)-1] == '"' {
		jsonInput = jsonInput[:len(jsonInput)-1]
	}
	jsonInput = strings.ReplaceAll(jsonInput, "\n", "")
	jsonInput = strings.ReplaceAll(jsonInput, "\\\"", "\"")
	jsonInput = strings.ReplaceAll(jsonInput, " ", "")
	return jsonInput
}

func IsDirWritable(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dirPath)
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dirPath)
	}

	tempFile, err := os.CreateTemp(dirPath, "test-write-*.tmp")
	if err != nil {
		return fmt.Errorf("write permission denied for directory: %s", dirPath)
	}
	fileName := tempFile.Name()
	tempFile.Close()

	if err := os.Remove(fileName); err != nil {
		return fmt.Errorf("failed to remove temporary file: %s", err)
	}

	return nil
}

func ReadSettingsFile(settingsPath string) (string, error) {
	bytes, err := os.ReadFile(settingsPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read settings file/path:%s/reason:%s",
			settingsPath, err))
		return "", err
	}
	return string(bytes), nil
}
