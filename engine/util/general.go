package util

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

func FromJson(data string, msg any) bool {
	err := json.Unmarshal([]byte(data), msg)
	if err != nil {
		LogSystemError(err.Error())
		return false
	}
	return true
}

// LoadJsonFile decodes filename into msg. A missing file is not an error; found reports
// whether anything was read.
func LoadJsonFile(filename string, msg any) (found bool, err error) {
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "could not read '%s'", filename)
	}
	if !FromJson(string(data), msg) {
		return true, errors.Errorf("could not decode '%s'", filename)
	}
	return true, nil
}

func DoesFileExist(filename string) bool {
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return true
}
