package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// String returns the value of the environment variable named v. ok is false
// if v is undefined or empty.
func String(v string) (s string, ok bool) {
	s = os.Getenv(v)
	return s, s != ""
}

// UInt parses and validates a non-zero unsigned integer from the environment
// variable named v.
func UInt(v string) (uint, bool, error) {
	s, ok := String(v)
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil || n == 0 {
		return 0, false, fmt.Errorf("%s must be a non-zero integer", v)
	}

	return uint(n), true, nil
}

// Duration parses and validates a non-zero duration in milliseconds from the
// environment variable named v.
func Duration(v string) (time.Duration, bool, error) {
	s, ok := String(v)
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil || n == 0 {
		return 0, false, fmt.Errorf("%s must be a non-zero duration (in milliseconds)", v)
	}

	return time.Duration(n) * time.Millisecond, true, nil
}

// Bool parses and validates a boolean string from the environment variable
// named v.
func Bool(v string) (bool, bool, error) {
	switch os.Getenv(v) {
	case "true":
		return true, true, nil
	case "false":
		return false, true, nil
	case "":
		return false, false, nil
	default:
		return false, false, fmt.Errorf("%s must be 'true' or 'false'", v)
	}
}
