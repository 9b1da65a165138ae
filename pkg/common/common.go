package common

import (
	"math"
	"os"
)

// Round2 rounds a monetary value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MustMakeDirs creates dir and parents, ignoring errors for existing paths.
func MustMakeDirs(dir string) {
	_ = os.MkdirAll(dir, 0o755)
}
