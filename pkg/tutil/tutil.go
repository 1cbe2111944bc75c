package tutil

import (
	"os"
	"strconv"
	"strings"
	"testing"
)

func IsIntegrationTest() bool {
	testType := os.Getenv("PILOTD_TEST")
	return strings.ToLower(testType) == "integration"
}

// StringEnv returns the environment variable key, skipping the test when it is unset.
func StringEnv(t *testing.T, key string) string {
	t.Helper()
	val := os.Getenv(key)
	if val == "" {
		t.Skipf("%s not set", key)
	}

	return val
}

// IntEnv is StringEnv for integer values. A non-numeric value fails the test.
func IntEnv(t *testing.T, key string) int {
	t.Helper()
	val, err := strconv.Atoi(StringEnv(t, key))
	if err != nil {
		t.Fatalf("%s is not a number: %s", key, err)
	}

	return val
}
