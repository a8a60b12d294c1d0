package tutil

import (
	"net"
	"os"
	"strings"
	"testing"
)

// IsIntegrationTest reports whether MERGINGTON_TEST is set to "integration".
// Tests that bind real ports only run in that mode.
func IsIntegrationTest() bool {
	testType := os.Getenv("MERGINGTON_TEST")
	return strings.ToLower(testType) == "integration"
}

// SkipUnlessIntegration skips t when not running integration tests.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()
	if !IsIntegrationTest() {
		t.Skip("set MERGINGTON_TEST=integration to run")
	}
}

// FreePort returns a TCP port on localhost that was free when checked.
func FreePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unable to find free port: %s", err)
	}
	defer l.Close()

	_, port, err := net.SplitHostPort(l.Addr().String())
	if err != nil {
		t.Fatalf("unable to parse listener address: %s", err)
	}

	return port
}
