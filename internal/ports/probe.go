package ports

import (
	"net"
	"strconv"
	"time"
)

// DefaultProbeTimeout bounds a single occupancy probe.
const DefaultProbeTimeout = time.Second

// ProbeFunc reports whether a local TCP port is free. Implementations must
// return within their configured timeout.
type ProbeFunc func(port int) bool

// Probe attempts a TCP connection to localhost:port and reports whether the
// port is available (no listener). A successful dial means something is
// listening; any dial error, including timeout, counts as available so that a
// flaky probe under-reports occupancy rather than hiding a dead service.
func Probe(port int, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)), timeout)
	if err != nil {
		return true
	}
	conn.Close()
	return false
}

// Prober binds Probe to a fixed timeout.
func Prober(timeout time.Duration) ProbeFunc {
	return func(port int) bool { return Probe(port, timeout) }
}
