package ports

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
)

// PortSuffix marks registry keys that carry a port assignment.
const PortSuffix = "_PORT"

// Status describes the probe outcome for one registered port.
type Status struct {
	Port      int    `json:"port"`
	Available bool   `json:"available"`
	State     string `json:"status"`
	URL       string `json:"url,omitempty"`
}

// ReadRegistry parses a flat KEY=VALUE port-assignment file into a map of
// service keys to port numbers. Blank lines and '#' comments are skipped,
// only keys ending in _PORT are kept, and lines whose value is not a valid
// port are dropped silently so one malformed entry cannot poison the read.
// A missing file yields an empty map; the service must stay usable before
// the registry is populated.
func ReadRegistry(path string) map[string]int {
	assignments := make(map[string]int)

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: open port registry %s: %v", path, err)
		}
		return assignments
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !strings.HasSuffix(key, PortSuffix) {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || port <= 0 || port > 65535 {
			continue
		}
		assignments[key] = port
	}
	if err := scanner.Err(); err != nil {
		log.Printf("WARN: read port registry %s: %v", path, err)
	}
	return assignments
}
