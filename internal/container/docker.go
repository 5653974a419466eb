// Package container lists deployment containers via the docker CLI.
package container

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os/exec"
	"strings"
	"time"
)

const listTimeout = 10 * time.Second

// Record is one container as reported by the runtime's listing. Fields are
// carried verbatim; entries that fail to parse are dropped, never validated.
type Record struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Image   string `json:"image"`
	Ports   string `json:"ports"`
	Created string `json:"created"`
}

// Lister enumerates containers matching a name filter. Implementations never
// return an error: a failed listing is an empty listing.
type Lister interface {
	List(ctx context.Context, nameFilter string) []Record
}

// runner abstracts command execution so tests can substitute the CLI.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DockerCLI shells out to the docker client for container listings.
type DockerCLI struct {
	run runner
}

func NewDockerCLI() *DockerCLI {
	return &DockerCLI{run: runCommand}
}

// dockerPS is the subset of `docker ps --format '{{json .}}'` fields we keep.
type dockerPS struct {
	Names     string `json:"Names"`
	State     string `json:"State"`
	Image     string `json:"Image"`
	Ports     string `json:"Ports"`
	CreatedAt string `json:"CreatedAt"`
}

// List runs `docker ps -a` with a name filter and one JSON document per line.
// The command carries a hard deadline; on timeout or a non-zero exit the
// condition is logged and an empty listing returned, never an error.
func (d *DockerCLI) List(ctx context.Context, nameFilter string) []Record {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	args := []string{"ps", "-a", "--filter", "name=" + nameFilter, "--format", "{{json .}}"}
	output, err := d.run(ctx, "docker", args...)
	if err != nil {
		log.Printf("WARN: docker ps failed: %v", err)
		return []Record{}
	}
	return parseListing(output)
}

// parseListing decodes each line independently so one garbled entry cannot
// fail the whole listing.
func parseListing(output []byte) []Record {
	records := []Record{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ps dockerPS
		if err := json.Unmarshal([]byte(line), &ps); err != nil {
			continue
		}
		records = append(records, Record{
			Name:    ps.Names,
			State:   ps.State,
			Image:   ps.Image,
			Ports:   ps.Ports,
			Created: ps.CreatedAt,
		})
	}
	return records
}

// RunningCount tallies records whose state is "running".
func RunningCount(records []Record) int {
	n := 0
	for _, r := range records {
		if r.State == "running" {
			n++
		}
	}
	return n
}
