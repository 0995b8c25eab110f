// Package deps reports the availability of the external binaries mkvscan
// shells out to. A missing tool is a single global condition: callers check
// it here once instead of failing row by row.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the tool relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Version     string
	Detail      string
}

// FFprobe builds the requirement for the configured ffprobe binary.
func FFprobe(binary string) Requirement {
	command := strings.TrimSpace(binary)
	if command == "" {
		command = "ffprobe"
	}
	return Requirement{
		Name:        "ffprobe",
		Command:     command,
		Description: "Extracts container and stream metadata",
	}
}

// Check evaluates the provided requirements and reports availability. When a
// binary resolves, its version banner is captured on a best-effort basis.
func Check(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		command := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     command,
			Description: strings.TrimSpace(req.Description),
		}
		if command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", command)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		status.Version = probeVersion(ctx, resolved)
		results = append(results, status)
	}
	return results
}

// probeVersion runs "<binary> -version" and returns the first banner line.
func probeVersion(ctx context.Context, binary string) string {
	output, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
