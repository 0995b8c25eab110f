package ffprobe

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ProbeError reports that the external tool itself failed: the binary is
// missing, the process exited non-zero, or the container was unreadable.
// Callers distinguish it from parse-level failures with errors.As.
type ProbeError struct {
	Path   string
	Output string
	Err    error
}

func (e *ProbeError) Error() string {
	msg := "probe"
	if e.Path != "" {
		msg = fmt.Sprintf("probe %s", e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if detail := strings.TrimSpace(e.Output); detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return msg
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// MissingBinary reports whether the failure was caused by the ffprobe binary
// being absent from PATH, so the caller can warn once instead of per file.
func (e *ProbeError) MissingBinary() bool {
	return errors.Is(e.Err, exec.ErrNotFound)
}
