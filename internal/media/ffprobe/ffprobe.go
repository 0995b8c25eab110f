package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	RFrameRate   string            `json:"r_frame_rate"`
	Tags         map[string]string `json:"tags"`
	Disposition  Disposition       `json:"disposition"`
}

// Disposition carries the subset of ffprobe disposition flags we care about.
type Disposition struct {
	AttachedPic int `json:"attached_pic"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// IsVideo reports whether the stream is a video stream. Attached pictures
// (cover art muxed as a video stream) do not count.
func (s Stream) IsVideo() bool {
	return strings.EqualFold(s.CodecType, "video") && s.Disposition.AttachedPic == 0
}

// LanguageTag returns the stream's language tag, or "" when the stream is
// untagged. Muxers disagree on tag casing, so the common variants are checked.
func (s Stream) LanguageTag() string {
	if len(s.Tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		value, ok := s.Tags[key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}

// FirstVideoStream returns the primary video stream, skipping attached pictures.
func (r Result) FirstVideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if stream.IsVideo() {
			return stream, true
		}
	}
	return Stream{}, false
}

// StreamsOfType returns the streams matching the given codec type in container order.
func (r Result) StreamsOfType(codecType string) []Stream {
	var matched []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			matched = append(matched, stream)
		}
	}
	return matched
}

// Decode parses raw ffprobe JSON output into a Result.
func Decode(payload []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe decode: %w", err)
	}
	return result, nil
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
// Tool-level failures are returned as *ProbeError.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, &ProbeError{Err: errors.New("empty path")}
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{}, &ProbeError{Path: path, Err: err}
	}

	cmd := exec.CommandContext(ctx, resolved, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Result{}, &ProbeError{Path: path, Output: detail, Err: err}
	}

	return Decode(output)
}

// Prober abstracts ffprobe invocation for a single file.
type Prober interface {
	Inspect(ctx context.Context, path string) (Result, error)
}

// Command is a Prober backed by the real ffprobe binary.
type Command struct {
	// Binary is the executable name or path; empty means "ffprobe" from PATH.
	Binary string
	// Timeout bounds a single invocation. Zero means no per-file timeout.
	Timeout time.Duration
}

// Inspect implements Prober.
func (c Command) Inspect(ctx context.Context, path string) (Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return Inspect(ctx, c.Binary, path)
}
