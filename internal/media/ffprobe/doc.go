// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - ProbeError: tool-level failure (missing binary, non-zero exit,
//     unreadable container), distinct from parse-level failures
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Prober: single-method capability interface so callers can be tested
//     without invoking the real tool
package ffprobe
