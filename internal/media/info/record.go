package info

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mkvscan/internal/media/ffprobe"
)

// Record holds the metadata extracted for a single media file. Either the
// metadata fields or Err is meaningful, never both.
type Record struct {
	Path              string   `json:"path"`
	Width             int      `json:"width,omitempty"`
	Height            int      `json:"height,omitempty"`
	FrameRate         float64  `json:"frame_rate,omitempty"`
	VideoCodec        string   `json:"video_codec,omitempty"`
	AudioLanguages    []string `json:"audio_languages,omitempty"`
	SubtitleLanguages []string `json:"subtitle_languages,omitempty"`
	SizeBytes         int64    `json:"size_bytes,omitempty"`
	Tier              Tier     `json:"tier"`
	Err               string   `json:"error,omitempty"`
}

// Failed reports whether the record represents a failed probe or parse.
func (r Record) Failed() bool {
	return r.Err != ""
}

// Resolution renders the pixel dimensions as WIDTHxHEIGHT, or "-" when unknown.
func (r Record) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseError reports that ffprobe produced output but the required fields
// were absent or malformed.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse metadata: %s", e.Reason)
	}
	return fmt.Sprintf("parse metadata for %s: %s", e.Path, e.Reason)
}

// Parse builds a Record from a probe result. The first video stream supplies
// width, height, codec, and frame rate; audio and subtitle streams contribute
// language tags in container order, with untagged streams omitted.
func Parse(path string, result ffprobe.Result) (Record, error) {
	video, ok := result.FirstVideoStream()
	if !ok {
		return Record{}, &ParseError{Path: path, Reason: "no video stream"}
	}
	if video.Width <= 0 || video.Height <= 0 {
		return Record{}, &ParseError{Path: path, Reason: fmt.Sprintf("invalid dimensions %dx%d", video.Width, video.Height)}
	}

	record := Record{
		Path:       path,
		Width:      video.Width,
		Height:     video.Height,
		FrameRate:  parseFrameRate(video.AvgFrameRate, video.RFrameRate),
		VideoCodec: strings.ToLower(strings.TrimSpace(video.CodecName)),
		Tier:       Classify(video.Width, video.Height),
	}

	for _, stream := range result.StreamsOfType("audio") {
		if tag := stream.LanguageTag(); tag != "" {
			record.AudioLanguages = append(record.AudioLanguages, tag)
		}
	}
	for _, stream := range result.StreamsOfType("subtitle") {
		if tag := stream.LanguageTag(); tag != "" {
			record.SubtitleLanguages = append(record.SubtitleLanguages, tag)
		}
	}

	return record, nil
}

// parseFrameRate evaluates ffprobe frame-rate strings, preferring the average
// rate over the raw rate. Rates arrive either as "num/den" rationals or plain
// decimals; the result is rounded to three decimals so 24000/1001 reads as
// the conventional 23.976.
func parseFrameRate(avg, raw string) float64 {
	for _, candidate := range []string{avg, raw} {
		if rate, ok := evalRate(candidate); ok {
			return rate
		}
	}
	return 0
}

func evalRate(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0/0" {
		return 0, false
	}
	if num, den, found := strings.Cut(value, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		rate := n / d
		if rate <= 0 {
			return 0, false
		}
		return roundRate(rate), true
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return roundRate(rate), true
}

func roundRate(rate float64) float64 {
	return math.Round(rate*1000) / 1000
}
