package info_test

import (
	"errors"
	"reflect"
	"testing"

	"mkvscan/internal/media/ffprobe"
	"mkvscan/internal/media/info"
)

func sampleResult() ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video", CodecName: "hevc", Width: 3840, Height: 2160, AvgFrameRate: "24000/1001"},
			{Index: 1, CodecType: "audio", CodecName: "opus", Tags: map[string]string{"language": "eng"}},
			{Index: 2, CodecType: "audio", CodecName: "opus", Tags: map[string]string{"language": "jpn"}},
			{Index: 3, CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"language": "eng"}},
		},
	}
}

func TestParseWellFormedResult(t *testing.T) {
	record, err := info.Parse("/media/movie.mkv", sampleResult())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if record.Width != 3840 || record.Height != 2160 {
		t.Fatalf("unexpected dimensions: %dx%d", record.Width, record.Height)
	}
	if record.FrameRate != 23.976 {
		t.Fatalf("unexpected frame rate: %v", record.FrameRate)
	}
	if record.VideoCodec != "hevc" {
		t.Fatalf("unexpected codec: %q", record.VideoCodec)
	}
	if !reflect.DeepEqual(record.AudioLanguages, []string{"eng", "jpn"}) {
		t.Fatalf("unexpected audio languages: %v", record.AudioLanguages)
	}
	if !reflect.DeepEqual(record.SubtitleLanguages, []string{"eng"}) {
		t.Fatalf("unexpected subtitle languages: %v", record.SubtitleLanguages)
	}
	if record.Tier != info.TierFourK {
		t.Fatalf("unexpected tier: %v", record.Tier)
	}
	if record.Failed() {
		t.Fatal("record must not be failed")
	}
}

func TestParseIsIdempotent(t *testing.T) {
	first, err := info.Parse("/media/movie.mkv", sampleResult())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	second, err := info.Parse("/media/movie.mkv", sampleResult())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Parse not idempotent: %+v vs %+v", first, second)
	}
}

func TestParseOmitsUntaggedStreams(t *testing.T) {
	result := sampleResult()
	result.Streams = append(result.Streams,
		ffprobe.Stream{Index: 4, CodecType: "audio", CodecName: "ac3"},
		ffprobe.Stream{Index: 5, CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"title": "Signs"}},
	)
	record, err := info.Parse("/media/movie.mkv", result)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(record.AudioLanguages) != 2 || len(record.SubtitleLanguages) != 1 {
		t.Fatalf("untagged streams leaked into languages: %v / %v", record.AudioLanguages, record.SubtitleLanguages)
	}
}

func TestParseKeepsDuplicateLanguageTags(t *testing.T) {
	result := sampleResult()
	result.Streams[2].Tags["language"] = "eng"
	record, err := info.Parse("/media/movie.mkv", result)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(record.AudioLanguages, []string{"eng", "eng"}) {
		t.Fatalf("expected duplicate tags preserved, got %v", record.AudioLanguages)
	}
}

func TestParseRejectsMissingVideoStream(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}
	_, err := info.Parse("/media/audio.mka", result)
	var parseErr *info.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseRejectsInvalidDimensions(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", CodecName: "h264", Width: 0, Height: 1080}}}
	_, err := info.Parse("/media/broken.mkv", result)
	var parseErr *info.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseFrameRateFallsBackToRawRate(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{CodecType: "video", CodecName: "h264", Width: 1920, Height: 1080, AvgFrameRate: "0/0", RFrameRate: "25/1"},
	}}
	record, err := info.Parse("/media/pal.mkv", result)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if record.FrameRate != 25 {
		t.Fatalf("unexpected frame rate: %v", record.FrameRate)
	}
}

func TestParseDecimalFrameRate(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{CodecType: "video", CodecName: "h264", Width: 1280, Height: 720, AvgFrameRate: "23.976"},
	}}
	record, err := info.Parse("/media/clip.mkv", result)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if record.FrameRate != 23.976 {
		t.Fatalf("unexpected frame rate: %v", record.FrameRate)
	}
}

func TestRecordResolution(t *testing.T) {
	record := info.Record{Width: 1920, Height: 1080}
	if record.Resolution() != "1920x1080" {
		t.Fatalf("unexpected resolution: %q", record.Resolution())
	}
	if (info.Record{}).Resolution() != "-" {
		t.Fatal("empty record must render resolution as -")
	}
}
