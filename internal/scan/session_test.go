package scan_test

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"mkvscan/internal/media/ffprobe"
	"mkvscan/internal/media/info"
	"mkvscan/internal/scan"
)

type fakeProber struct {
	results map[string]ffprobe.Result
	errs    map[string]error
	calls   []string
}

func (f *fakeProber) Inspect(_ context.Context, path string) (ffprobe.Result, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[filepath.Base(path)]; ok {
		return ffprobe.Result{}, err
	}
	if result, ok := f.results[filepath.Base(path)]; ok {
		return result, nil
	}
	return ffprobe.Result{}, &ffprobe.ProbeError{Path: path, Err: errors.New("no such file")}
}

func videoResult(width, height int) ffprobe.Result {
	return ffprobe.Result{Streams: []ffprobe.Stream{
		{CodecType: "video", CodecName: "h264", Width: width, Height: height, AvgFrameRate: "25/1"},
		{CodecType: "audio", CodecName: "aac", Tags: map[string]string{"language": "eng"}},
	}}
}

func TestAddFilesRecordsInOrder(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{
		"a.mkv": videoResult(3840, 2160),
		"b.mkv": videoResult(1920, 1080),
	}}
	session := scan.NewSession(scan.Options{Prober: prober})

	summary, err := session.AddFiles(context.Background(), []string{"/x/a.mkv", "/x/b.mkv"})
	if err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	if summary.Scanned != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.BatchID == "" {
		t.Fatal("expected a batch id")
	}

	records := session.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if filepath.Base(records[0].Path) != "a.mkv" || filepath.Base(records[1].Path) != "b.mkv" {
		t.Fatalf("records out of order: %v", records)
	}
	if records[0].Tier != info.TierFourK || records[1].Tier != info.TierFHD {
		t.Fatalf("unexpected tiers: %v %v", records[0].Tier, records[1].Tier)
	}
}

func TestAddFilesReplacesExistingRow(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{
		"a.mkv": videoResult(1280, 720),
		"b.mkv": videoResult(1920, 1080),
	}}
	session := scan.NewSession(scan.Options{Prober: prober})

	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv", "/x/b.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}

	prober.results["a.mkv"] = videoResult(3840, 2160)
	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}

	records := session.Records()
	if len(records) != 2 {
		t.Fatalf("re-adding a path must replace, not duplicate: %d rows", len(records))
	}
	if filepath.Base(records[0].Path) != "a.mkv" || records[0].Tier != info.TierFourK {
		t.Fatalf("row not replaced in place: %+v", records[0])
	}
	if filepath.Base(records[1].Path) != "b.mkv" {
		t.Fatalf("ordering of other rows not preserved: %+v", records[1])
	}
}

func TestAddFilesRecordsFailuresPerRow(t *testing.T) {
	prober := &fakeProber{
		results: map[string]ffprobe.Result{"good.mkv": videoResult(1920, 1080)},
		errs:    map[string]error{"bad.mkv": &ffprobe.ProbeError{Err: errors.New("corrupt container")}},
	}
	session := scan.NewSession(scan.Options{Prober: prober})

	summary, err := session.AddFiles(context.Background(), []string{"/x/bad.mkv", "/x/good.mkv"})
	if err != nil {
		t.Fatalf("AddFiles must not fail the batch: %v", err)
	}
	if summary.Failed != 1 || summary.Scanned != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	records := session.Records()
	if !records[0].Failed() || records[0].Tier != info.TierUnknown {
		t.Fatalf("failed probe must yield an error row with unknown tier: %+v", records[0])
	}
	if records[1].Failed() {
		t.Fatalf("healthy file affected by sibling failure: %+v", records[1])
	}
}

func TestAddFilesRecordsParseFailures(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{
		"noresolution.mkv": {Streams: []ffprobe.Stream{{CodecType: "video", CodecName: "h264"}}},
	}}
	session := scan.NewSession(scan.Options{Prober: prober})

	summary, err := session.AddFiles(context.Background(), []string{"/x/noresolution.mkv"})
	if err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", summary)
	}
	if summary.MissingBinary {
		t.Fatal("parse failure must not flag a missing binary")
	}
}

func TestAddFilesFlagsMissingBinaryOnce(t *testing.T) {
	missing := &ffprobe.ProbeError{Err: exec.ErrNotFound}
	prober := &fakeProber{errs: map[string]error{"a.mkv": missing, "b.mkv": missing}}
	session := scan.NewSession(scan.Options{Prober: prober})

	summary, err := session.AddFiles(context.Background(), []string{"/x/a.mkv", "/x/b.mkv"})
	if err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	if !summary.MissingBinary {
		t.Fatal("expected MissingBinary to be set")
	}
	if summary.Failed != 2 {
		t.Fatalf("expected per-row failures even with a global condition: %+v", summary)
	}
}

func TestAddFilesNotifiesObserverPerFile(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{
		"a.mkv": videoResult(1920, 1080),
	}}
	var seen []info.Record
	session := scan.NewSession(scan.Options{
		Prober:   prober,
		Observer: func(record info.Record) { seen = append(seen, record) },
	})

	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv", "/x/missing.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("observer must fire once per file, got %d", len(seen))
	}
	if seen[0].Failed() || !seen[1].Failed() {
		t.Fatalf("observer saw wrong outcomes: %+v", seen)
	}
}

func TestAddFilesStopsOnCanceledContext(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{"a.mkv": videoResult(1920, 1080)}}
	session := scan.NewSession(scan.Options{Prober: prober})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.AddFiles(ctx, []string{"/x/a.mkv"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if session.Len() != 0 {
		t.Fatalf("no rows expected after immediate cancel, got %d", session.Len())
	}
}

func TestClear(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{"a.mkv": videoResult(1920, 1080)}}
	session := scan.NewSession(scan.Options{Prober: prober})

	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	session.Clear()
	if session.Len() != 0 {
		t.Fatalf("expected empty session after Clear, got %d rows", session.Len())
	}

	// A cleared session accepts the same path again as a fresh row.
	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}
	if session.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", session.Len())
	}
}

func TestRecordsReturnsSnapshot(t *testing.T) {
	prober := &fakeProber{results: map[string]ffprobe.Result{"a.mkv": videoResult(1920, 1080)}}
	session := scan.NewSession(scan.Options{Prober: prober})
	if _, err := session.AddFiles(context.Background(), []string{"/x/a.mkv"}); err != nil {
		t.Fatalf("AddFiles returned error: %v", err)
	}

	snapshot := session.Records()
	snapshot[0].Err = "mutated"
	if session.Records()[0].Err != "" {
		t.Fatal("mutating the snapshot must not affect session state")
	}
}
