package store

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestResultsDB(t *testing.T) {
	rdb, err := NewResultsDB(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("NewResultsDB: %v", err)
	}
	defer rdb.Close()

	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	runID, err := rdb.BeginRun(start, 8)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	records := []Record{
		{RunID: runID, Image: "carrots", Width: 512, Height: 512, Codec: "BC1", Encoder: "bcenc", Param: "18", Seconds: 0.012, Score: 71.5, Bytes: 131072, ZstdBytes: 120000},
		{RunID: runID, Image: "carrots", Width: 512, Height: 512, Codec: "BC7", Encoder: "bcenc", Seconds: 0.2, Score: 88.25, Bytes: 262144, ZstdBytes: 250000},
	}
	for _, r := range records {
		if err := rdb.PutResult(r); err != nil {
			t.Fatalf("PutResult: %v", err)
		}
	}
	if err := rdb.FinishRun(runID, start.Add(time.Minute)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	got, err := rdb.ListResults(runID)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d results, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], records[i])
		}
	}

	other, err := rdb.ListResults(runID + 1)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unexpected results for unknown run: %v", other)
	}
}

func TestZstdRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("BC7 block payload "), 512)
	comp, err := ZstdCompress(data)
	if err != nil {
		t.Fatalf("ZstdCompress: %v", err)
	}
	if len(comp) >= len(data) {
		t.Errorf("repetitive data did not shrink: %d >= %d", len(comp), len(data))
	}
	back, err := ZstdDecompress(comp)
	if err != nil {
		t.Fatalf("ZstdDecompress: %v", err)
	}
	if !bytes.Equal(back, data) {
		t.Error("round trip changed data")
	}
	n, err := ZstdSize(data)
	if err != nil || n != len(comp) {
		t.Errorf("ZstdSize = %d, %v; want %d", n, err, len(comp))
	}
}
