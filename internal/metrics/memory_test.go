package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.Goroutines < 1 {
		t.Error("Goroutines should be >= 1")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	_ = make([]byte, 1024*1024)
	after := mc.Snapshot()

	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
}

func TestMemorySnapshot_GCSince(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{NumGC: 3}
	after := MemorySnapshot{NumGC: 7}
	if got := after.GCSince(before); got != 4 {
		t.Errorf("GCSince = %d, want 4", got)
	}
	if got := before.GCSince(after); got != 0 {
		t.Errorf("GCSince = %d, want 0", got)
	}
}
