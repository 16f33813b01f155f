package analysis

import (
	"testing"
)

func TestAnalyzeConfirmedStrongVolume(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	vc := va.Analyze(2.0, []float64{100, 110, 120, 130, 140}, 0.5)
	if !vc.IsConfirmed {
		t.Error("ratio 2.0 should confirm against default threshold 0.6")
	}
	if vc.VolumeScore != 15 {
		t.Errorf("expected strong-volume bonus 15, got %d", vc.VolumeScore)
	}
	if vc.IsFalseMove || vc.IsDeclining {
		t.Error("unexpected false-move or declining flag")
	}
}

func TestAnalyzeUnconfirmed(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	vc := va.Analyze(0.5, nil, 0.5)
	if vc.IsConfirmed {
		t.Error("ratio 0.5 should not confirm against threshold 0.6")
	}
	if vc.VolumeScore != -20 {
		t.Errorf("expected unconfirmed score -20, got %d", vc.VolumeScore)
	}
}

func TestAnalyzeFalseMove(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	// >1% move on ratio below 0.40: false move dominates the unconfirmed
	// penalty.
	vc := va.Analyze(0.35, nil, 1.5)
	if !vc.IsFalseMove {
		t.Error("expected false move")
	}
	if vc.VolumeScore != -30 {
		t.Errorf("expected false-move score -30, got %d", vc.VolumeScore)
	}

	// Same move on decent volume is not a false move.
	vc = va.Analyze(0.8, nil, 1.5)
	if vc.IsFalseMove {
		t.Error("ratio 0.8 should not flag a false move")
	}

	// Negative moves count by magnitude.
	vc = va.Analyze(0.35, nil, -1.5)
	if !vc.IsFalseMove {
		t.Error("expected false move on sharp drop")
	}
}

func TestAnalyzeDecliningVolume(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	declining := []float64{150, 140, 130, 120, 110}
	vc := va.Analyze(1.0, declining, 0.2)
	if !vc.IsDeclining {
		t.Error("expected declining flag")
	}
	if vc.VolumeScore != -10 {
		t.Errorf("expected declining penalty -10, got %d", vc.VolumeScore)
	}

	// Strong ratio and declining volume combine.
	vc = va.Analyze(1.6, declining, 0.2)
	if vc.VolumeScore != 5 {
		t.Errorf("expected 15 - 10 = 5, got %d", vc.VolumeScore)
	}

	// A single flat step breaks the strict decline.
	vc = va.Analyze(1.0, []float64{150, 140, 140, 120, 110}, 0.2)
	if vc.IsDeclining {
		t.Error("non-strict decline should not flag")
	}

	// Fewer than five points is not enough evidence.
	vc = va.Analyze(1.0, []float64{150, 140, 130}, 0.2)
	if vc.IsDeclining {
		t.Error("short history should not flag declining")
	}
}

func TestSetBenchmarkClamping(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	va.SetBenchmark(0.1)
	if va.Benchmark() != 0.3 {
		t.Errorf("expected clamp to 0.3, got %v", va.Benchmark())
	}
	va.SetBenchmark(5.0)
	if va.Benchmark() != 2.0 {
		t.Errorf("expected clamp to 2.0, got %v", va.Benchmark())
	}
	va.SetBenchmark(1.2)
	if va.Benchmark() != 1.2 {
		t.Errorf("expected 1.2 kept, got %v", va.Benchmark())
	}
}

func TestThresholdFloor(t *testing.T) {
	va := NewVolumeConfirmationAnalyzer()

	// 0.6 x 0.3 = 0.18 would undercut the floor; 0.30 holds.
	va.SetBenchmark(0.3)
	vc := va.Analyze(0.25, nil, 0)
	if vc.Threshold != 0.3 {
		t.Errorf("expected floored threshold 0.3, got %v", vc.Threshold)
	}
	if vc.IsConfirmed {
		t.Error("ratio 0.25 should not clear the floored threshold")
	}

	// High benchmark raises the bar proportionally.
	va.SetBenchmark(2.0)
	vc = va.Analyze(1.0, nil, 0)
	if vc.Threshold != 1.2 {
		t.Errorf("expected threshold 1.2, got %v", vc.Threshold)
	}
	if vc.IsConfirmed {
		t.Error("ratio 1.0 should not clear threshold 1.2")
	}
}
