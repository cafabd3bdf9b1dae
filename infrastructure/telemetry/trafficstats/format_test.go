package trafficstats

import "testing"

func TestFormatRate(t *testing.T) {
	if got := FormatRate(1200); got != "1.2 KiB/s" {
		t.Fatalf("unexpected rate format: %q", got)
	}
}

func TestFormatTotal(t *testing.T) {
	if got := FormatTotal(3 * 1024 * 1024); got != "3.0 MiB" {
		t.Fatalf("unexpected total format: %q", got)
	}
}

func TestFormatTotal_SmallValue_StaysInBaseUnit(t *testing.T) {
	if got := FormatTotal(500); got != "500 B" {
		t.Fatalf("expected base unit for small value, got %q", got)
	}
}

func TestFormatTotal_LargestUnitCaps(t *testing.T) {
	if got := FormatTotal(5 * 1024 * 1024 * 1024 * 1024); got != "5120.0 GiB" {
		t.Fatalf("expected GiB cap, got %q", got)
	}
}
