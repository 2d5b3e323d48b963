package quote

import (
	"reflect"
	"testing"
)

func TestSplitTickRange(t *testing.T) {
	got, err := SplitTickRange(-3, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []TickRange{
		{From: -3, To: -2},
		{From: -1, To: 0},
		{From: 1, To: 2},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitTickRangeSingle(t *testing.T) {
	got, err := SplitTickRange(5, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []TickRange{{From: 5, To: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitTickRangeFullDomain(t *testing.T) {
	got, err := SplitTickRange(-887272, 887272, 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []TickRange{
		{From: -887272, To: 161303},
		{From: 161304, To: 887272},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitTickRangeInvalid(t *testing.T) {
	if _, err := SplitTickRange(10, 9, 1); err == nil {
		t.Fatalf("expected error for invalid range")
	}
	if _, err := SplitTickRange(1, 10, 0); err == nil {
		t.Fatalf("expected error for zero batch size")
	}
}
