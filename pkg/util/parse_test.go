package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseFloatPlain(t *testing.T) {
	got, ok := ParseFloat("100.5")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 100.5 {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestParseFloatDirty(t *testing.T) {
	cases := map[string]float64{
		" 42.0 ":    42.0,
		"$1,250.75": 1250.75,
		"3.2%":      3.2,
		"-1.5":      -1.5,
	}
	for in, want := range cases {
		got, ok := ParseFloat(in)
		if !ok {
			t.Errorf("ParseFloat(%q): expected ok", in)
			continue
		}
		if got != want {
			t.Errorf("ParseFloat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFloatInvalid(t *testing.T) {
	for _, in := range []string{"", "n/a", "abc", "--"} {
		if _, ok := ParseFloat(in); ok {
			t.Errorf("ParseFloat(%q): expected failure", in)
		}
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeSQL(t *testing.T) {
	got, ok := ParseTime("2024-10-10 10:10:10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 10 || got.Year() != 2024 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, ok := ParseTime("not-a-time"); ok {
		t.Fatal("expected failure")
	}
	if _, ok := ParseTime(""); ok {
		t.Fatal("expected failure")
	}
}
