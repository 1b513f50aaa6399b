package dateparse

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseUK(t *testing.T) {
	p := New(UKLayouts)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"day month year", "5 February 2026", date(2026, time.February, 5)},
		{"abbreviated month", "5 Feb 2026", date(2026, time.February, 5)},
		{"ordinal suffix", "5th February 2026", date(2026, time.February, 5)},
		{"leading weekday", "Thursday, 5 February 2026", date(2026, time.February, 5)},
		{"trailing clock", "5 February 2026 09:30", date(2026, time.February, 5)},
		{"iso", "2026-02-05", date(2026, time.February, 5)},
		{"slash day first", "05/02/2026", date(2026, time.February, 5)},
		{"iso timestamp", "2026-02-05T14:30:00", date(2026, time.February, 5)},
		{"embedded date", "Published on 5 February 2026 by the Bank", date(2026, time.February, 5)},
		{"surrounding whitespace", "  5 February 2026\n", date(2026, time.February, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.in)
			if !ok {
				t.Fatalf("Parse(%q) failed", tt.in)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseUS(t *testing.T) {
	p := New(USLayouts)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"month day year", "February 5, 2026", date(2026, time.February, 5)},
		{"no space after comma", "February 5,2026", date(2026, time.February, 5)},
		{"slash month first", "02/05/2026", date(2026, time.February, 5)},
		{"embedded date", "Speech -- February 5, 2026 -- At the conference", date(2026, time.February, 5)},
		{"iso slash", "2026/02/05", date(2026, time.February, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.in)
			if !ok {
				t.Fatalf("Parse(%q) failed", tt.in)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOrdinalDoesNotMangleMonths(t *testing.T) {
	// "st" appears inside "August"; the suffix strip only fires after a digit.
	p := New(UKLayouts)
	got, ok := p.Parse("21st August 2026")
	if !ok {
		t.Fatal("Parse failed")
	}
	if want := date(2026, time.August, 21); !got.Equal(want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParseRejects(t *testing.T) {
	p := New(UKLayouts)

	for _, in := range []string{
		"",
		"not a date",
		"5 Frobuary 2026",
		"Chair's opening remarks",
	} {
		if got, ok := p.Parse(in); ok {
			t.Errorf("Parse(%q) = %v, want failure", in, got)
		}
	}
}

func TestParseMidnightUTC(t *testing.T) {
	p := New(USLayouts)
	got, ok := p.Parse("2026-02-05T14:30:00")
	if !ok {
		t.Fatal("Parse failed")
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.UTC {
		t.Errorf("Parse = %v, want UTC midnight", got)
	}
}
