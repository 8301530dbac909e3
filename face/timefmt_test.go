package face

import (
	"fmt"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		h, m, s int
		want    string
	}{
		{14, 5, 9, "14:05:09\n02:05:09 PM"},
		{0, 0, 0, "00:00:00\n12:00:00 AM"},
		{12, 30, 0, "12:30:00\n12:30:00 PM"},
		{23, 59, 59, "23:59:59\n11:59:59 PM"},
		{9, 7, 3, "09:07:03\n09:07:03 AM"},
	}
	for _, tt := range tests {
		tm := time.Date(2024, time.March, 9, tt.h, tt.m, tt.s, 0, time.UTC)
		if got := FormatTime(tm); got != tt.want {
			t.Fatalf("FormatTime(%02d:%02d:%02d) = %q, want %q", tt.h, tt.m, tt.s, got, tt.want)
		}
	}
}

func TestFormatTimeWholeDay(t *testing.T) {
	base := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	for s := 0; s < 24*60*60; s++ {
		tm := base.Add(time.Duration(s) * time.Second)
		h, m, sec := tm.Clock()
		h12 := h % 12
		if h12 == 0 {
			h12 = 12
		}
		ampm := "AM"
		if h >= 12 {
			ampm = "PM"
		}
		want := fmt.Sprintf("%02d:%02d:%02d\n%02d:%02d:%02d %s", h, m, sec, h12, m, sec, ampm)
		got := FormatTime(tm)
		if got != want {
			t.Fatalf("FormatTime(%s) = %q, want %q", tm.Format(time.TimeOnly), got, want)
		}
		if len(got) >= timeBufLen {
			t.Fatalf("len(FormatTime(%s)) = %d, want < %d", tm.Format(time.TimeOnly), len(got), timeBufLen)
		}
	}
}

func TestLastDigitSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 9: "th", 10: "th",
		11: "st", 12: "nd", 13: "rd",
		21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st",
	}
	for day, want := range tests {
		if got := LastDigitSuffix(day); got != want {
			t.Fatalf("LastDigitSuffix(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 31: "st",
	}
	for day, want := range tests {
		if got := OrdinalSuffix(day); got != want {
			t.Fatalf("OrdinalSuffix(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	// January 2024 starts on a Monday.
	tests := []struct {
		day  int
		want string
	}{
		{1, "Mon Jan 1st"},
		{2, "Tue Jan 2nd"},
		{3, "Wed Jan 3rd"},
		{9, "Tue Jan 9th"},
		{10, "Wed Jan 10th"},
		{11, "Thu Jan 11st"},
		{12, "Fri Jan 12nd"},
		{13, "Sat Jan 13rd"},
		{21, "Sun Jan 21st"},
		{22, "Mon Jan 22nd"},
		{23, "Tue Jan 23rd"},
		{31, "Wed Jan 31st"},
	}
	for _, tt := range tests {
		tm := time.Date(2024, time.January, tt.day, 8, 0, 0, 0, time.UTC)
		if got := FormatDate(tm, nil); got != tt.want {
			t.Fatalf("FormatDate(day %d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestFormatDateEnglishOrdinals(t *testing.T) {
	tm := time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC)
	if got, want := FormatDate(tm, OrdinalSuffix), "Fri Jan 12th"; got != want {
		t.Fatalf("FormatDate = %q, want %q", got, want)
	}
}

func TestFormatDateFitsBuffer(t *testing.T) {
	day := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 366; i++ {
		tm := day.AddDate(0, 0, i)
		for _, suffix := range []Suffixer{LastDigitSuffix, OrdinalSuffix} {
			if got := FormatDate(tm, suffix); len(got) >= dateBufLen {
				t.Fatalf("len(%q) = %d, want < %d", got, len(got), dateBufLen)
			}
		}
	}
}

func TestParseSuffixer(t *testing.T) {
	for _, name := range []string{"", OrdinalsLastDigit} {
		s, err := ParseSuffixer(name)
		if err != nil {
			t.Fatalf("ParseSuffixer(%q): %v", name, err)
		}
		if got := s(11); got != "st" {
			t.Fatalf("ParseSuffixer(%q)(11) = %q, want %q", name, got, "st")
		}
	}

	s, err := ParseSuffixer(OrdinalsEnglish)
	if err != nil {
		t.Fatalf("ParseSuffixer(%q): %v", OrdinalsEnglish, err)
	}
	if got := s(11); got != "th" {
		t.Fatalf("english(11) = %q, want %q", got, "th")
	}

	if _, err := ParseSuffixer("roman"); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}
