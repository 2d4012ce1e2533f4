package timetext

import (
	"testing"
	"time"
)

var refNow = time.Date(2025, time.September, 6, 14, 0, 0, 0, time.UTC)

func TestIsToday(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace", "    \t ", false},
		{"today keyword", "today", true},
		{"today any case", "ToDaY", true},
		{"today with extra", "Today, 9:15 AM", true},
		{"yesterday keyword", "yesterday", false},
		{"yesterday wins over today", "yesterday not today", false},
		{"yesterday with time", "Yesterday 10:30 PM", false},
		{"bare clock am", "10:30 AM", true},
		{"bare clock no suffix", "9:05", true},
		{"bare clock narrow nbsp", "10:30\u202fAM", true},
		{"bare clock lower pm", "7:45pm", true},
		{"month day match", "Sep 6", true},
		{"month day other day", "Sep 7", false},
		{"month day other month", "Aug 6", false},
		{"day month", "6 Sep", true},
		{"long month", "September 6", true},
		{"month day with other year", "Sep 6, 2019", true},
		{"month day with clock", "Sat, Sep 6, 2025, 10:30 AM", true},
		{"clock before month", "10:30 AM Sep 6", true},
		{"slash month day", "9/6/2025", true},
		{"slash day month", "6/9/2025", true},
		{"slash no year", "9/6", true},
		{"slash short year", "9/6/25", true},
		{"slash wrong year", "9/6/2024", false},
		{"slash wrong day", "9/7/2025", false},
		{"iso match", "2025-09-06", true},
		{"iso previous day", "2025-09-05", false},
		{"iso other year", "2024-09-06", false},
		{"compact date", "20250906", true},
		{"dotted date", "2025.09.06", true},
		{"dotted previous day", "2025.09.05", false},
		{"noise", "hello there", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsToday(tt.text, refNow); got != tt.want {
				t.Errorf("IsToday(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsTodayKeywordsIgnoreReference(t *testing.T) {
	for _, now := range []time.Time{
		refNow,
		time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2030, time.February, 28, 0, 0, 0, 0, time.FixedZone("x", 5*3600)),
	} {
		if !IsToday("TODAY", now) {
			t.Errorf("IsToday(TODAY, %v) = false", now)
		}
		if IsToday("Yesterday", now) {
			t.Errorf("IsToday(Yesterday, %v) = true", now)
		}
		if !IsToday("10:30 AM", now) {
			t.Errorf("IsToday(10:30 AM, %v) = false", now)
		}
	}
}
