package service

import (
	"testing"
	"time"
)

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	r, ok := DayRange(2024, 2, 29, loc)
	if !ok {
		t.Fatalf("expected leap day to be valid")
	}
	if !r.UTC().Start.Equal(time.Date(2024, 2, 29, 5, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", r.UTC().Start)
	}
	if r.End.Sub(r.Start) != 24*time.Hour {
		t.Fatalf("expected a 24h range, got %s", r.End.Sub(r.Start))
	}

	for _, d := range [][3]int{{2023, 2, 29}, {2024, 4, 31}, {2024, 0, 1}, {2024, 1, 0}} {
		if _, ok := DayRange(d[0], d[1], d[2], loc); ok {
			t.Fatalf("expected %v to be rejected", d)
		}
	}
}

func TestHierarchyRange(t *testing.T) {
	year, ok := HierarchyRange(2024, 0, 0, time.UTC)
	if !ok || !year.Contains(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)) || year.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected year range %+v", year)
	}
	month, ok := HierarchyRange(2024, 2, 0, time.UTC)
	if !ok || !month.End.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month range %+v", month)
	}
	if _, ok := HierarchyRange(2024, 0, 3, time.UTC); ok {
		t.Fatalf("expected day without month to be rejected")
	}
	if _, ok := HierarchyRange(2024, 13, 0, time.UTC); ok {
		t.Fatalf("expected month 13 to be rejected")
	}
}

func TestChoiceRange(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		choice string
		start  time.Time
		end    time.Time
	}{
		{DateToday, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)},
		{DatePast7Days, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)},
		{DateThisMonth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{DateThisYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		r, ok := ChoiceRange(tt.choice, now, time.UTC)
		if !ok || !r.Start.Equal(tt.start) || !r.End.Equal(tt.end) {
			t.Fatalf("%s: unexpected range %+v", tt.choice, r)
		}
	}
	if _, ok := ChoiceRange("", now, time.UTC); ok {
		t.Fatalf("expected empty choice to mean no filter")
	}
	if _, ok := ChoiceRange("yesterday", now, time.UTC); ok {
		t.Fatalf("expected unknown choice to be ignored")
	}
}

func TestChoiceRangeUsesSiteTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 3 月 31 日 15:00 UTC 在 UTC+9 下已经是 4 月 1 日
	at := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)

	today, ok := ChoiceRange(DateToday, at, loc)
	if !ok || !today.Start.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, loc)) || today.Start.Location() != loc {
		t.Fatalf("unexpected today range %+v", today)
	}
	month, _ := ChoiceRange(DateThisMonth, at, loc)
	if !month.Start.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, loc)) || !month.End.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected month range %+v", month)
	}
	year, _ := HierarchyRange(2024, 0, 0, loc)
	if !year.UTC().Start.Equal(time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected year start %s", year.UTC().Start)
	}
}
