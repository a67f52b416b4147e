package scale

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestMillisRoundTrip(t *testing.T) {
	ts := date(2024, time.March, 5, 13, 45)
	if got := FromMillis(Millis(ts)); !got.Equal(ts) {
		t.Errorf("FromMillis(Millis(%v)) = %v", ts, got)
	}
}

func TestTimeTicksDaily(t *testing.T) {
	s := NewTime()
	s.SetDomain(Millis(date(2024, time.January, 1, 0, 0)), Millis(date(2024, time.January, 8, 0, 0)))

	ticks := s.Ticks(5)
	if len(ticks) != 8 {
		t.Fatalf("Ticks(5) returned %d ticks, want 8: %v", len(ticks), ticks)
	}
	if got := FromMillis(ticks[0]); !got.Equal(date(2024, time.January, 1, 0, 0)) {
		t.Errorf("first tick = %v, want 2024-01-01", got)
	}
	for i := 1; i < len(ticks); i++ {
		if d := ticks[i] - ticks[i-1]; d != msPerDay {
			t.Errorf("tick spacing %d = %v ms, want one day", i, d)
		}
	}
}

func TestTimeTicksMonthly(t *testing.T) {
	s := NewTime()
	s.SetDomain(Millis(date(2023, time.January, 15, 0, 0)), Millis(date(2023, time.December, 15, 0, 0)))

	ticks := s.Ticks(4)
	if len(ticks) == 0 {
		t.Fatal("Ticks(4) returned no ticks")
	}
	for _, tk := range ticks {
		tt := FromMillis(tk)
		if tt.Day() != 1 || (int(tt.Month())-1)%3 != 0 {
			t.Errorf("tick %v is not a quarter start", tt)
		}
	}
}

func TestTimeNice(t *testing.T) {
	s := NewTime()
	s.SetDomain(Millis(date(2024, time.January, 1, 10, 0)), Millis(date(2024, time.January, 5, 13, 0)))
	s.Nice(5)

	d0, d1 := s.Domain()
	if got := FromMillis(d0); !got.Equal(date(2024, time.January, 1, 0, 0)) {
		t.Errorf("nice start = %v, want 2024-01-01T00:00", got)
	}
	if got := FromMillis(d1); !got.Equal(date(2024, time.January, 6, 0, 0)) {
		t.Errorf("nice stop = %v, want 2024-01-06T00:00", got)
	}
}

func TestTimeMapInvert(t *testing.T) {
	s := NewTime()
	start, stop := date(2024, time.January, 1, 0, 0), date(2024, time.January, 11, 0, 0)
	s.SetDomain(Millis(start), Millis(stop))
	s.SetRange(0, 100)

	mid := date(2024, time.January, 6, 0, 0)
	if got := s.Map(Millis(mid)); !approx(got, 50) {
		t.Errorf("Map(mid) = %v, want 50", got)
	}
	if got := FromMillis(s.Invert(50)); !got.Equal(mid) {
		t.Errorf("Invert(50) = %v, want %v", got, mid)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{date(2024, time.January, 1, 0, 0), "2024"},
		{date(2024, time.March, 1, 0, 0), "March"},
		{date(2024, time.January, 2, 0, 0), "Jan 02"},
		{date(2024, time.January, 2, 15, 0), "3 PM"},
		{date(2024, time.January, 2, 15, 30), "15:30"},
		{time.Date(2024, time.January, 2, 15, 30, 5, 0, time.UTC), ":05"},
	}
	for _, tt := range tests {
		if got := FormatTime(Millis(tt.in)); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
