package jalali

import (
	"testing"
	"time"
)

func TestToGregorian_KnownDates(t *testing.T) {
	tests := []struct {
		name       string
		jy, jm, jd int
		gy, gm, gd int
	}{
		{name: "nowruz 1403", jy: 1403, jm: 1, jd: 1, gy: 2024, gm: 3, gd: 20},
		{name: "nowruz 1400", jy: 1400, jm: 1, jd: 1, gy: 2021, gm: 3, gd: 21},
		{name: "second day of 1403", jy: 1403, jm: 1, jd: 2, gy: 2024, gm: 3, gd: 21},
		{name: "leap esfand 30", jy: 1403, jm: 12, jd: 30, gy: 2025, gm: 3, gd: 20},
		{name: "nowruz 1404", jy: 1404, jm: 1, jd: 1, gy: 2025, gm: 3, gd: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gy, gm, gd := ToGregorian(tt.jy, tt.jm, tt.jd)
			if gy != tt.gy || gm != tt.gm || gd != tt.gd {
				t.Errorf("ToGregorian(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.jy, tt.jm, tt.jd, gy, gm, gd, tt.gy, tt.gm, tt.gd)
			}
		})
	}
}

func TestFromGregorian_KnownDates(t *testing.T) {
	tests := []struct {
		name       string
		gy, gm, gd int
		jy, jm, jd int
	}{
		{name: "nowruz 1403", gy: 2024, gm: 3, gd: 20, jy: 1403, jm: 1, jd: 1},
		{name: "leap esfand 30", gy: 2025, gm: 3, gd: 20, jy: 1403, jm: 12, jd: 30},
		{name: "mid autumn", gy: 2024, gm: 11, gd: 1, jy: 1403, jm: 8, jd: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jy, jm, jd := FromGregorian(tt.gy, tt.gm, tt.gd)
			if jy != tt.jy || jm != tt.jm || jd != tt.jd {
				t.Errorf("FromGregorian(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.gy, tt.gm, tt.gd, jy, jm, jd, tt.jy, tt.jm, tt.jd)
			}
		})
	}
}

// Закон обратимости: для любой корректной даты джалали в диапазоне
// 1300–1500 преобразование туда и обратно восстанавливает исходные
// значения.
func TestRoundTrip(t *testing.T) {
	years := []int{1300, 1320, 1345, 1375, 1399, 1403, 1404, 1450, 1475, 1500}

	for _, jy := range years {
		for jm := 1; jm <= 12; jm++ {
			days := jDaysInMonth[jm-1]
			for _, jd := range []int{1, 15, days} {
				gy, gm, gd := ToGregorian(jy, jm, jd)
				backY, backM, backD := FromGregorian(gy, gm, gd)
				if backY != jy || backM != jm || backD != jd {
					t.Fatalf("round trip failed: %d/%d/%d -> %d-%d-%d -> %d/%d/%d",
						jy, jm, jd, gy, gm, gd, backY, backM, backD)
				}
			}
		}
	}
}

func TestRoundTrip_GregorianSide(t *testing.T) {
	// Каждый день на отрезке в несколько лет, включая 29 февраля.
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		jy, jm, jd := FromGregorian(d.Year(), int(d.Month()), d.Day())
		gy, gm, gd := ToGregorian(jy, jm, jd)
		if gy != d.Year() || gm != int(d.Month()) || gd != d.Day() {
			t.Fatalf("gregorian round trip failed for %s: jalali %d/%d/%d -> %d-%d-%d",
				d.Format("2006-01-02"), jy, jm, jd, gy, gm, gd)
		}
	}
}

func TestFromTime(t *testing.T) {
	// 20 марта 2024 — среда.
	d := FromTime(time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC))

	if d.JalaliYear != 1403 || d.JalaliMonth != 1 || d.JalaliDay != 1 {
		t.Errorf("unexpected jalali date: %d/%d/%d", d.JalaliYear, d.JalaliMonth, d.JalaliDay)
	}
	if d.Weekday != 4 {
		t.Errorf("Weekday = %d, want 4 (Wednesday)", d.Weekday)
	}
	if name := WeekdayName(d.Weekday); name != "Wednesday" {
		t.Errorf("WeekdayName(%d) = %q, want Wednesday", d.Weekday, name)
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "Farvardin" {
		t.Errorf("MonthName(1) = %q", got)
	}
	if got := MonthName(12); got != "Esfand" {
		t.Errorf("MonthName(12) = %q", got)
	}
	if got := MonthName(0); got != "" {
		t.Errorf("MonthName(0) = %q, want empty", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("MonthName(13) = %q, want empty", got)
	}
}
