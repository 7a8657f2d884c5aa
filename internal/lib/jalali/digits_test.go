package jalali

import "testing"

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "persian digits", in: "۱۴۰۳/۰۱/۰۲", want: "1403/01/02"},
		{name: "arabic digits", in: "١٤٠٣", want: "1403"},
		{name: "ascii passthrough", in: "2024-03-20", want: "2024-03-20"},
		{name: "mixed", in: "ساعت ۱۴:۳۰", want: "ساعت 14:30"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDigits(tt.in); got != tt.want {
				t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Идемпотентность: повторное применение ничего не меняет.
func TestNormalizeDigits_Idempotent(t *testing.T) {
	inputs := []string{"۱۴۰۳/۰۱/۰۲", "2024-03-20", "abc", "١٢٣۴۵"}
	for _, s := range inputs {
		once := NormalizeDigits(s)
		twice := NormalizeDigits(once)
		if once != twice {
			t.Errorf("NormalizeDigits not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestToPersianDigits(t *testing.T) {
	if got := ToPersianDigits("1403/01/02"); got != "۱۴۰۳/۰۱/۰۲" {
		t.Errorf("ToPersianDigits = %q", got)
	}
	if got := NormalizeDigits(ToPersianDigits("09123456789")); got != "09123456789" {
		t.Errorf("round trip through persian digits broke the value: %q", got)
	}
}
