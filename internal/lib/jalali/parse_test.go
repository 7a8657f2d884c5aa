package jalali

import "testing"

func TestConvertDateStringToGregorian(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "gregorian passthrough", in: "2024-03-20", want: "2024-03-20", wantOK: true},
		{name: "jalali slash", in: "1403/01/01", want: "2024-03-20", wantOK: true},
		{name: "jalali short parts", in: "1403/1/2", want: "2024-03-21", wantOK: true},
		{name: "jalali dash separators", in: "1403-01-01", want: "2024-03-20", wantOK: true},
		{name: "jalali persian digits", in: "۱۴۰۳/۰۱/۰۲", want: "2024-03-21", wantOK: true},
		{name: "gregorian slash outside jalali range", in: "2024/03/20", want: "2024-03-20", wantOK: true},
		{name: "year below jalali range stays gregorian", in: "1299/01/01", want: "1299-01-01", wantOK: true},
		{name: "year above jalali range stays gregorian", in: "1501/01/01", want: "1501-01-01", wantOK: true},
		{name: "datetime fallback", in: "2024-03-20 14:30:00", want: "2024-03-20", wantOK: true},
		{name: "garbage", in: "not-a-date", wantOK: false},
		{name: "empty", in: "", wantOK: false},
		{name: "whitespace only", in: "   ", wantOK: false},
		{name: "month out of range", in: "1403/13/01", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertDateStringToGregorian(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ConvertDateStringToGregorian(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ConvertDateStringToGregorian(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitDateTime(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDate string
		wantTime string
	}{
		{name: "space separated", in: "2024-03-20 10:00:00", wantDate: "2024-03-20", wantTime: "10:00"},
		{name: "T separated", in: "2024-03-20T09:30", wantDate: "2024-03-20", wantTime: "09:30"},
		{name: "date only", in: "1403/01/02", wantDate: "1403/01/02", wantTime: ""},
		{name: "persian digits", in: "۱۴۰۳/۰۱/۰۲ ۱۴:۳۰", wantDate: "1403/01/02", wantTime: "14:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime := SplitDateTime(tt.in)
			if gotDate != tt.wantDate || gotTime != tt.wantTime {
				t.Errorf("SplitDateTime(%q) = (%q, %q), want (%q, %q)",
					tt.in, gotDate, gotTime, tt.wantDate, tt.wantTime)
			}
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "9:5", want: "09:05", wantOK: true},
		{in: "14:30", want: "14:30", wantOK: true},
		{in: "14:30:00", want: "14:30", wantOK: true},
		{in: "۱۴:۳۰", want: "14:30", wantOK: true},
		{in: "24:00", wantOK: false},
		{in: "nope", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := NormalizeClock(tt.in)
		if ok != tt.wantOK {
			t.Fatalf("NormalizeClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
		if ok && got != tt.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
