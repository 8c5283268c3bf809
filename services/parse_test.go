package services

import (
	"errors"
	"testing"
)

func TestParseReviews(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"521", 521, false},
		{"4.3M", 4300000, false},
		{"3.0M", 3000000, false},
		{"0", 0, false},
		{" 42 ", 42, false},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"M", 0, true},
		{"-3", 0, true},
		{"-1M", 0, true},
		{"9223372036854.775807M", 0, true},
		{"9223372036854.7758M", 0, true},
		{"9223372036854.776M", 0, true},
		{"1e300M", 0, true},
	}

	for _, tt := range tests {
		got, err := parseReviews(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseReviews(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReviews(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseInstalls(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"10,000+", 10000, false},
		{"1,000,000,000+", 1000000000, false},
		{"0", 0, false},
		{"500", 500, false},
		{"Free", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseInstalls(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseInstalls(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseInstalls(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"14k", 14336, false},
		{"19M", 19922944, false},
		{"8.5k", 8704, false},
		{"1.5M", 1572864, false},
		{"Varies with device", 0, false},
		{"2048", 2048, false},
		{"1,000+", 0, true},
		{"k", 0, true},
		{"-2M", 0, true},
		{"1e308M", 0, true},
		{"1e308k", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSize(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSize(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestParseReviewsNeverNegative(t *testing.T) {
	for _, raw := range []string{"9223372036854.775807M", "9223372036854.776M", "1e19M"} {
		n, err := parseReviews(raw)
		if !errors.Is(err, errOverflow) {
			t.Errorf("parseReviews(%q) error = %v; want errOverflow", raw, err)
		}
		if n < 0 {
			t.Errorf("parseReviews(%q) = %d; must not be negative", raw, n)
		}
	}
}

func TestParseSizeRejectsInfiniteAfterScaling(t *testing.T) {
	if _, err := parseSize("1e308M"); !errors.Is(err, errNotFinite) {
		t.Errorf("parseSize(1e308M) error = %v; want errNotFinite", err)
	}
}

func TestClassifySizeUsesOriginalText(t *testing.T) {
	// A mega value must be scaled once, never also by the kilo rule.
	if n := classifySize("2M"); n.kind != mSuffix || n.digits != "2" {
		t.Errorf("classifySize(2M) = %+v", n)
	}
	if n := classifySize("Varies with device"); n.kind != sentinel {
		t.Errorf("sentinel classified as %d", n.kind)
	}
	if n := classifySize("512"); n.kind != plainNumber {
		t.Errorf("plain classified as %d", n.kind)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw      string
		want     float64
		wantDist string
		wantErr  bool
	}{
		{"Free", 0, "Free", false},
		{"0", 0, "Free", false},
		{"$4.99", 4.99, "Paid", false},
		{"$399.99", 399.99, "Paid", false},
		{"Everyone", 0, "", true},
		{"$", 0, "", true},
		{"NaN", 0, "", true},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePrice(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
		if d := distribution(got); d != tt.wantDist {
			t.Errorf("distribution(%q) = %q; want %q", tt.raw, d, tt.wantDist)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"4.1", 4.1, true},
		{"5", 5, true},
		{"0", 0, true},
		{"19", 0, false},
		{"5.01", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseRating(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseRating(%q) = %.2f, %v; want %.2f, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ART_AND_DESIGN", "Art and design"},
		{"GAME", "Game"},
		{"Art and design", "Art and design"},
		{"video_players", "Video players"},
		{" GAME ", "Game"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeCategory(tt.raw); got != tt.want {
			t.Errorf("normalizeCategory(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NaN", "nan", "N/A", "null"} {
		if !isMissing(s) {
			t.Errorf("isMissing(%q) = false; want true", s)
		}
	}
	for _, s := range []string{"0", "Free", "Varies with device", "Everyone"} {
		if isMissing(s) {
			t.Errorf("isMissing(%q) = true; want false", s)
		}
	}
}

func TestFieldCoercionErrorUnwraps(t *testing.T) {
	err := &FieldCoercionError{Line: 7, App: "X", Field: "Price", Value: "-1", Err: errNegative}
	if !errors.Is(err, errNegative) {
		t.Errorf("expected errNegative in chain")
	}
	want := `line 7 (X): cannot coerce Price "-1": negative value`
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}
