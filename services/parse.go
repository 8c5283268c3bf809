package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"playstore-analytics/models"
)

// sizeSentinel is the Size value used for apps whose binary differs per device.
const sizeSentinel = "Varies with device"

var (
	errNegative   = errors.New("negative value")
	errNotFinite  = errors.New("not a finite number")
	errNoLetter   = errors.New("does not start with a letter")
	errOverflow   = errors.New("overflows int64")
	installsStrip = strings.NewReplacer("+", "", ",", "")

	// missingTokens are the cell values read as "no data".
	missingTokens = map[string]struct{}{
		"": {}, "NaN": {}, "nan": {}, "NA": {}, "N/A": {}, "n/a": {},
		"null": {}, "NULL": {}, "#N/A": {},
	}
)

// encoding is the shape of a free-text numeric cell. Each cell is
// classified exactly once from its original text, so a value can never
// be converted by two unit rules.
type encoding int

const (
	plainNumber encoding = iota
	kSuffix
	mSuffix
	sentinel
)

// numericText is a classified cell: its encoding plus the numeric prefix.
type numericText struct {
	kind   encoding
	digits string
}

// unitScale gives the multiplier applied to each suffixed encoding.
type unitScale map[encoding]float64

var (
	sizeUnits   = unitScale{kSuffix: 1024, mSuffix: 1024 * 1024}
	reviewUnits = unitScale{mSuffix: 1_000_000}
)

func classifySize(s string) numericText {
	switch {
	case s == sizeSentinel:
		return numericText{kind: sentinel}
	case strings.HasSuffix(s, "k"):
		return numericText{kind: kSuffix, digits: strings.TrimSuffix(s, "k")}
	case strings.HasSuffix(s, "M"):
		return numericText{kind: mSuffix, digits: strings.TrimSuffix(s, "M")}
	default:
		return numericText{kind: plainNumber, digits: s}
	}
}

func classifyReviews(s string) numericText {
	if strings.HasSuffix(s, "M") {
		return numericText{kind: mSuffix, digits: strings.TrimSuffix(s, "M")}
	}
	return numericText{kind: plainNumber, digits: s}
}

// value decodes n, scaling suffixed encodings by units.
func (n numericText) value(units unitScale) (float64, error) {
	if n.kind == sentinel {
		return 0, nil
	}
	f, err := parseNonNegative(n.digits)
	if err != nil {
		return 0, err
	}
	if mult, ok := units[n.kind]; ok {
		f *= mult
		if math.IsInf(f, 0) {
			return 0, errNotFinite
		}
	}
	return f, nil
}

func parseNonNegative(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

// parseReviews accepts a plain integer or an "M"-suffixed count of millions.
//
//	"521"  → 521
//	"4.3M" → 4300000
func parseReviews(raw string) (int64, error) {
	n := classifyReviews(strings.TrimSpace(raw))
	if n.kind == plainNumber {
		return parseCount(n.digits)
	}
	f, err := n.value(reviewUnits)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if math.Round(f) >= math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(math.Round(f)), nil
}

// parseInstalls strips "+" and thousands separators: "10,000+" → 10000.
func parseInstalls(raw string) (int64, error) {
	return parseCount(installsStrip.Replace(strings.TrimSpace(raw)))
}

// parseSize converts a size cell to bytes.
//
//	"14k"                → 14336
//	"19M"                → 19922944
//	"Varies with device" → 0
func parseSize(raw string) (float64, error) {
	return classifySize(strings.TrimSpace(raw)).value(sizeUnits)
}

// parsePrice maps "Free" to 0 and strips a leading "$".
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "Free" {
		return 0, nil
	}
	return parseNonNegative(strings.TrimPrefix(s, "$"))
}

// parseRating reports whether raw is a usable rating in [0, 5].
func parseRating(raw string) (float64, bool) {
	f, err := parseNonNegative(strings.TrimSpace(raw))
	if err != nil || f > 5 {
		return 0, false
	}
	return f, true
}

// normalizeCategory turns "ART_AND_DESIGN" into "Art and design".
func normalizeCategory(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return strings.ToLower(s)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// validCategory reports whether a normalized category starts with an
// uppercase letter.
func validCategory(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func distribution(price float64) string {
	if price > 0 {
		return models.DistributionPaid
	}
	return models.DistributionFree
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}
