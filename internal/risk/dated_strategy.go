package risk

import (
	"regexp"
	"strconv"
	"time"

	"github.com/stoik/emailrisk/internal/domain"
)

var (
	fourDigitYear  = regexp.MustCompile(`(19|20)[0-9]{2}$`)
	twoDigitYear   = regexp.MustCompile(`[._-]?([0-9]{2})$`)
	monthYearText  = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[._-]?(19|20)?[0-9]{2}$`)
	monthYearNum   = regexp.MustCompile(`(0[1-9]|1[0-2])(19|20)[0-9]{2}$`)
	fullDate8Digit = regexp.MustCompile(`(19|20)[0-9]{2}(0[1-9]|1[0-2])(0[1-9]|[12][0-9]|3[01])$`)
	leadingYear    = regexp.MustCompile(`^(19|20)[0-9]{2}`)
)

// datedDetector implements the dated-pattern detector: five
// trailing/mid-string date shapes, year must fall within currentYear ± 5.
type datedDetector struct{}

func (datedDetector) Name() string { return "dated" }

func (datedDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	local := ne.Local
	now := time.Now().Year()

	if m := fullDate8Digit.FindString(local); m != "" {
		year, _ := strconv.Atoi(m[:4])
		if withinYearWindow(year, now) {
			return dated(true, "full_date_8_digit", year, scaleConfidence(0.8, year, now))
		}
	}
	if m := monthYearNum.FindString(local); m != "" {
		year, _ := strconv.Atoi(m[2:])
		if withinYearWindow(year, now) {
			return dated(true, "month_year_numeric", year, scaleConfidence(0.7, year, now))
		}
	}
	if m := monthYearText.FindString(local); m != "" {
		year := parseTrailingYear(m, now)
		if year != 0 && withinYearWindow(year, now) {
			return dated(true, "month_year_text", year, scaleConfidence(0.65, year, now))
		}
	}
	if m := fourDigitYear.FindString(local); m != "" {
		year, _ := strconv.Atoi(m)
		if withinYearWindow(year, now) {
			return dated(true, "trailing_4_digit_year", year, scaleConfidence(0.6, year, now))
		}
	}
	if m := leadingYear.FindString(local); m != "" {
		year, _ := strconv.Atoi(m)
		if withinYearWindow(year, now) {
			// Leading-year placements are scaled down.
			return dated(true, "leading_year", year, 0.5)
		}
	}
	if m := twoDigitYear.FindStringSubmatch(local); m != nil {
		yy, _ := strconv.Atoi(m[1])
		year := resolveTwoDigitYear(yy, now)
		if year >= now-3 && year <= now+3 {
			return dated(true, "trailing_2_digit_year", year, scaleConfidence(0.5, year, now))
		}
	}

	return DetectorResult{Hit: false, Confidence: 0, Raw: domain.DatedResult{}}
}

func (datedDetector) Risk(result DetectorResult) float64 {
	return result.Confidence
}

func dated(hit bool, shape string, year int, confidence float64) DetectorResult {
	r := domain.DatedResult{Hit: hit, Shape: shape, Year: year, Confidence: confidence}
	return DetectorResult{Hit: hit, Confidence: confidence, Raw: r}
}

func withinYearWindow(year, now int) bool {
	return year >= now-5 && year <= now+5
}

// scaleConfidence bumps confidence up when the year equals the current or
// next year, clamped to [0.5, 0.9].
func scaleConfidence(base float64, year, now int) float64 {
	c := base
	if year == now || year == now+1 {
		c += 0.15
	}
	if c < 0.5 {
		c = 0.5
	}
	if c > 0.9 {
		c = 0.9
	}
	return c
}

func resolveTwoDigitYear(yy, now int) int {
	century := (now / 100) * 100
	year := century + yy
	if year > now+50 {
		year -= 100
	}
	return year
}

func parseTrailingYear(s string, now int) int {
	m := fourDigitYear.FindString(s)
	if m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	m2 := regexp.MustCompile(`[0-9]{2}$`).FindString(s)
	if m2 != "" {
		yy, _ := strconv.Atoi(m2)
		return resolveTwoDigitYear(yy, now)
	}
	return 0
}
