package timefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

type unit int

const (
	second unit = iota
	minute
	hour
	day
	week
	month
)

// shift moves now back by n units. Months count as 30 days.
func (u unit) shift(now time.Time, n int) time.Time {
	switch u {
	case second:
		return now.Add(-time.Duration(n) * time.Second)
	case minute:
		return now.Add(-time.Duration(n) * time.Minute)
	case hour:
		return now.Add(-time.Duration(n) * time.Hour)
	case day:
		return now.AddDate(0, 0, -n)
	case week:
		return now.AddDate(0, 0, -7*n)
	default:
		return now.AddDate(0, 0, -30*n)
	}
}

type relativePattern struct {
	re   *regexp.Regexp
	unit unit
	// fixed is the count for patterns without a number group.
	fixed int
}

// English patterns are matched against the lowercased input, in order.
var englishPatterns = []relativePattern{
	{re: regexp.MustCompile(`(\d+)\s*days?\s*ago`), unit: day},
	{re: regexp.MustCompile(`a\s*day\s*ago`), unit: day, fixed: 1},
	{re: regexp.MustCompile(`(\d+)\s*hours?\s*ago`), unit: hour},
	{re: regexp.MustCompile(`an?\s*hour\s*ago`), unit: hour, fixed: 1},
	{re: regexp.MustCompile(`(\d+)\s*minutes?\s*ago`), unit: minute},
	{re: regexp.MustCompile(`a\s*minute\s*ago`), unit: minute, fixed: 1},
	{re: regexp.MustCompile(`(\d+)\s*weeks?\s*ago`), unit: week},
	{re: regexp.MustCompile(`a\s*week\s*ago`), unit: week, fixed: 1},
	{re: regexp.MustCompile(`(\d+)\s*months?\s*ago`), unit: month},
	{re: regexp.MustCompile(`a\s*month\s*ago`), unit: month, fixed: 1},
	{re: regexp.MustCompile(`(\d+)\s*seconds?\s*ago`), unit: second},
	{re: regexp.MustCompile(`a\s*second\s*ago`), unit: second, fixed: 1},
}

var chinesePatterns = []relativePattern{
	{re: regexp.MustCompile(`(\d+)\s*天前`), unit: day},
	{re: regexp.MustCompile(`(\d+)\s*小时前`), unit: hour},
	{re: regexp.MustCompile(`(\d+)\s*分钟前`), unit: minute},
	{re: regexp.MustCompile(`(\d+)\s*周前`), unit: week},
	{re: regexp.MustCompile(`(\d+)\s*个?月前`), unit: month},
	{re: regexp.MustCompile(`(\d+)\s*秒前`), unit: second},
}

var todayTokens = map[string]bool{
	"刚刚":       true,
	"刚才":       true,
	"just now": true,
	"now":      true,
	"今天":       true,
	"today":    true,
}

var yesterdayTokens = map[string]bool{
	"昨天":        true,
	"yesterday": true,
}

// ParseRelative resolves expressions such as "3 days ago", "an hour ago",
// "yesterday" or "3天前" against now. It depends only on its arguments.
func ParseRelative(s string, now time.Time) (civil.Date, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))

	if todayTokens[lower] {
		return civil.DateOf(now), true
	}
	if yesterdayTokens[lower] {
		return civil.DateOf(now.AddDate(0, 0, -1)), true
	}

	if d, ok := matchRelative(englishPatterns, lower, now); ok {
		return d, true
	}
	return matchRelative(chinesePatterns, strings.TrimSpace(s), now)
}

func matchRelative(patterns []relativePattern, s string, now time.Time) (civil.Date, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n := p.fixed
		if len(m) > 1 {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				return civil.Date{}, false
			}
			n = v
		}
		return civil.DateOf(p.unit.shift(now, n)), true
	}
	return civil.Date{}, false
}
