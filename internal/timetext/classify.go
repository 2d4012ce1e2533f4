package timetext

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	bareClock  = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(?:am|pm)?$`)
	monthName  = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)
	dayNumber  = regexp.MustCompile(`\b\d{1,2}\b`)
	slashDate  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	isoDate    = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	monthIndex = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
)

// verdict is the outcome of one rule: decided reports whether the rule
// applied, today is its answer.
type verdict struct {
	decided bool
	today   bool
}

var (
	undecided = verdict{}
	yes       = verdict{decided: true, today: true}
	no        = verdict{decided: true}
)

func decide(b bool) verdict {
	if b {
		return yes
	}
	return no
}

// rule inspects normalised text; lower is its lower-cased form.
type rule func(text, lower string, now time.Time) verdict

// rules are evaluated top to bottom, the first decided verdict wins.
var rules = []rule{
	keywordYesterday,
	keywordToday,
	clockOnly,
	monthAndDay,
	slashSeparated,
	isoCalendar,
	generalParse,
}

// IsToday reports whether text names a moment on now's calendar day.
// Anything it cannot confidently place on that day is reported as false.
func IsToday(text string, now time.Time) (today bool) {
	defer func() {
		if recover() != nil {
			today = false
		}
	}()

	text = Normalize(text)
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, r := range rules {
		if v := r(text, lower, now); v.decided {
			return v.today
		}
	}
	return false
}

func keywordYesterday(_, lower string, _ time.Time) verdict {
	if strings.Contains(lower, "yesterday") {
		return no
	}
	return undecided
}

func keywordToday(_, lower string, _ time.Time) verdict {
	if strings.Contains(lower, "today") {
		return yes
	}
	return undecided
}

// clockOnly treats a bare time of day as today, which is how the inbox
// renders messages received on the current day.
func clockOnly(text, _ string, _ time.Time) verdict {
	if bareClock.MatchString(text) {
		return yes
	}
	return undecided
}

// monthAndDay matches "Sep 6", "6 September" and the like. The year is not
// compared.
func monthAndDay(_, lower string, now time.Time) verdict {
	m := monthName.FindStringSubmatch(lower)
	if m == nil {
		return undecided
	}
	month := monthIndex[m[1][:3]]

	day, ok := standaloneDay(lower)
	if !ok {
		return undecided
	}
	return decide(day == now.Day() && month == now.Month())
}

// standaloneDay returns the first 1-2 digit number that is not part of a
// clock time.
func standaloneDay(s string) (int, bool) {
	for _, loc := range dayNumber.FindAllStringIndex(s, -1) {
		if loc[0] > 0 && s[loc[0]-1] == ':' {
			continue
		}
		if loc[1] < len(s) && s[loc[1]] == ':' {
			continue
		}
		d, err := strconv.Atoi(s[loc[0]:loc[1]])
		if err == nil {
			return d, true
		}
	}
	return 0, false
}

// slashSeparated accepts both month/day and day/month orders.
func slashSeparated(_, lower string, now time.Time) verdict {
	m := slashDate.FindStringSubmatch(lower)
	if m == nil {
		return undecided
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	if year != now.Year() {
		return no
	}
	monthDay := time.Month(a) == now.Month() && b == now.Day()
	dayMonth := time.Month(b) == now.Month() && a == now.Day()
	return decide(monthDay || dayMonth)
}

// isoCalendar requires the year to match, unlike the month-name and slash rules.
func isoCalendar(_, lower string, now time.Time) verdict {
	m := isoDate.FindStringSubmatch(lower)
	if m == nil {
		return undecided
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return decide(y == now.Year() && time.Month(mo) == now.Month() && d == now.Day())
}

func generalParse(text, _ string, now time.Time) verdict {
	t, err := dateparse.ParseIn(text, now.Location())
	if err != nil {
		return undecided
	}
	return decide(sameDay(t, now))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
