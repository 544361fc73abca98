// Package phenology resolves a season's predicted growth-stage interval
// for a given date. All functions are pure: no I/O, no clock, no errors.
package phenology

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/croftview/fieldops-backend-go/internal/models"
)

// FindStageIndex resolves the growth-stage index covering target, or ""
// when no interval matches. Intervals are scanned in the order given;
// callers supply them sorted ascending by start date, so the first
// containing interval wins. Both target and interval bounds are
// normalized to the same civil calendar day in UTC. An interval's
// EndDate is exclusive (last covered day is EndDate-1); an absent or
// unparseable EndDate means open-ended. Intervals with an unparseable
// StartDate never match. The returned index has any leading non-numeric
// scale prefix stripped ("BBCH 31" yields "31").
func FindStageIndex(intervals []models.StageInterval, target time.Time) string {
	day := CivilDay(target)

	for _, iv := range intervals {
		start, ok := parseCivilDate(iv.StartDate)
		if !ok {
			continue
		}
		if day.Before(start) {
			continue
		}
		if iv.EndDate != nil {
			end, ok := parseCivilDate(*iv.EndDate)
			if ok && !day.Before(end) {
				continue
			}
		}
		return StripScalePrefix(iv.Index)
	}

	return ""
}

// SortIntervalsByStart stably sorts intervals ascending by start date,
// unparseable start dates last. FindStageIndex relies on this order for
// its first-match rule.
func SortIntervalsByStart(intervals []models.StageInterval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		si, oki := parseCivilDate(intervals[i].StartDate)
		sj, okj := parseCivilDate(intervals[j].StartDate)
		if !oki || !okj {
			return oki && !okj
		}
		return si.Before(sj)
	})
}

// StripScalePrefix drops a leading non-numeric scale label from a stage
// index, keeping the text from the first digit on. Indices without any
// digit are returned unchanged.
func StripScalePrefix(index string) string {
	for i, r := range index {
		if r >= '0' && r <= '9' {
			return index[i:]
		}
	}
	return index
}

// StageIndexValue returns the numeric value of a stage index for
// ordering purposes: the leading numeric run of the stripped index, or
// +Inf when no number can be parsed. Numeric ordering is required
// because lexical order would place "10" before "2".
func StageIndexValue(index string) float64 {
	s := StripScalePrefix(index)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot && end+1 < len(s) && s[end+1] >= '0' && s[end+1] <= '9' {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// SortStageIndices sorts stage indices in place by numeric value,
// unparseable indices last. The sort is stable so equal-valued indices
// keep their input order.
func SortStageIndices(indices []string) {
	sort.SliceStable(indices, func(i, j int) bool {
		return StageIndexValue(indices[i]) < StageIndexValue(indices[j])
	})
}

// CivilDay truncates an instant to its UTC civil calendar day. The core
// uses one authoritative local day so results do not depend on the
// caller's timezone.
func CivilDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateLayout is the civil-date form used by stage intervals.
const DateLayout = "2006-01-02"

func parseCivilDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
