package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// weekRangeSeparators covers the ASCII and fullwidth separators that appear
// in imported timetable spreadsheets.
var weekRangeSeparators = []string{"，", "、", ";", "；"}

// ExpandWeekRange parses a week-range expression such as "1-5,7-10,15" into
// the sorted, de-duplicated list of week numbers it denotes. Tokens may be
// single weeks or inclusive "a-b" ranges. Malformed tokens are skipped rather
// than failing the whole expression, matching how imported data is handled.
func ExpandWeekRange(expr string) []int {
	normalized := expr
	for _, sep := range weekRangeSeparators {
		normalized = strings.ReplaceAll(normalized, sep, ",")
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(normalized, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if start, end, ok := parseRangeToken(token); ok {
			for w := start; w <= end; w++ {
				seen[w] = struct{}{}
			}
			continue
		}

		if w, err := strconv.Atoi(token); err == nil && w > 0 {
			seen[w] = struct{}{}
		}
	}

	weeks := make([]int, 0, len(seen))
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

func parseRangeToken(token string) (int, int, bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if start <= 0 || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// CompressWeeks renders a list of week numbers back into the compact
// expression form, folding consecutive runs into "a-b" tokens.
func CompressWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return ""
	}

	sorted := make([]int, len(weeks))
	copy(sorted, weeks)
	sort.Ints(sorted)

	deduped := sorted[:1]
	for _, w := range sorted[1:] {
		if w != deduped[len(deduped)-1] {
			deduped = append(deduped, w)
		}
	}

	var tokens []string
	runStart := deduped[0]
	prev := deduped[0]
	flush := func() {
		if runStart == prev {
			tokens = append(tokens, strconv.Itoa(runStart))
		} else {
			tokens = append(tokens, fmt.Sprintf("%d-%d", runStart, prev))
		}
	}
	for _, w := range deduped[1:] {
		if w == prev+1 {
			prev = w
			continue
		}
		flush()
		runStart = w
		prev = w
	}
	flush()

	return strings.Join(tokens, ",")
}
