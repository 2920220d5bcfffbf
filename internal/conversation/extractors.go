package conversation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ---------- package-level compiled regexes ----------

var (
	whitespaceRE = regexp.MustCompile(`\s+`)

	nameRE = regexp.MustCompile(`\b(?:i am|i'm|this is|my name is)\s+([a-z][a-z\s'.-]{1,30})`)

	guestsRE = regexp.MustCompile(`\b(\d{1,4})\s*(?:guests|people|pax|persons|heads|attendees)?\b`)

	dateNumericRE = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`)
	dateMonthRE   = regexp.MustCompile(`(?i)\b(\d{1,2}\s*(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s*(\d{2,4})?)\b`)
	dateISORE     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)

	timeRangeRE = regexp.MustCompile(`\b(\d{1,2})(?:\s*[:.]\s*(\d{2}))?\s*(am|pm)?\s*[-?to]+\s*(\d{1,2})(?:\s*[:.]\s*(\d{2}))?\s*(am|pm)?\b`)

	decorWordRE = regexp.MustCompile(`\b(decoration|decor|decorate)\b`)
	noWordRE    = regexp.MustCompile(`\bno\b`)
	yesWordRE   = regexp.MustCompile(`\byes\b`)

	contactStripRE = regexp.MustCompile(`[()\s-]`)
	contactRE      = regexp.MustCompile(`\+?\d{10,15}`)
)

// normalize lowercases text, collapses whitespace runs to single spaces and
// trims the ends. Total; never fails.
func normalize(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(strings.ToLower(s), " "))
}

// extractName matches self-introduction phrasing and title-cases the result.
func extractName(text string) string {
	m := nameRE.FindStringSubmatch(normalize(text))
	if m == nil {
		return ""
	}
	return capitalizeWords(strings.TrimSpace(m[1]))
}

// capitalizeWords uppercases every letter that starts a word, where word
// starts follow spaces, apostrophes, periods and hyphens.
func capitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			r = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}

// occasionKeywords is checked in order; the first keyword found in the
// message decides the occasion.
var occasionKeywords = []struct {
	keyword  string
	occasion Occasion
}{
	{"birthday", OccasionBirthday},
	{"baby shower", OccasionBabyShower},
	{"engagement", OccasionEngagement},
	{"anniversary", OccasionAnniversary},
	{"corporate", OccasionCorporate},
}

var otherOccasionKeywords = []string{"party", "function", "event"}

func extractOccasion(text string) Occasion {
	t := normalize(text)
	for _, entry := range occasionKeywords {
		if strings.Contains(t, entry.keyword) {
			return entry.occasion
		}
	}
	for _, kw := range otherOccasionKeywords {
		if strings.Contains(t, kw) {
			return OccasionOther
		}
	}
	return ""
}

// extractGuests matches a 1-4 digit count, optionally followed by a count
// noun. Zero and negative counts are rejected.
func extractGuests(text string) int {
	m := guestsRE.FindStringSubmatch(normalize(text))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// extractDate tries numeric D/M[/Y], then "D monthname [year]", then ISO
// YYYY-MM-DD. The date is kept as the literal matched token; no calendar
// validation ("31/02" is accepted as-is).
func extractDate(text string) string {
	if m := dateNumericRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := dateMonthRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := dateISORE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractTimeSlot matches an explicit start-end range first, then falls back
// to coarse day buckets. The range separator class includes "?" because
// em-dashes in pasted text frequently arrive mis-encoded.
func extractTimeSlot(text string) string {
	t := normalize(text)
	if m := timeRangeRE.FindStringSubmatch(t); m != nil {
		return formatTimeRange(m)
	}
	if strings.Contains(t, "morning") {
		return "morning"
	}
	if strings.Contains(t, "afternoon") {
		return "afternoon"
	}
	if strings.Contains(t, "evening") || strings.Contains(t, "night") {
		return "evening"
	}
	return ""
}

// formatTimeRange renders a matched range as "<start> - <end>", keeping
// minutes and meridiem only where the source had them.
func formatTimeRange(m []string) string {
	return formatTimePart(m[1], m[2], m[3]) + " - " + formatTimePart(m[4], m[5], m[6])
}

func formatTimePart(hour, minutes, meridiem string) string {
	part := hour
	if minutes != "" {
		part += ":" + minutes
	}
	if meridiem != "" {
		part += " " + meridiem
	}
	return part
}

var decorNegations = []string{"no", "not required", "without", "dont", "don't"}
var decorAffirmations = []string{"need", "yes", "required", "with"}

// extractDecoration is tri-state: a message that never mentions decoration
// leaves the field unset, which is distinct from an explicit no.
func extractDecoration(text string) Decoration {
	t := normalize(text)
	if decorWordRE.MatchString(t) {
		for _, neg := range decorNegations {
			if strings.Contains(t, neg) {
				return DecorationNo
			}
		}
		for _, aff := range decorAffirmations {
			if strings.Contains(t, aff) {
				return DecorationYes
			}
		}
	}
	if noWordRE.MatchString(t) && strings.Contains(t, "decor") {
		return DecorationNo
	}
	if yesWordRE.MatchString(t) && strings.Contains(t, "decor") {
		return DecorationYes
	}
	return DecorationUnset
}

// extractContact strips grouping punctuation from the whole message, then
// takes the first run of 10-15 digits with an optional leading plus.
func extractContact(text string) string {
	stripped := contactStripRE.ReplaceAllString(text, "")
	return contactRE.FindString(stripped)
}
