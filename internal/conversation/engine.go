package conversation

import "strings"

const defaultVenueLink = "https://example.com/happyhearts"

const priceDetailsReply = "Our pricing depends on date, timing & guest count. I can give an exact quote once I have these 3 details."

// ApologyReply is the degraded answer the boundary falls back to when
// anything unexpected happens. The core itself never fails.
const ApologyReply = "Sorry, something went wrong. Please try again."

// fieldLabels maps each booking field to the label shown when asking for it.
var fieldLabels = map[Field]string{
	FieldName:       "Name",
	FieldOccasion:   "Occasion (Birthday / Baby Shower / Engagement / Anniversary / Corporate / Other)",
	FieldDate:       "Date",
	FieldTimeSlot:   "Time slot",
	FieldGuests:     "Number of guests",
	FieldDecoration: "Decoration required (Yes/No)",
	FieldContact:    "Contact number",
}

// Engine turns a transcript into the next assistant reply. It is stateless
// and deterministic: the same transcript always produces the same reply, so
// concurrent conversations need no coordination.
type Engine struct {
	venueLink string
}

// NewEngine creates an engine. venueLink is substituted into the media
// shortcut reply; empty falls back to the default preview link.
func NewEngine(venueLink string) *Engine {
	if venueLink == "" {
		venueLink = defaultVenueLink
	}
	return &Engine{venueLink: venueLink}
}

// Reply computes the assistant's answer for the transcript so far.
//
// Intent shortcuts run first on the latest turn. If neither fires, booking
// details are re-extracted from the whole transcript and the reply is either
// a request for the missing fields or the booking confirmation.
func (e *Engine) Reply(messages []ChatMessage) string {
	var latest string
	if len(messages) > 0 {
		latest = messages[len(messages)-1].Content
	}

	if askedForMedia(latest) {
		return "Here is our venue preview: " + e.venueLink
	}
	if askedForPrice(latest) {
		d := ExtractBooking(messages)
		if d.Date == "" || d.TimeSlot == "" || d.Guests == 0 {
			return priceDetailsReply
		}
	}

	details := ExtractBooking(messages)
	if missing := RequiredMissing(details); len(missing) > 0 {
		return formatMissingPrompt(missing)
	}
	return buildConfirmation(details)
}

// formatMissingPrompt renders the missing fields as a single request
// sentence. Callers guarantee missing is non-empty.
func formatMissingPrompt(missing []Field) string {
	labels := make([]string, 0, len(missing))
	for _, f := range missing {
		labels = append(labels, fieldLabels[f])
	}
	return "Sure! To assist you, please share: " + strings.Join(labels, ", ") + "."
}

// buildConfirmation composes the fixed five-line confirmation once every
// required field is known.
func buildConfirmation(d BookingDetails) string {
	name := d.Name
	if name == "" {
		name = "there"
	}
	lines := []string{
		"Thanks " + name + "!",
		"We currently have availability for that slot.",
		"Price range: " + estimatePriceRange(d) + ".",
		"Includes: 4-hour hall, AC, seating setup, basic lighting & sound, housekeeping, on-site coordinator.",
		"To confirm: 30% advance.",
	}
	return strings.Join(lines, "\n")
}
