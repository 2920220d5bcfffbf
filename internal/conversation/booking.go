package conversation

// Occasion is the event type a hall booking is for.
type Occasion string

const (
	OccasionBirthday    Occasion = "Birthday"
	OccasionBabyShower  Occasion = "Baby Shower"
	OccasionEngagement  Occasion = "Engagement"
	OccasionAnniversary Occasion = "Anniversary"
	OccasionCorporate   Occasion = "Corporate"
	OccasionOther       Occasion = "Other"
)

// Decoration is a tri-state flag. DecorationUnset means the guest has not
// said anything about decoration yet; it must never be conflated with
// DecorationNo.
type Decoration int

const (
	DecorationUnset Decoration = iota
	DecorationYes
	DecorationNo
)

// BookingDetails holds everything extracted from a transcript so far. Zero
// values mean "not provided yet".
type BookingDetails struct {
	Name       string
	Occasion   Occasion
	Date       string
	TimeSlot   string
	Guests     int
	Decoration Decoration
	Contact    string
}

// Field identifies one booking attribute.
type Field string

const (
	FieldName       Field = "name"
	FieldOccasion   Field = "occasion"
	FieldDate       Field = "date"
	FieldTimeSlot   Field = "timeSlot"
	FieldGuests     Field = "guests"
	FieldDecoration Field = "decoration"
	FieldContact    Field = "contact"
)

// ExtractBooking folds the field extractors over every user turn in
// transcript order. The first value found for a field wins; later turns
// never override it, including a decoration explicitly set to no.
func ExtractBooking(messages []ChatMessage) BookingDetails {
	var collected BookingDetails
	for _, m := range messages {
		if m.Role != ChatRoleUser {
			continue
		}
		text := m.Content
		if collected.Name == "" {
			collected.Name = extractName(text)
		}
		if collected.Occasion == "" {
			collected.Occasion = extractOccasion(text)
		}
		if collected.Guests == 0 {
			collected.Guests = extractGuests(text)
		}
		if collected.Date == "" {
			collected.Date = extractDate(text)
		}
		if collected.TimeSlot == "" {
			collected.TimeSlot = extractTimeSlot(text)
		}
		if collected.Decoration == DecorationUnset {
			collected.Decoration = extractDecoration(text)
		}
		if collected.Contact == "" {
			collected.Contact = extractContact(text)
		}
	}
	return collected
}

// RequiredMissing reports which required fields are still absent, in the
// fixed order they are presented to the guest. Decoration counts as present
// once it is explicitly yes or no.
func RequiredMissing(d BookingDetails) []Field {
	var need []Field
	if d.Name == "" {
		need = append(need, FieldName)
	}
	if d.Occasion == "" {
		need = append(need, FieldOccasion)
	}
	if d.Date == "" {
		need = append(need, FieldDate)
	}
	if d.TimeSlot == "" {
		need = append(need, FieldTimeSlot)
	}
	if d.Guests == 0 {
		need = append(need, FieldGuests)
	}
	if d.Decoration == DecorationUnset {
		need = append(need, FieldDecoration)
	}
	if d.Contact == "" {
		need = append(need, FieldContact)
	}
	return need
}
