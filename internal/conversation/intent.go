package conversation

import "strings"

// mediaKeywords trigger the venue-preview shortcut.
var mediaKeywords = []string{
	"photo",
	"photos",
	"pics",
	"pictures",
	"video",
	"videos",
	"gallery",
	"preview",
	"send photo",
	"send photos",
	"send video",
}

// priceKeywords trigger the pricing shortcut.
var priceKeywords = []string{"price", "pricing", "cost", "charges", "rate", "how much"}

// askedForMedia reports whether the message is a request for photos or
// videos of the venue.
func askedForMedia(text string) bool {
	t := normalize(text)
	for _, k := range mediaKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// askedForPrice reports whether the message asks about pricing.
func askedForPrice(text string) bool {
	t := normalize(text)
	for _, k := range priceKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
