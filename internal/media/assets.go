package media

import "strings"

// Slot is a semantic size/type bucket for an asset locator.
type Slot string

const (
	Original Slot = "original"
	Large    Slot = "large"
	Medium   Slot = "medium"
	Small    Slot = "small"
	Thumb    Slot = "thumb"
	Preview  Slot = "preview"
	Captions Slot = "captions"
)

// AssetBundle maps slots to locators. A missing key means the slot is absent.
type AssetBundle map[Slot]string

// slotMarkers is checked in order; the first marker contained in a
// lower-cased locator decides its slot.
var slotMarkers = []struct {
	markers []string
	slot    Slot
}{
	{[]string{"orig"}, Original},
	{[]string{"large"}, Large},
	{[]string{"medium"}, Medium},
	{[]string{"small"}, Small},
	{[]string{"thumb"}, Thumb},
	{[]string{"preview"}, Preview},
	{[]string{".srt", "captions"}, Captions},
}

// DownloadOrder is the preference order used when no slot is requested.
var DownloadOrder = []Slot{Original, Large, Medium, Small, Thumb, Preview}

// Classify assigns each locator to at most one slot. Locators matching no
// marker are dropped; for repeated slots the last locator scanned wins.
func Classify(locators []string) AssetBundle {
	bundle := AssetBundle{}
	for _, loc := range locators {
		if slot, ok := classifyOne(loc); ok {
			bundle[slot] = loc
		}
	}
	return bundle
}

func classifyOne(locator string) (Slot, bool) {
	lower := strings.ToLower(locator)
	for _, sm := range slotMarkers {
		for _, m := range sm.markers {
			if strings.Contains(lower, m) {
				return sm.slot, true
			}
		}
	}
	return "", false
}

// Best returns the first present slot from order.
func (b AssetBundle) Best(order []Slot) (Slot, string, bool) {
	for _, s := range order {
		if loc, ok := b[s]; ok {
			return s, loc, true
		}
	}
	return "", "", false
}

// ParseSlot maps a user-supplied slot name to a Slot.
func ParseSlot(name string) (Slot, bool) {
	s := Slot(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case Original, Large, Medium, Small, Thumb, Preview, Captions:
		return s, true
	}
	return "", false
}
