package models

import "strings"

// RoomSupportsAll is the wildcard therapy entry: the room can host any service.
const RoomSupportsAll = "All"

// Room is a treatment room competing for slot locks. Inactive rooms are
// never offered.
type Room struct {
	ID                 string   `bson:"id" json:"id"`
	Name               string   `bson:"name" json:"name"`
	SupportedTherapies []string `bson:"supportedTherapies" json:"supportedTherapies"`
	Active             bool     `bson:"active" json:"active"`
}

// Supports reports whether the room can host the named therapy. Matching is
// case-insensitive containment in either direction, mirroring how therapy
// names are catalogued ("Abhyang" vs "Abhyang Massage").
func (r *Room) Supports(therapy string) bool {
	needle := strings.ToLower(strings.TrimSpace(therapy))
	for _, t := range r.SupportedTherapies {
		if t == RoomSupportsAll {
			return true
		}
		have := strings.ToLower(strings.TrimSpace(t))
		if have == "" || needle == "" {
			continue
		}
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return true
		}
	}
	return false
}
