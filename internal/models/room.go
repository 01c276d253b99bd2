package models

import "strings"

// RoomType is the bed configuration of a room.
type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomTriple RoomType = "TRIPLE"
)

// RoomStatus is operator-maintained and not derived from occupancy.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomFull        RoomStatus = "FULL"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// ParseRoomType normalises a free-form room type filter.
func ParseRoomType(raw string) (RoomType, bool) {
	switch t := RoomType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case RoomSingle, RoomDouble, RoomTriple:
		return t, true
	}
	return "", false
}

// ParseRoomStatus normalises a free-form room status filter.
func ParseRoomStatus(raw string) (RoomStatus, bool) {
	switch s := RoomStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case RoomAvailable, RoomFull, RoomMaintenance:
		return s, true
	}
	return "", false
}

// Room is a bookable hostel room.
type Room struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Block     string     `json:"block"`
	Capacity  int        `json:"capacity"`
	Occupancy int        `json:"occupancy"`
	Type      RoomType   `json:"type"`
	Status    RoomStatus `json:"status"`
	Features  []string   `json:"features"`
}

// HasFeatures reports whether the room offers every wanted feature,
// ignoring order and case.
func (r Room) HasFeatures(wanted ...string) bool {
	have := make(map[string]struct{}, len(r.Features))
	for _, f := range r.Features {
		have[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := have[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}

// RoomFilter narrows room listings. Empty fields match everything.
type RoomFilter struct {
	Block    string
	Status   RoomStatus
	Type     RoomType
	Features []string
}
