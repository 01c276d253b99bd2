package repository

import (
	"context"
	"strings"

	"github.com/noah-isme/hostel-desk-api/internal/models"
)

// RoomRepository serves the read-only room inventory.
type RoomRepository struct {
	rooms []models.Room
}

// NewRoomRepository keeps its own copy of rooms.
func NewRoomRepository(rooms []models.Room) *RoomRepository {
	copied := make([]models.Room, len(rooms))
	for i, room := range rooms {
		copied[i] = cloneRoom(room)
	}
	return &RoomRepository{rooms: copied}
}

// List returns rooms matching filter in inventory order.
func (r *RoomRepository) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if filter.Block != "" && !strings.EqualFold(room.Block, filter.Block) {
			continue
		}
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		if filter.Type != "" && room.Type != filter.Type {
			continue
		}
		if len(filter.Features) > 0 && !room.HasFeatures(filter.Features...) {
			continue
		}
		out = append(out, cloneRoom(room))
	}
	return out, nil
}

func cloneRoom(room models.Room) models.Room {
	room.Features = append([]string(nil), room.Features...)
	return room
}
