package repository

import (
	"time"

	"github.com/noah-isme/hostel-desk-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func mustTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedUsers returns the demo accounts available at start-up.
func SeedUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Alex Johnson", Email: "alex.j@university.edu", Role: models.RoleAdmin, RoomNumber: strPtr("A-302"), Block: strPtr("A")},
		{ID: "s101", Name: "Sarah Smith", Email: "sarah.s@university.edu", Role: models.RoleStudent, RoomNumber: strPtr("A-101"), Block: strPtr("A")},
		{ID: "s102", Name: "Mike Ross", Email: "mike.r@university.edu", Role: models.RoleStudent, RoomNumber: strPtr("B-204"), Block: strPtr("B")},
		{ID: "s103", Name: "Emily Blunt", Email: "emily.b@university.edu", Role: models.RoleStudent, RoomNumber: strPtr("C-305"), Block: strPtr("C")},
	}
}

// SeedRooms returns the demo room inventory.
func SeedRooms() []models.Room {
	return []models.Room{
		{ID: "r1", Number: "101", Block: "A", Capacity: 2, Occupancy: 2, Type: models.RoomDouble, Status: models.RoomFull, Features: []string{"AC", "Attached Washroom"}},
		{ID: "r2", Number: "102", Block: "A", Capacity: 2, Occupancy: 1, Type: models.RoomDouble, Status: models.RoomAvailable, Features: []string{"Non-AC"}},
		{ID: "r3", Number: "201", Block: "B", Capacity: 1, Occupancy: 0, Type: models.RoomSingle, Status: models.RoomAvailable, Features: []string{"AC", "Balcony"}},
		{ID: "r4", Number: "202", Block: "B", Capacity: 3, Occupancy: 3, Type: models.RoomTriple, Status: models.RoomFull, Features: []string{"Non-AC"}},
		{ID: "r5", Number: "301", Block: "C", Capacity: 2, Occupancy: 0, Type: models.RoomDouble, Status: models.RoomMaintenance, Features: []string{"AC"}},
	}
}

// SeedComplaints returns the demo complaint history, newest first as displayed.
func SeedComplaints() []models.Complaint {
	return []models.Complaint{
		{
			ID: "c1", StudentID: "s101", StudentName: "Sarah Smith", RoomNumber: "A-101",
			Category: "Electrical", Description: "Ceiling fan is making a clicking noise and rotating slowly.",
			Status: models.ComplaintInProgress, Priority: models.PriorityMedium,
			CreatedAt: mustTime("2024-05-15T10:30:00Z"), UpdatedAt: mustTime("2024-05-16T09:00:00Z"),
		},
		{
			ID: "c2", StudentID: "s102", StudentName: "Mike Ross", RoomNumber: "B-204",
			Category: "Plumbing", Description: "Severe water leakage in the bathroom from the flush tank.",
			Status: models.ComplaintPending, Priority: models.PriorityCritical,
			CreatedAt: mustTime("2024-05-18T14:20:00Z"), UpdatedAt: mustTime("2024-05-18T14:20:00Z"),
		},
		{
			ID: "c3", StudentID: "s103", StudentName: "Emily Blunt", RoomNumber: "C-305",
			Category: "Furniture", Description: "Study table drawer is broken.",
			Status: models.ComplaintResolved, Priority: models.PriorityLow,
			CreatedAt: mustTime("2024-05-10T08:00:00Z"), UpdatedAt: mustTime("2024-05-12T11:00:00Z"),
			Feedback: strPtr("Excellent response time!"), Rating: intPtr(5),
		},
	}
}
