package service

import "github.com/noah-isme/hostel-desk-api/internal/models"

// percent returns round-half-up(100*num/den), or 0 when den is 0.
func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return (200*num + den) / (2 * den)
}

// ComputeStats derives the headline numbers. It is recomputed on every call.
func ComputeStats(rooms []models.Room, complaints []models.Complaint) models.HostelStats {
	var residents, capacity int
	for _, r := range rooms {
		residents += r.Occupancy
		capacity += r.Capacity
	}

	var open, resolved int
	for _, c := range complaints {
		if c.Status.Open() {
			open++
		}
		if c.Status == models.ComplaintResolved {
			resolved++
		}
	}

	return models.HostelStats{
		TotalRooms:     len(rooms),
		TotalResidents: residents,
		OccupancyRate:  percent(residents, capacity),
		OpenComplaints: open,
		ResolvedRate:   percent(resolved, len(complaints)),
	}
}

// ComplaintsByCategory counts complaints per category in first-seen order.
func ComplaintsByCategory(complaints []models.Complaint) []models.CategoryCount {
	out := []models.CategoryCount{}
	index := map[string]int{}
	for _, c := range complaints {
		i, ok := index[c.Category]
		if !ok {
			i = len(out)
			index[c.Category] = i
			out = append(out, models.CategoryCount{Category: c.Category})
		}
		out[i].Count++
	}
	return out
}

// ComputeOccupancySplit returns occupied and vacant beds.
func ComputeOccupancySplit(rooms []models.Room) models.OccupancySplit {
	var split models.OccupancySplit
	for _, r := range rooms {
		split.Occupied += r.Occupancy
		split.Vacant += r.Capacity - r.Occupancy
	}
	return split
}
