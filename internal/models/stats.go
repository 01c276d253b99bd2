package models

import "time"

// HostelStats are the headline dashboard numbers.
type HostelStats struct {
	TotalRooms     int `json:"totalRooms"`
	TotalResidents int `json:"totalResidents"`
	OccupancyRate  int `json:"occupancyRate"`
	OpenComplaints int `json:"openComplaints"`
	ResolvedRate   int `json:"resolvedRate"`
}

// CategoryCount is one bar of the complaints-by-category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// OccupancySplit is the occupied versus vacant bed count.
type OccupancySplit struct {
	Occupied int `json:"occupied"`
	Vacant   int `json:"vacant"`
}

// InsightStatus reports whether a predictive insight has been produced.
type InsightStatus string

const (
	InsightPending InsightStatus = "PENDING"
	InsightReady   InsightStatus = "READY"
)

// Insight is the latest predictive-maintenance blurb. Version is the
// complaint-store version the text was generated from.
type Insight struct {
	Text        string        `json:"text"`
	Status      InsightStatus `json:"status"`
	Version     uint64        `json:"version"`
	GeneratedAt *time.Time    `json:"generatedAt,omitempty"`
}
