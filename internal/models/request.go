package models

import "time"

// Request is a single roadside service event. Rows are created by upstream
// intake (or the synthetic generator); the batch jobs only ever mutate the
// zone label.
type Request struct {
	RequestID       int64     `json:"request_id"`
	MemberID        int64     `json:"member_id"`
	RequestTs       time.Time `json:"request_ts"`
	DispatchTs      time.Time `json:"dispatch_ts"`
	ArrivalTs       time.Time `json:"arrival_ts"`
	CompletionTs    time.Time `json:"completion_ts"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ZipCode         string    `json:"zip_code"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	RoadType        string    `json:"road_type"`
	IssueType       string    `json:"issue_type"`
	TruckID         int       `json:"truck_id"`
	VIN             string    `json:"vin"`
	MilesTowed      float64   `json:"miles_towed"`
	CallSource      string    `json:"call_source"`
	MembershipStart time.Time `json:"membership_start"`
	MemberHomeZip   string    `json:"member_home_zip"`
	ZoneID          *int      `json:"zone_id,omitempty"`
}

func (r *Request) Location() Location {
	return Location{Lat: r.Latitude, Lon: r.Longitude}
}

// RequestPoint is the slim projection the clustering jobs read: one row id
// with its coordinate and request time.
type RequestPoint struct {
	RequestID int64
	RequestTs time.Time
	Location  Location
}

// ZoneAssignment pairs a request with the zone label the latest clustering
// run produced for it.
type ZoneAssignment struct {
	RequestID int64
	ZoneID    int
}
