package models

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Category is a place-search category code
type Category string

const (
	CategoryAttraction Category = "AT4"
	CategoryFood       Category = "FD6"
	CategoryCafe       Category = "CE7"
)

// unknownPriority ranks categories the planner does not know after all known ones
const unknownPriority = 99

// Priority orders categories within an itinerary; lower comes first
func (c Category) Priority() int {
	switch c {
	case CategoryAttraction:
		return 1
	case CategoryFood:
		return 2
	case CategoryCafe:
		return 3
	default:
		return unknownPriority
	}
}

// Place is a point of interest. Two places are the same place when their IDs match.
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address,omitempty"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	CategoryCode Category `json:"categoryCode"`
}

// Schedule is a single-day itinerary
type Schedule struct {
	Title  string  `json:"title"`
	Date   string  `json:"date"`
	Places []Place `json:"places"`
}

// DayPlan is the places assigned to one date
type DayPlan struct {
	Date   string
	Places []Place
}

// DailyPlan keeps days in chronological order and encodes as a JSON object
type DailyPlan []DayPlan

// MarshalJSON writes {"2025-01-01": [...], ...} preserving day order
func (d DailyPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day.Date)
		if err != nil {
			return nil, err
		}
		places := day.Places
		if places == nil {
			places = []Place{}
		}
		val, err := json.Marshal(places)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MultiDaySchedule is an itinerary spread over consecutive days
type MultiDaySchedule struct {
	Title     string    `json:"title"`
	DailyPlan DailyPlan `json:"dailyPlan"`
}
