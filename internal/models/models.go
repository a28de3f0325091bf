// Package models defines shared data types
package models

// LocationCandidate is a provider terminal or station resolved to a city key
type LocationCandidate struct {
	ProviderID    string `json:"provider_id" yaml:"id"`
	DisplayName   string `json:"display_name" yaml:"name"`
	CanonicalCity string `json:"canonical_city" yaml:"city,omitempty"`
}

// Mode is a transport modality
type Mode string

const (
	ModeBus  Mode = "bus"
	ModeRail Mode = "rail"
)

// TransportRequest is a city-pair search for a single travel date
type TransportRequest struct {
	DepartureCity string `json:"departure"`
	ArrivalCity   string `json:"arrival"`
	Date          string `json:"date" validate:"required"`
	DepartureTime string `json:"departureTime,omitempty"`
}

// RawTransportRecord is a single departure as returned by a provider.
// Timestamps are yyyyMMddHHmm.
type RawTransportRecord struct {
	Grade              string `json:"grade"`
	OriginName         string `json:"origin_name"`
	DestinationName    string `json:"destination_name"`
	DepartureTimestamp string `json:"departure_timestamp"`
	ArrivalTimestamp   string `json:"arrival_timestamp"`
	Price              int    `json:"price"`
}

// TransportOption is a display-ready departure
type TransportOption struct {
	ID            int64  `json:"id"`
	Mode          Mode   `json:"mode"`
	Grade         string `json:"type"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Price         int    `json:"price"`
}

// TransportResult is the unpaginated search response, one rendered line per option
type TransportResult struct {
	BusOptions  []string `json:"busOptions"`
	RailOptions []string `json:"korailOptions"`
}

// TransportPage is a single page of merged rail and bus options
type TransportPage struct {
	Content       []TransportOption `json:"content"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	CurrentPage   int               `json:"currentPage"`
	Size          int               `json:"size"`
}
