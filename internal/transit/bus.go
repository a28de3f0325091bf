package transit

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/randytsao24/tripmate/internal/models"
)

const (
	busTerminalPath  = "/getExpBusTrminlList"
	busDeparturePath = "/getStrtpntAlocFndExpbusInfo"

	busTerminalRows  = 300
	busDepartureRows = 100
)

type busTerminal struct {
	TerminalID flexString `json:"terminalId"`
	TerminalNm string     `json:"terminalNm"`
}

type busDeparture struct {
	GradeNm      string     `json:"gradeNm"`
	RouteID      flexString `json:"routeId"`
	DepPlandTime flexString `json:"depPlandTime"`
	ArrPlandTime flexString `json:"arrPlandTime"`
	DepPlaceNm   string     `json:"depPlaceNm"`
	ArrPlaceNm   string     `json:"arrPlaceNm"`
	Charge       flexInt    `json:"charge"`
}

// BusClient talks to the express bus information API
type BusClient struct {
	api        apiClient
	serviceKey string
}

// NewBusClient creates a bus client. baseURL is the service root, e.g.
// https://apis.data.go.kr/1613000/ExpBusInfoService.
func NewBusClient(baseURL, serviceKey string, timeout time.Duration) *BusClient {
	return &BusClient{
		api:        newAPIClient(baseURL, timeout),
		serviceKey: serviceKey,
	}
}

// HasAPIKey returns true if the client has a service key configured
func (c *BusClient) HasAPIKey() bool {
	return c.serviceKey != ""
}

func (c *BusClient) params(rows int) url.Values {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("_type", "json")
	params.Set("numOfRows", fmt.Sprint(rows))
	params.Set("pageNo", "1")
	return params
}

// FetchAll lists every express bus terminal. Cities are left for the
// directory to derive from terminal names.
func (c *BusClient) FetchAll(ctx context.Context) ([]models.LocationCandidate, error) {
	var env envelope[busTerminal]
	if err := c.api.get(ctx, busTerminalPath, c.params(busTerminalRows), &env); err != nil {
		return nil, fmt.Errorf("fetching bus terminals: %w", err)
	}
	if err := env.err(); err != nil {
		return nil, fmt.Errorf("fetching bus terminals: %w", err)
	}

	terminals := env.list()
	out := make([]models.LocationCandidate, 0, len(terminals))
	for _, t := range terminals {
		if t.TerminalID == "" {
			continue
		}
		out = append(out, models.LocationCandidate{
			ProviderID:  string(t.TerminalID),
			DisplayName: t.TerminalNm,
		})
	}
	return out, nil
}

// Query returns departures between two terminals on date (yyyyMMdd)
func (c *BusClient) Query(ctx context.Context, originID, destinationID, date string) ([]models.RawTransportRecord, error) {
	params := c.params(busDepartureRows)
	params.Set("depTerminalId", originID)
	params.Set("arrTerminalId", destinationID)
	params.Set("depPlandTime", date)

	var env envelope[busDeparture]
	if err := c.api.get(ctx, busDeparturePath, params, &env); err != nil {
		return nil, fmt.Errorf("fetching bus departures %s->%s: %w", originID, destinationID, err)
	}
	if err := env.err(); err != nil {
		return nil, fmt.Errorf("fetching bus departures %s->%s: %w", originID, destinationID, err)
	}

	deps := env.list()
	out := make([]models.RawTransportRecord, 0, len(deps))
	for _, d := range deps {
		if d.GradeNm == "" && d.DepPlandTime == "" {
			continue
		}
		out = append(out, models.RawTransportRecord{
			Grade:              d.GradeNm,
			OriginName:         d.DepPlaceNm,
			DestinationName:    d.ArrPlaceNm,
			DepartureTimestamp: string(d.DepPlandTime),
			ArrivalTimestamp:   string(d.ArrPlandTime),
			Price:              int(d.Charge),
		})
	}
	return out, nil
}
