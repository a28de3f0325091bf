package transit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/tripmate/internal/models"
)

const (
	railCityPath      = "/getCtyCodeList"
	railStationPath   = "/getCtyAcctoTrainSttnList"
	railDeparturePath = "/getStrtpntAlocFndTrainInfo"

	railStationRows   = 200
	railDepartureRows = 100

	// station lists are fetched per city; bound the burst
	railStationFetchers = 4
)

type railCity struct {
	CityCode flexString `json:"citycode"`
	CityName string     `json:"cityname"`
}

type railStation struct {
	NodeID   string `json:"nodeid"`
	NodeName string `json:"nodename"`
}

type railDeparture struct {
	TrainGradeName string     `json:"traingradename"`
	DepPlaceName   string     `json:"depplacename"`
	ArrPlaceName   string     `json:"arrplacename"`
	DepPlandTime   flexString `json:"depplandtime"`
	ArrPlandTime   flexString `json:"arrplandtime"`
	AdultCharge    flexInt    `json:"adultcharge"`
}

// RailClient talks to the train information API
type RailClient struct {
	api        apiClient
	serviceKey string
}

// NewRailClient creates a rail client. baseURL is the service root, e.g.
// https://apis.data.go.kr/1613000/TrainInfoService.
func NewRailClient(baseURL, serviceKey string, timeout time.Duration) *RailClient {
	return &RailClient{
		api:        newAPIClient(baseURL, timeout),
		serviceKey: serviceKey,
	}
}

// HasAPIKey returns true if the client has a service key configured
func (c *RailClient) HasAPIKey() bool {
	return c.serviceKey != ""
}

func (c *RailClient) params(rows int) url.Values {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("_type", "json")
	params.Set("numOfRows", fmt.Sprint(rows))
	params.Set("pageNo", "1")
	return params
}

// FetchAll lists every station. The API only lists stations per city code, so
// cities are fetched first and their station lists concurrently. Cities whose
// list fails are skipped.
func (c *RailClient) FetchAll(ctx context.Context) ([]models.LocationCandidate, error) {
	var cityEnv envelope[railCity]
	if err := c.api.get(ctx, railCityPath, c.params(railStationRows), &cityEnv); err != nil {
		return nil, fmt.Errorf("fetching rail cities: %w", err)
	}
	if err := cityEnv.err(); err != nil {
		return nil, fmt.Errorf("fetching rail cities: %w", err)
	}
	cities := cityEnv.list()

	perCity := make([][]models.LocationCandidate, len(cities))
	var (
		mu       sync.Mutex
		firstErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(railStationFetchers)
	for i, city := range cities {
		g.Go(func() error {
			stations, err := c.stations(gctx, string(city.CityCode))
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return nil
			}
			perCity[i] = stations
			return nil
		})
	}
	_ = g.Wait()

	var out []models.LocationCandidate
	for _, stations := range perCity {
		out = append(out, stations...)
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (c *RailClient) stations(ctx context.Context, cityCode string) ([]models.LocationCandidate, error) {
	params := c.params(railStationRows)
	params.Set("cityCode", cityCode)

	var env envelope[railStation]
	if err := c.api.get(ctx, railStationPath, params, &env); err != nil {
		return nil, fmt.Errorf("fetching rail stations for city %s: %w", cityCode, err)
	}
	if err := env.err(); err != nil {
		return nil, fmt.Errorf("fetching rail stations for city %s: %w", cityCode, err)
	}

	stations := env.list()
	out := make([]models.LocationCandidate, 0, len(stations))
	for _, s := range stations {
		if s.NodeID == "" {
			continue
		}
		out = append(out, models.LocationCandidate{
			ProviderID:  s.NodeID,
			DisplayName: s.NodeName,
		})
	}
	return out, nil
}

// Query returns trains between two stations on date (yyyyMMdd)
func (c *RailClient) Query(ctx context.Context, originID, destinationID, date string) ([]models.RawTransportRecord, error) {
	params := c.params(railDepartureRows)
	params.Set("depPlaceId", originID)
	params.Set("arrPlaceId", destinationID)
	params.Set("depPlandTime", date)

	var env envelope[railDeparture]
	if err := c.api.get(ctx, railDeparturePath, params, &env); err != nil {
		return nil, fmt.Errorf("fetching trains %s->%s: %w", originID, destinationID, err)
	}
	if err := env.err(); err != nil {
		return nil, fmt.Errorf("fetching trains %s->%s: %w", originID, destinationID, err)
	}

	trains := env.list()
	out := make([]models.RawTransportRecord, 0, len(trains))
	for _, t := range trains {
		out = append(out, models.RawTransportRecord{
			Grade:              t.TrainGradeName,
			OriginName:         t.DepPlaceName,
			DestinationName:    t.ArrPlaceName,
			DepartureTimestamp: string(t.DepPlandTime),
			ArrivalTimestamp:   string(t.ArrPlandTime),
			Price:              int(t.AdultCharge),
		})
	}
	return out, nil
}
