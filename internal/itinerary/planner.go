// Package itinerary builds single and multi-day place itineraries around a
// destination city from keyword place searches.
package itinerary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/randytsao24/tripmate/internal/location"
	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/models"
	"github.com/randytsao24/tripmate/internal/validation"
)

const (
	// MaxDistanceKm bounds how far a place may be from the anchor attraction
	MaxDistanceKm = 20.0

	// perCategoryLimit caps each category in a single-day plan
	perCategoryLimit = 10

	// MaxDays bounds a multi-day plan
	MaxDays = 30
)

// dailyQuota is how many places of each category one day of a multi-day plan gets
var dailyQuota = []struct {
	category models.Category
	suffix   string
	count    int
}{
	{models.CategoryAttraction, "관광지", 2},
	{models.CategoryFood, "맛집", 3},
	{models.CategoryCafe, "카페", 2},
}

// PlaceSearcher is a keyword place search within one category
type PlaceSearcher interface {
	Search(ctx context.Context, keyword string, category models.Category) ([]models.Place, error)
}

// Planner builds itineraries
type Planner struct {
	places PlaceSearcher
}

// NewPlanner creates a planner over a place searcher
func NewPlanner(places PlaceSearcher) *Planner {
	return &Planner{places: places}
}

// search never fails; provider errors are logged and read as no results
func (p *Planner) search(ctx context.Context, keyword string, category models.Category) []models.Place {
	places, err := p.places.Search(ctx, keyword, category)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("keyword", keyword).
			Str("category", string(category)).
			Msg("place search failed")
		return nil
	}
	return places
}

// Plan builds a single-day itinerary around the first attraction found for
// arrival. No attractions yields an empty place list, not an error.
func (p *Planner) Plan(ctx context.Context, departure, arrival, date string) models.Schedule {
	schedule := models.Schedule{
		Title:  fmt.Sprintf("%s → %s 추천 장소", departure, arrival),
		Date:   date,
		Places: []models.Place{},
	}

	attractions := p.search(ctx, arrival+" 관광지", models.CategoryAttraction)
	if len(attractions) == 0 {
		logging.Ctx(ctx).Info().Str("arrival", arrival).Msg("no attractions found, returning empty schedule")
		return schedule
	}
	anchor := attractions[0]

	food := p.search(ctx, arrival, models.CategoryFood)
	cafes := p.search(ctx, arrival, models.CategoryCafe)

	var all []models.Place
	all = append(all, nearby(anchor, attractions, perCategoryLimit)...)
	all = append(all, nearby(anchor, food, perCategoryLimit)...)
	all = append(all, nearby(anchor, cafes, perCategoryLimit)...)

	schedule.Places = rank(all)
	return schedule
}

// PlanMultiDay spreads places over days consecutive dates starting at
// startDate. No place appears on two days; exhausted categories leave days short.
func (p *Planner) PlanMultiDay(ctx context.Context, departure, arrival, startDate string, days int) (models.MultiDaySchedule, error) {
	start, err := validation.ParseDate("startDate", startDate)
	if err != nil {
		return models.MultiDaySchedule{}, err
	}
	if days < 1 || days > MaxDays {
		return models.MultiDaySchedule{}, validation.Fieldf("days", "days must be between 1 and %d, got %d", MaxDays, days)
	}

	// one search per category serves every day
	candidates := make([][]models.Place, len(dailyQuota))
	for i, q := range dailyQuota {
		candidates[i] = p.search(ctx, arrival+" "+q.suffix, q.category)
	}

	used := make(map[string]struct{})
	cursors := make([]int, len(dailyQuota))
	plan := make(models.DailyPlan, 0, days)

	for i := range days {
		date := start.AddDate(0, 0, i).Format(validation.DashedDateLayout)

		var dayPlaces []models.Place
		for c, q := range dailyQuota {
			dayPlaces = append(dayPlaces, takeUnused(candidates[c], &cursors[c], used, q.count)...)
		}

		plan = append(plan, models.DayPlan{Date: date, Places: dayPlaces})
	}

	return models.MultiDaySchedule{
		Title:     fmt.Sprintf("%s → %s %d일 여행 일정", departure, arrival, days),
		DailyPlan: plan,
	}, nil
}

// Recommend returns attractions for a free-text keyword, ranked
func (p *Planner) Recommend(ctx context.Context, keyword string) []models.Place {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Place{}
	}
	return rank(p.search(ctx, keyword+" 관광지", models.CategoryAttraction))
}

// nearby keeps up to limit places within MaxDistanceKm of anchor, in order
func nearby(anchor models.Place, places []models.Place, limit int) []models.Place {
	var out []models.Place
	for _, place := range places {
		if len(out) == limit {
			break
		}
		if location.Haversine(anchor.Lat, anchor.Lng, place.Lat, place.Lng) <= MaxDistanceKm {
			out = append(out, place)
		}
	}
	return out
}

// takeUnused takes up to count places whose ids are not in used and adds
// them to used. The set only grows. A place without an id is never
// excluded, so candidates slices are consumed by position through next.
func takeUnused(candidates []models.Place, next *int, used map[string]struct{}, count int) []models.Place {
	var out []models.Place
	for ; *next < len(candidates) && len(out) < count; *next++ {
		place := candidates[*next]
		if place.ID != "" {
			if _, ok := used[place.ID]; ok {
				continue
			}
			used[place.ID] = struct{}{}
		}
		out = append(out, place)
	}
	return out
}

// rank orders by category priority, keeping provider order within a category
func rank(places []models.Place) []models.Place {
	out := make([]models.Place, len(places))
	copy(out, places)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CategoryCode.Priority() < out[j].CategoryCode.Priority()
	})
	return out
}
