package projections

import (
	"context"

	"bunganutz/internal/domain/bed"
	domainMealplan "bunganutz/internal/domain/mealplan"
	domainMember "bunganutz/internal/domain/member"
	domainStay "bunganutz/internal/domain/stay"
	domainWeather "bunganutz/internal/domain/weather"
)

// StayStore interface for stay queries.
type StayStore interface {
	GetByID(ctx context.Context, id string) (domainStay.Stay, error)
	List(ctx context.Context) ([]domainStay.Stay, error)
	ListActiveOn(ctx context.Context, date string) ([]domainStay.Stay, error)
	ListOverlapping(ctx context.Context, startDate, endDate string) ([]domainStay.Stay, error)
}

// MemberStore interface for roster queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context) ([]domainMember.Member, error)
	ListByIDs(ctx context.Context, ids []string) ([]domainMember.Member, error)
}

// BoardStore interface for bed board queries.
type BoardStore interface {
	SheetForDate(ctx context.Context, date string) (bed.Sheet, error)
	YardSpaces(ctx context.Context, date string) (int, error)
}

// MealAssignmentStore interface for meal plan queries.
type MealAssignmentStore interface {
	ListForDate(ctx context.Context, date string) ([]domainMealplan.Assignment, error)
	ListForStay(ctx context.Context, stayID string) ([]domainMealplan.Assignment, error)
}

// DayGuestStore interface for day guest queries.
type DayGuestStore interface {
	ListByDate(ctx context.Context, date string) ([]domainMealplan.Attendance, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]domainMealplan.Attendance, error)
}

// WeatherProvider interface for forecast queries.
type WeatherProvider interface {
	Forecast(ctx context.Context, lat, lon float64) ([]domainWeather.Sample, error)
}

// PersonView is a display row for anyone who can appear on a board:
// family, named guests, or synthesized headcount guests.
type PersonView struct {
	ID              string
	Name            string
	FoodPreferences string
	IsGuest         bool
}

func personView(p domainMember.Person, isGuest bool) PersonView {
	return PersonView{
		ID:              p.PersonID(),
		Name:            p.DisplayName(),
		FoodPreferences: p.FoodPreference(),
		IsGuest:         isGuest,
	}
}
