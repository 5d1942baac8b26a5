package simclock

// TravelPlan lists which weeks the member travels and where. Destinations
// cycle in order as travel weeks are consumed.
type TravelPlan struct {
	TravelWeeks  []int
	Destinations []string
}

// defaultDestinations matches the member's frequent-travel list.
var defaultDestinations = []string{
	"United Kingdom",
	"United States",
	"South Korea",
	"Jakarta",
}

// BuildTravelPlan selects every 4th week (4, 8, 12, ...) up to totalWeeks
// as a travel week.
func BuildTravelPlan(totalWeeks int) TravelPlan {
	var weeks []int
	for w := 4; w <= totalWeeks; w += 4 {
		weeks = append(weeks, w)
	}
	return TravelPlan{
		TravelWeeks:  weeks,
		Destinations: defaultDestinations,
	}
}

// DestinationFor returns the destination for a travel week, or false if the
// week is not a travel week.
func (p TravelPlan) DestinationFor(week int) (string, bool) {
	for i, w := range p.TravelWeeks {
		if w == week {
			return p.Destinations[i%len(p.Destinations)], true
		}
	}
	return "", false
}

// IsTravelWeek reports whether the given week is a travel week.
func (p TravelPlan) IsTravelWeek(week int) bool {
	_, ok := p.DestinationFor(week)
	return ok
}
