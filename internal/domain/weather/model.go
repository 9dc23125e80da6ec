package weather

import (
	"math"
	"time"
)

// Sample is one 3-hour forecast reading from the weather collaborator.
type Sample struct {
	Timestamp time.Time
	TempF     float64
	Condition string // e.g. "Clear", "Rain"
}

// DaySummary condenses a day's samples into the widget's line: min/max
// temperature and the most frequent condition. Known is false for dates
// beyond the provider's horizon ("Too Far to Forecast").
type DaySummary struct {
	Date      string // YYYY-MM-DD
	MinF      int
	MaxF      int
	Condition string
	Known     bool
}

const dateLayout = "2006-01-02"

// SummarizeRange buckets samples by calendar day and produces one summary
// per date from start to end inclusive. Temperatures are rounded; the
// condition is the majority label, ties broken by first occurrence.
// PRE: dates are YYYY-MM-DD with start <= end
// POST: one DaySummary per date in order; Known=false where no samples fall
func SummarizeRange(samples []Sample, start, end string) []DaySummary {
	byDay := make(map[string][]Sample)
	for _, s := range samples {
		day := s.Timestamp.Format(dateLayout)
		byDay[day] = append(byDay[day], s)
	}

	var summaries []DaySummary
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		daySamples := byDay[date]
		if len(daySamples) == 0 {
			summaries = append(summaries, DaySummary{Date: date})
			continue
		}
		summaries = append(summaries, summarizeDay(date, daySamples))
	}
	return summaries
}

func summarizeDay(date string, samples []Sample) DaySummary {
	minT := samples[0].TempF
	maxT := samples[0].TempF
	counts := make(map[string]int)
	var order []string
	for _, s := range samples {
		if s.TempF < minT {
			minT = s.TempF
		}
		if s.TempF > maxT {
			maxT = s.TempF
		}
		if s.Condition != "" {
			if counts[s.Condition] == 0 {
				order = append(order, s.Condition)
			}
			counts[s.Condition]++
		}
	}

	condition := ""
	best := 0
	for _, c := range order {
		if counts[c] > best {
			best = counts[c]
			condition = c
		}
	}

	return DaySummary{
		Date:      date,
		MinF:      int(math.Round(minT)),
		MaxF:      int(math.Round(maxT)),
		Condition: condition,
		Known:     true,
	}
}
