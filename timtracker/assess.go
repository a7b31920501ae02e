package timtracker

import (
	"fmt"
	"math"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// Targets are the health goals each assessment is scored against.
type Targets struct {
	SleepHours     float64 // target hours per night
	SleepMin       float64 // minimum acceptable nightly average
	ExerciseWeekly float64 // minutes per week target
	DietScore      float64 // target daily score (1-10)
	MindfulDaily   float64 // target minutes per day
}

// DefaultTargets are the stock goals used by the briefing tool.
var DefaultTargets = Targets{
	SleepHours:     7.5,
	SleepMin:       6.0,
	ExerciseWeekly: 150,
	DietScore:      7.0,
	MindfulDaily:   10,
}

// A Status classifies how a category fared against its target.
type Status string

// Status values, ordered best to worst.
const (
	StatusGood   Status = "good"
	StatusFair   Status = "fair"
	StatusPoor   Status = "poor"
	StatusNoData Status = "no_data"
)

// Emoji returns the colored dot used for the status in briefing headers.
func (s Status) Emoji() string {
	switch s {
	case StatusGood:
		return "\U0001F7E2" // green
	case StatusFair:
		return "\U0001F7E1" // yellow
	case StatusPoor:
		return "\U0001F534" // red
	default:
		return "⚪" // white
	}
}

// An Assessment is the verdict for one category of the week.
type Assessment struct {
	Status  Status
	Message string
}

// A Report collects the week's assessments for all categories.
type Report struct {
	Sleep       Assessment
	Exercise    Assessment
	Diet        Assessment
	Mindfulness Assessment
}

// Assess scores all categories of the given days against the targets.
func (t Targets) Assess(days []Day) Report {
	return Report{
		Sleep:       t.Sleep(days),
		Exercise:    t.Exercise(days),
		Diet:        t.Diet(days),
		Mindfulness: t.Mindfulness(days),
	}
}

// Sleep assesses nightly sleep hours.
func (t Targets) Sleep(days []Day) Assessment {
	vals := collect(days, func(d Day) *float64 { return d.SleepHours })
	if len(vals) == 0 {
		return Assessment{StatusNoData, "No sleep data recorded this week."}
	}
	avg := mean(vals)
	lo, hi := minMax(vals)
	dev := stddev(vals, avg)

	status := StatusPoor
	if avg >= t.SleepHours {
		status = StatusGood
	} else if avg >= t.SleepMin {
		status = StatusFair
	}

	parts := []string{
		fmt.Sprintf("Averaged **%.1f hours/night** across %d days tracked.", avg, len(vals)),
	}
	if dev > 1.0 {
		parts = append(parts, fmt.Sprintf("Sleep was inconsistent (ranging from %.1fh to %.1fh).", lo, hi))
	} else if dev < 0.5 {
		parts = append(parts, "Sleep schedule was very consistent.")
	}
	if avg < t.SleepHours {
		deficit := (t.SleepHours - avg) * float64(len(vals))
		parts = append(parts, fmt.Sprintf("Running a sleep deficit of about %.0f hours for the week.", deficit))
	}
	return Assessment{status, strings.Join(parts, " ")}
}

// Exercise assesses weekly exercise minutes.
func (t Targets) Exercise(days []Day) Assessment {
	vals := collect(days, func(d Day) *float64 { return d.Exercise })
	if len(vals) == 0 {
		return Assessment{StatusNoData, "No exercise data recorded this week."}
	}
	total := sum(vals)

	// Distinct workout types, first-seen order.
	seen := stringset.New()
	var types []string
	for _, d := range days {
		for _, w := range d.Workouts {
			if w.Type == "" || seen.Contains(w.Type) {
				continue
			}
			seen.Add(w.Type)
			types = append(types, w.Type)
		}
	}

	status := StatusPoor
	if total >= t.ExerciseWeekly {
		status = StatusGood
	} else if total >= t.ExerciseWeekly*0.7 {
		status = StatusFair
	}

	parts := []string{
		fmt.Sprintf("**%.0f minutes** of exercise across %d days.", total, len(vals)),
	}
	if len(types) != 0 {
		list := strings.Join(types[:min(4, len(types))], ", ")
		if len(types) > 4 {
			list += fmt.Sprintf(" (+%d more)", len(types)-4)
		}
		parts = append(parts, fmt.Sprintf("Activities: %s.", list))
	}
	if total < t.ExerciseWeekly {
		parts = append(parts, fmt.Sprintf("Need %.0f more minutes to hit weekly target.", t.ExerciseWeekly-total))
	} else {
		parts = append(parts, fmt.Sprintf("Exceeding weekly target by %.0f minutes!", total-t.ExerciseWeekly))
	}
	return Assessment{status, strings.Join(parts, " ")}
}

// Diet assesses daily diet scores.
func (t Targets) Diet(days []Day) Assessment {
	vals := collect(days, func(d Day) *float64 { return d.DietScore })
	if len(vals) == 0 {
		return Assessment{StatusNoData, "No diet scores recorded this week."}
	}
	avg := mean(vals)
	lo, hi := minMax(vals)

	var goodDays, poorDays int
	for _, v := range vals {
		if v >= t.DietScore {
			goodDays++
		}
		if v < 5 {
			poorDays++
		}
	}

	status := StatusPoor
	if avg >= t.DietScore {
		status = StatusGood
	} else if avg >= 5 {
		status = StatusFair
	}

	parts := []string{
		fmt.Sprintf("Average diet score: **%.1f/10** across %d days.", avg, len(vals)),
	}
	if goodDays == len(vals) {
		parts = append(parts, "All tracked days met the health target!")
	} else if poorDays > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s) with scores below 5.", poorDays))
	}
	if hi-lo > 4 {
		parts = append(parts, fmt.Sprintf("Wide variation in scores (%.0f to %.0f).", lo, hi))
	}
	return Assessment{status, strings.Join(parts, " ")}
}

// Mindfulness assesses daily mindfulness minutes. The per-day average is
// taken over the full week, not only the days with recorded practice.
func (t Targets) Mindfulness(days []Day) Assessment {
	vals := collect(days, func(d Day) *float64 { return d.MindfulMinutes })
	if len(vals) == 0 {
		return Assessment{StatusNoData, "No mindfulness data recorded this week."}
	}
	total := sum(vals)
	avgPerDay := total / 7

	var targetDays int
	for _, v := range vals {
		if v >= t.MindfulDaily {
			targetDays++
		}
	}

	status := StatusPoor
	if avgPerDay >= t.MindfulDaily {
		status = StatusGood
	} else if avgPerDay >= t.MindfulDaily*0.5 {
		status = StatusFair
	}

	parts := []string{
		fmt.Sprintf("**%.0f minutes** of mindfulness across %d days.", total, len(vals)),
	}
	if len(vals) < 7 {
		parts = append(parts, fmt.Sprintf("%d day(s) without recorded practice.", 7-len(vals)))
	}
	if targetDays == len(vals) && len(vals) >= 5 {
		parts = append(parts, "Great consistency meeting daily targets!")
	} else if targetDays > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s) hit the %.0f min target.", targetDays, t.MindfulDaily))
	}
	return Assessment{status, strings.Join(parts, " ")}
}

// Summary condenses the report into an overall verdict with focus areas.
func (r Report) Summary() string {
	all := []Assessment{r.Sleep, r.Exercise, r.Diet, r.Mindfulness}
	var good, poor, total int
	for _, a := range all {
		if a.Status == StatusNoData {
			continue
		}
		total++
		switch a.Status {
		case StatusGood:
			good++
		case StatusPoor:
			poor++
		}
	}
	if total == 0 {
		return "Insufficient data to generate a health summary. Try logging more activities in TimTracker."
	}

	var parts []string
	switch {
	case good == total:
		parts = append(parts, "Excellent week across all tracked categories!")
	case good*2 >= total:
		parts = append(parts, fmt.Sprintf("Solid week with %d/%d categories meeting targets.", good, total))
	case poor*2 >= total:
		parts = append(parts, fmt.Sprintf("Challenging week — %d/%d categories below target.", poor, total))
	default:
		parts = append(parts, "Mixed results this week.")
	}

	var recs []string
	if r.Sleep.Status == StatusPoor {
		recs = append(recs, "prioritize earlier bedtimes")
	}
	if r.Exercise.Status == StatusPoor {
		recs = append(recs, "schedule workout sessions")
	}
	if r.Diet.Status == StatusPoor {
		recs = append(recs, "plan healthier meals")
	}
	if r.Mindfulness.Status == StatusPoor {
		recs = append(recs, "set a daily meditation reminder")
	}
	if len(recs) != 0 {
		parts = append(parts, fmt.Sprintf("Focus areas: %s.", strings.Join(recs, ", ")))
	}
	return strings.Join(parts, " ")
}

func collect(days []Day, get func(Day) *float64) []float64 {
	var vals []float64
	for _, d := range days {
		if v := get(d); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

func sum(vals []float64) float64 {
	var t float64
	for _, v := range vals {
		t += v
	}
	return t
}

func mean(vals []float64) float64 { return sum(vals) / float64(len(vals)) }

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return
}

// stddev is the population standard deviation about the given mean.
func stddev(vals []float64, avg float64) float64 {
	var acc float64
	for _, v := range vals {
		acc += (v - avg) * (v - avg)
	}
	return math.Sqrt(acc / float64(len(vals)))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
