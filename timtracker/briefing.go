package timtracker

import (
	"fmt"
	"strings"
)

// FormatBriefing renders the week's report as the markdown briefing
// printed by the briefing tool.
func FormatBriefing(sum *WeekSummary, r Report) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "*Data from %s to %s*\n\n", sum.StartDate, sum.EndDate)

	section(&buf, "Sleep", r.Sleep)
	section(&buf, "Exercise", r.Exercise)
	section(&buf, "Diet", r.Diet)
	section(&buf, "Mindfulness", r.Mindfulness)

	buf.WriteString("#### Summary\n")
	buf.WriteString(r.Summary())
	return buf.String()
}

func section(buf *strings.Builder, name string, a Assessment) {
	fmt.Fprintf(buf, "#### %s %s\n%s\n\n", name, a.Status.Emoji(), a.Message)
}
