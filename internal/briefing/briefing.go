package briefing

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/boxbox/internal/scoring"
)

// MaxPoints bounds how many briefing points are kept from a model response.
const MaxPoints = 5

// SystemPrompt frames every briefing request.
const SystemPrompt = `You are the race engineer of a Formula 1 team. You give the team
principal short, concrete advice. Respond in plain text, one point per line,
at most five lines, no headings.`

// Briefer turns a team performance report into narrative advice.
type Briefer interface {
	Brief(ctx context.Context, report *scoring.Report) (*Briefing, error)
}

type Briefing struct {
	Backend string   `json:"backend"`
	Points  []string `json:"points"`
	Raw     string   `json:"-"`
}

// BuildPrompt renders report as the user prompt shared by all backends.
func BuildPrompt(report *scoring.Report) string {
	var b strings.Builder
	m := report.Metrics

	fmt.Fprintf(&b, "Team size: %d\n", report.TeamSize)
	fmt.Fprintf(&b, "Scores out of 10: speed %.1f, reliability %.1f, strategy %.1f, innovation %.1f, pit crew %.1f, overall %.1f\n",
		m.Speed, m.Reliability, m.Strategy, m.Innovation, m.PitCrew, m.Overall)
	fmt.Fprintf(&b, "Team balance %d%%, role coverage %d%% (%d of %d roles), key roles %d%%\n",
		report.Balance.Balance, report.Balance.Coverage, report.Balance.FilledRoles, report.Balance.TotalRoles, report.Balance.KeyRoles)
	fmt.Fprintf(&b, "Predicted finish: %s\n", report.PredictedPosition)

	if len(report.Composition) > 0 {
		parts := make([]string, 0, len(report.Composition))
		for _, rc := range report.Composition {
			parts = append(parts, fmt.Sprintf("%s x%d", rc.Role, rc.Count))
		}
		fmt.Fprintf(&b, "Roles: %s\n", strings.Join(parts, ", "))
	}

	for _, ms := range report.TopMembers {
		fmt.Fprintf(&b, "Top member: %s (%s), rating %d", ms.Member.Name, ms.Member.Role, ms.Rating)
		if len(ms.Strengths) > 0 {
			fmt.Fprintf(&b, ", strengths: %s", strings.Join(ms.Strengths, ", "))
		}
		b.WriteString("\n")
	}

	for _, in := range report.Insights {
		fmt.Fprintf(&b, "Note: %s\n", in.Message)
	}

	b.WriteString("\nWhat should the team focus on next?")
	return b.String()
}

// ParseResponse splits a model response into briefing points, one per line,
// dropping list markers and preamble.
func ParseResponse(raw string) []string {
	points := make([]string, 0, MaxPoints)

	for _, line := range strings.Split(raw, "\n") {
		line = trimMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "Based on") || strings.HasSuffix(line, ":") {
			continue
		}

		points = append(points, line)
		if len(points) == MaxPoints {
			break
		}
	}

	return points
}

// trimMarker strips a leading bullet ("-", "*", "•") or number ("1.", "2)").
func trimMarker(line string) string {
	for _, p := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, p) {
			return strings.TrimSpace(line[len(p):])
		}
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}
