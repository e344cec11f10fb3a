// Package stats renders a completed rewrite run's counters
// (essence.RewriteStats) into the human-readable summary essence's CLI
// prints after a run (spec.md §6).
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gitrdm/essencelogic/pkg/essence"
)

// Summary is a rendered rewrite-run report.
type Summary struct {
	Iterations   int
	RulesApplied int
	Elapsed      time.Duration
	TopRules     []RuleCount
}

// RuleCount is one rule's application count within a run.
type RuleCount struct {
	Name  string
	Count int
}

// Summarize builds a Summary from the rewriter's raw stats and the run's
// wall-clock duration.
func Summarize(s *essence.RewriteStats, elapsed time.Duration) Summary {
	counts := make([]RuleCount, 0, len(s.RuleApplyCount))
	for name, count := range s.RuleApplyCount {
		counts = append(counts, RuleCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return Summary{
		Iterations:   s.Iterations,
		RulesApplied: s.RulesApplied,
		Elapsed:      elapsed,
		TopRules:     counts,
	}
}

// String renders the summary the way essence's CLI prints it after a run:
// total counts in humanized form, then one line per rule ranked by
// application count.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s rule applications over %s in %s\n",
		humanize.Comma(int64(s.RulesApplied)),
		pluralIterations(s.Iterations),
		s.Elapsed.Round(time.Millisecond))
	for _, rc := range s.TopRules {
		fmt.Fprintf(&b, "  %-28s %s\n", rc.Name, humanize.Comma(int64(rc.Count)))
	}
	return b.String()
}

func pluralIterations(n int) string {
	if n == 1 {
		return "1 iteration"
	}
	return fmt.Sprintf("%s iterations", humanize.Comma(int64(n)))
}
