// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRankedResults outputs the top N match results with scores and
// matched skills.
func (p *Printer) PrintRankedResults(results []types.MatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total postings ranked: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.JobID))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", result.OverallScore))
		if result.Degraded {
			sb.WriteString(" (degraded)")
		}
		sb.WriteString("\n")
		if len(result.MatchedSkills) > 0 {
			skills := strings.Join(result.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(results)-maxItemsToShow))
	}

	p.printBox("RANKED MATCHES", sb.String())
}

// PrintMatchDetail outputs the full sub-score breakdown for one result.
func (p *Printer) PrintMatchDetail(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:        %s\n", result.JobID))
	sb.WriteString(fmt.Sprintf("Overall:    %.1f\n", result.OverallScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:     %.2f\n", result.SubScores.Skills))
	sb.WriteString(fmt.Sprintf("Experience: %.2f\n", result.SubScores.Experience))
	sb.WriteString(fmt.Sprintf("Location:   %.2f\n", result.SubScores.Location))
	if result.SubScores.Qualitative != nil {
		sb.WriteString(fmt.Sprintf("Qualitative: %.2f\n", *result.SubScores.Qualitative))
	} else if result.Degraded {
		sb.WriteString("Qualitative: unavailable (degraded)\n")
	}

	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		count := min(len(result.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			missing := result.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s (weight %.2f)\n", missing.SkillID, missing.ImportanceWeight))
		}
		if len(result.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingSkills)-maxItemsToShow))
		}
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, strength := range result.Strengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", strength))
		}
	}

	p.printBox("MATCH DETAIL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCacheStats outputs cache effectiveness counters.
func (p *Printer) PrintCacheStats(stats cache.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hits:      %d\n", stats.Hits))
	sb.WriteString(fmt.Sprintf("Misses:    %d\n", stats.Misses))
	sb.WriteString(fmt.Sprintf("Evictions: %d\n", stats.Evictions))
	sb.WriteString(fmt.Sprintf("Size:      %d", stats.Size))

	p.printBox("RESULT CACHE", sb.String())
}
