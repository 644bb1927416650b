package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"detectlab/domain/core"
	"detectlab/domain/report"
	"detectlab/domain/signal"
)

// RenderReportMarkdown builds the lab summary report as markdown
func RenderReportMarkdown(signals report.SignalSummary, results report.SuiteSummary) []byte {
	var b strings.Builder

	b.WriteString("# Detection Lab Report\n\n")

	b.WriteString("## Signal Detection\n\n")
	fmt.Fprintf(&b, "- Total signals: %d\n", signals.Total)
	fmt.Fprintf(&b, "- High priority: %d\n", signals.HighPriority)
	fmt.Fprintf(&b, "- Mean confidence: %.2f (max %.2f, p90 %.2f)\n",
		signals.MeanConfidence, signals.MaxConfidence, signals.P90Confidence)
	fmt.Fprintf(&b, "- Confidence distribution: low %d / medium %d / high %d\n\n",
		signals.Histogram.Low, signals.Histogram.Medium, signals.Histogram.High)

	if len(signals.ByCategory) > 0 {
		b.WriteString("| Category | Signals |\n|---|---|\n")
		categories := make([]string, 0, len(signals.ByCategory))
		for k := range signals.ByCategory {
			categories = append(categories, string(k))
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Fprintf(&b, "| %s | %d |\n", cat, signals.ByCategory[signal.CategoryKey(cat)])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Experiments\n\n")
	fmt.Fprintf(&b, "- Total experiments: %d\n", results.TotalExperiments)
	fmt.Fprintf(&b, "- High anomaly results: %d\n\n", results.HighAnomalyCount)

	if len(results.PerProtocol) > 0 {
		b.WriteString("| Protocol | Runs | Avg | Max | Follow-ups |\n|---|---|---|---|---|\n")
		keys := make([]core.ProtocolKey, 0, len(results.PerProtocol))
		for k := range results.PerProtocol {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, key := range keys {
			ps := results.PerProtocol[key]
			fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %d |\n",
				key, ps.Runs, ps.AvgAnomalyScore, ps.MaxAnomalyScore, ps.FollowUps)
		}
		b.WriteString("\n")
	}

	if top := results.TopIndicators(5); len(top) > 0 {
		b.WriteString("Most common indicators: " + strings.Join(top, ", ") + "\n")
	}

	return []byte(b.String())
}

// RenderReportHTML renders the markdown report to HTML
func RenderReportHTML(signals report.SignalSummary, results report.SuiteSummary) []byte {
	md := RenderReportMarkdown(signals, results)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.CompletePage})
	return markdown.Render(doc, renderer)
}
