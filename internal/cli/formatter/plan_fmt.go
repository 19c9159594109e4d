package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
)

const loadBarWidth = 12

// FormatPlan renders every term with its courses, followed by the unassigned
// bucket and any invalid placements.
func FormatPlan(view *app.PlanView) string {
	var b strings.Builder
	th := view.Thresholds

	b.WriteString(Header("Plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  units %d-%d (target %d)  difficulty max %d\n\n",
		Dim(string(view.Settings.AcademicSystem)), th.MinUnits, th.MaxUnits, th.TargetUnits, th.MaxDifficulty)

	invalid := make(map[string]planner.InvalidCourse, len(view.Invalid))
	for _, ic := range view.Invalid {
		invalid[ic.CourseID] = ic
	}

	for _, term := range view.Terms {
		b.WriteString(termLine(term, th, view.OverCapacity))
		b.WriteString("\n")
		pinned := make(map[string]bool, len(term.Pinned))
		for _, id := range term.Pinned {
			pinned[id] = true
		}
		for _, id := range term.Courses {
			b.WriteString("    ")
			b.WriteString(courseLine(view.Courses[id], id, pinned[id]))
			if ic, ok := invalid[id]; ok {
				b.WriteString("  ")
				b.WriteString(StyleRed.Render("✖ " + ic.Verdict.Reason))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if len(view.Unassigned) == 0 {
		b.WriteString(StyleGreen.Render("All courses placed."))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s (%d)\n", StyleBold.Render("Unassigned"), len(view.Unassigned))
		for _, id := range view.Unassigned {
			b.WriteString("    ")
			b.WriteString(courseLine(view.Courses[id], id, false))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func termLine(term planner.TermSnapshot, th planner.Thresholds, over []string) string {
	label := StyleBold.Render(term.Label)
	var tags []string
	if term.PreTerm {
		tags = append(tags, Dim("pre-term"))
	}
	if term.Locked {
		tags = append(tags, StyleBlue.Render("locked"))
	}
	if slices.Contains(over, term.ID) {
		tags = append(tags, StyleRed.Render("over capacity"))
	}
	load := RenderLoad(term.Units, th.MinUnits, th.MaxUnits, loadBarWidth)
	if term.PreTerm {
		load = Dim(fmt.Sprintf("%d units", term.Units))
	}
	line := fmt.Sprintf("  %s %s  %s  %s", label, Dim("("+term.ID+")"), load, Dim(fmt.Sprintf("diff %d", term.Difficulty)))
	if len(tags) > 0 {
		line += "  " + strings.Join(tags, " ")
	}
	return line
}

func courseLine(c domain.Course, id string, pinned bool) string {
	name := c.DisplayName()
	if name == "" {
		name = id
	}
	line := fmt.Sprintf("%-10s %s %s", id, name, Dim(fmt.Sprintf("%du/%dd", c.Units, c.Load())))
	if pinned {
		line += " " + StyleBlue.Render("pinned")
	}
	if c.Category != "" && c.Category != domain.CategoryRequired {
		line += " " + CategoryBadge(c.Category)
	}
	return line
}

// FormatRun summarises an automatic planning run.
func FormatRun(resp *app.RunPlanResponse) string {
	var b strings.Builder
	b.WriteString(FormatPlan(resp.View))
	b.WriteString("\n")

	phases := []domain.Phase{
		domain.PhaseLocked, domain.PhasePinned, domain.PhasePreTerm,
		domain.PhasePrimary, domain.PhaseSecondary, domain.PhaseTertiary,
		domain.PhaseFallback, domain.PhaseCleanup,
	}
	var parts []string
	for _, p := range phases {
		if n := resp.Placements[p]; n > 0 {
			parts = append(parts, PhaseColor(p).Render(fmt.Sprintf("%s %d", p, n)))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, "Placed by phase: %s\n", strings.Join(parts, ", "))
	}

	if len(resp.Unplaced) > 0 {
		rows := make([][]string, 0, len(resp.Unplaced))
		for _, d := range resp.Unplaced {
			rows = append(rows, []string{d.CourseID, StyleYellow.Render(d.Reason)})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"COURSE", "REASON"}, rows))
	}

	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("run %s in %s", resp.RunID, resp.Duration.Round(time.Millisecond))))
	return b.String()
}

// FormatVerdict renders the outcome of a placement or placement check.
func FormatVerdict(resp *app.PlacementResponse) string {
	if resp.Verdict.Valid {
		return StyleGreen.Render(fmt.Sprintf("✔ %s fits in %s", resp.CourseID, resp.TermID)) + "\n"
	}
	return StyleRed.Render(fmt.Sprintf("✖ %s in %s: %s (%s)", resp.CourseID, resp.TermID, resp.Verdict.Reason, resp.Verdict.Code)) + "\n"
}

// FormatHistory lists recent planning runs, newest first.
func FormatHistory(runs []*domain.PlanRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No planning runs yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		unplaced := fmt.Sprintf("%d", r.Unplaced)
		if r.Unplaced > 0 {
			unplaced = StyleYellow.Render(unplaced)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestampFrom(r.StartedAt, now),
			fmt.Sprintf("%d", r.Placed),
			unplaced,
			fmt.Sprintf("%d", r.OverCapacity),
			fmt.Sprintf("%d-%d", r.MinUnits, r.MaxUnits),
		})
	}
	return RenderTable([]string{"RUN", "WHEN", "PLACED", "UNPLACED", "OVER", "UNITS"}, rows)
}

// FormatRunDetail renders one stored run with its per-course outcomes.
func FormatRunDetail(run *domain.PlanRun) string {
	var b strings.Builder
	b.WriteString(Header("Run " + run.ID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  placed %d  unplaced %d  over capacity %d  %dms\n\n",
		run.StartedAt.Format(time.RFC3339), run.Placed, run.Unplaced, run.OverCapacity, run.DurationMs)

	rows := make([][]string, 0, len(run.Diagnostics))
	for _, d := range run.Diagnostics {
		term := d.TermID
		if term == "" {
			term = Dim("unassigned")
		}
		rows = append(rows, []string{d.CourseID, term, PhaseColor(d.Phase).Render(string(d.Phase)), d.Reason})
	}
	b.WriteString(RenderTable([]string{"COURSE", "TERM", "PHASE", "REASON"}, rows))
	return b.String()
}

// FormatSettings renders stored settings next to the limits they resolve to.
func FormatSettings(view *app.SettingsView) string {
	s := view.Settings
	th := view.Thresholds
	custom := Dim("(auto)")
	if s.CustomTermCount != nil {
		custom = fmt.Sprintf("%d", *s.CustomTermCount)
	}
	rows := [][]string{
		{"academic system", string(s.AcademicSystem)},
		{"graduation years", fmt.Sprintf("%d", s.GraduationYears)},
		{"planning terms", fmt.Sprintf("%d", view.TermCount)},
		{"custom term count", custom},
		{"min units", Override(s.MinUnits, th.MinUnits)},
		{"target units", Override(s.TargetUnits, th.TargetUnits)},
		{"max units", Override(s.MaxUnits, th.MaxUnits)},
		{"target difficulty", Override(s.TargetDifficulty, th.TargetDifficulty)},
		{"max difficulty", Override(s.MaxDifficulty, th.MaxDifficulty)},
		{"top-up attempts", Override(s.TopUpAttempts, th.TopUpAttempts)},
	}
	return RenderTable([]string{"SETTING", "VALUE"}, rows)
}

// FormatImport summarises a catalog import.
func FormatImport(res *app.ImportResult) string {
	return fmt.Sprintf("%s %d courses (%d plannable, %d units); %d kept in terms\n",
		StyleGreen.Render("Imported"), res.CourseCount, res.PlannableCount, res.TotalUnits, res.Kept)
}
