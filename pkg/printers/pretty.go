package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/glyph"
	"tableflip.dev/tend/pkg/insight"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Day renders the full day summary: check-in, tracked entries, and notes.
func (pp *PrettyPrint) Day(sum *app.DaySummary) {
	pp.Title(sum.Date)
	pp.CheckIn(sum.CheckIn)
	pp.Entries(sum.Entries...)
	if sum.TotalMinutes > 0 {
		f := color.New(color.Faint)
		_, _ = f.Printf("tracked %dh%02dm\n", sum.TotalMinutes/60, sum.TotalMinutes%60)
	}
	pp.Notes(sum.Notes)
}

// CheckIn renders the morning check-in, or a faint hint when there is none.
func (pp *PrettyPrint) CheckIn(c *checkin.CheckIn) {
	if c == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no check-in yet, run `tend checkin`")
		return
	}
	t := color.New()
	_, _ = t.Printf(" energy %s  positivity %s", levels(c.EnergyLevel), levels(c.PositivityLevel))
	if c.FocusLevel > 0 {
		_, _ = t.Printf("  focus %s", levels(c.FocusLevel))
	}
	if c.SleepQuality > 0 {
		_, _ = t.Printf("  sleep %s", levels(c.SleepQuality))
	}
	_, _ = t.Println("")
	if len(c.Emotions) > 0 {
		_, _ = t.Printf(" feeling %s\n", strings.Join(c.Emotions, ", "))
	}
	if c.MainGoal != "" {
		_, _ = t.Printf(" today: %s\n", c.MainGoal)
	}
	if c.Gratitude != "" {
		f := color.New(color.Faint)
		_, _ = f.Printf(" grateful for %s\n", c.Gratitude)
	}
}

// levels renders an n/10 scale as a compact fraction.
func levels(n int) string {
	return fmt.Sprintf("%d/10", n)
}

// Entries renders tracked entries as a table ordered by start time.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" nothing tracked\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	c := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		window, mood, label, category := e.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), window, mood, label, c.Sprint(category))
		} else {
			tbl.AddRow(window, mood, label, c.Sprint(category))
		}
	}
	fmt.Println(tbl)
}

// Notes renders the day's prompt responses.
func (pp *PrettyPrint) Notes(notes []checkin.PromptResponse) {
	if len(notes) == 0 {
		return
	}
	f := color.New(color.Faint)
	t := color.New()
	for _, n := range notes {
		_, _ = f.Printf(" %s\n", n.Prompt)
		_, _ = t.Printf("   %s\n", n.Response)
	}
}

// Week renders the weekly aggregate: minutes per category and check-in
// averages.
func (pp *PrettyPrint) Week(sum *app.WeekSummary) {
	pp.Title(fmt.Sprintf("week of %s", sum.Start.Format("Jan 2")))

	if len(sum.MinutesByCategory) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" nothing tracked\n")
	} else {
		cats := make([]string, 0, len(sum.MinutesByCategory))
		for cat := range sum.MinutesByCategory {
			cats = append(cats, cat)
		}
		sort.Slice(cats, func(i, j int) bool {
			return sum.MinutesByCategory[cats[i]] > sum.MinutesByCategory[cats[j]]
		})

		c := color.New(color.FgCyan)
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, cat := range cats {
			m := sum.MinutesByCategory[cat]
			tbl.AddRow(c.Sprint(cat), fmt.Sprintf("%dh%02dm", m/60, m%60))
		}
		fmt.Println(tbl)
	}

	if len(sum.CheckIns) > 0 {
		f := color.New(color.Faint)
		_, _ = f.Printf(" %d check-ins, energy %.1f, positivity %.1f\n",
			len(sum.CheckIns), sum.AverageEnergy, sum.AveragePositivity)
	}
}

// Insights renders the insight set with type icons.
func (pp *PrettyPrint) Insights(insights []insight.Insight, fromCache bool) {
	if len(insights) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no insights\n")
		return
	}
	pp.Title(fmt.Sprintf("%s insights", insights[0].Period))

	t := color.New()
	m := color.New(color.FgMagenta)
	for _, in := range insights {
		icon := in.Icon
		if icon == "" {
			icon = glyph.InsightIcon(string(in.Type))
		}
		_, _ = m.Printf(" %s ", icon)
		_, _ = t.Println(in.Content)
	}
	if fromCache {
		f := color.New(color.Faint)
		_, _ = f.Printf(" cached %s\n", insights[0].GeneratedAt.Local().Format("Jan 2 15:04"))
	}
}

// Goals renders the current goal list.
func (pp *PrettyPrint) Goals(goals []string) {
	pp.Title("goals")
	if len(goals) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none set, run `tend goals set`\n")
		return
	}
	t := color.New()
	for _, g := range goals {
		_, _ = t.Printf(" %s %s\n", glyph.GoalSymbol, g)
	}
}
