package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tend/pkg/glyph"
)

type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	k.moods()
	k.icons()
	return nil
}

func (k *Key) moods() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Rating"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for m := glyph.MoodDrained; m <= glyph.MoodGlowing; m++ {
		g := m.Glyph()
		tbl.AddRow(g.Key, g.Symbol, g.Meaning)
	}

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nMood")))
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (k *Key) icons() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Symbol"), glyph.Bold("Insight"))
	for _, typ := range []string{"trend", "pattern", "correlation", "habit", "energy", "productivity"} {
		tbl.AddRow(glyph.InsightIcon(typ), typ)
	}

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nInsights")))
	_, _ = fmt.Fprintln(color.Output, tbl)
}
