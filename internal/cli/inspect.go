package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		config      string
		interactive bool
		opts        pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "inspect [timetable]",
		Short: "Show the segment stack of a laid-out timetable",
		Long: `Show the segment stack of a laid-out timetable.

Every station and track contributes segments to a vertical stack. inspect
runs one layout cycle and lists each segment with the height its
annotations asked for, the bounds it was given and the number of demands.
With --interactive the list can be browsed in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := loadOptions(config, opts)
			if err != nil {
				return err
			}
			merged.Logger = c.Logger
			d, err := c.layout(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(NewSegmentListModel(d)).Run()
				return err
			}
			printInspection(c.stdout(), d)
			return nil
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML options file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse segments interactively")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// layout loads and lays out a timetable without touching the cache.
func (c *CLI) layout(ctx context.Context, input string, opts pipeline.Options) (*diagram.Diagram, error) {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	tt, err := runner.LoadFile(ctx, input)
	if err != nil {
		return nil, err
	}
	return pipeline.Layout(ctx, tt, opts)
}

// printInspection writes the diagram summary and its segment table.
func printInspection(w io.Writer, d *diagram.Diagram) {
	stats := d.Stats()
	size := d.Size()

	fmt.Fprintln(w, StyleTitle.Render(d.Timetable().Name))
	printKeyValue(w, "Frame", fmt.Sprintf("%.0f × %.0f", size.W, size.H))
	printKeyValue(w, "Stations", fmt.Sprint(stats.Stations))
	printKeyValue(w, "Tracks", fmt.Sprint(stats.Tracks))
	printKeyValue(w, "Trains", fmt.Sprint(stats.Trains))
	printKeyValue(w, "Annotations", fmt.Sprint(stats.Annotations))
	printKeyValue(w, "Desired", fmt.Sprintf("%.1f px", stats.Desired))
	printKeyValue(w, "Scale", fmt.Sprintf("%.3f", stats.Scale))
	fmt.Fprintln(w)

	fmt.Fprintln(w, segmentTable(d.Segments(), -1))

	for _, pt := range d.Skipped() {
		printWarning(w, "skipped %s", pt.Event)
	}
}

// segmentTable renders segments as a bordered table. The row at index
// selected, if any, is highlighted.
func segmentTable(segments []diagram.SegmentInfo, selected int) string {
	rows := make([][]string, len(segments))
	for i, s := range segments {
		rows[i] = segmentRow(s)
	}
	return renderSegmentRows(rows, func(row int) bool { return row == selected })
}

func segmentRow(s diagram.SegmentInfo) []string {
	return []string{
		s.Name,
		fmt.Sprintf("%.1f", s.Desired),
		fmt.Sprintf("%.1f", s.Upper),
		fmt.Sprintf("%.1f", s.Lower),
		fmt.Sprintf("%.1f", s.Lower-s.Upper),
		fmt.Sprint(s.Demands),
	}
}

func renderSegmentRows(rows [][]string, isSelected func(row int) bool) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Segment", "Desired", "Upper", "Lower", "Height", "Demands").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case isSelected(row):
				return base.Foreground(colorGreen).Bold(true)
			case col > 0:
				return base.Foreground(colorGray).Align(lipgloss.Right)
			}
			return base
		}).
		Render()
}
