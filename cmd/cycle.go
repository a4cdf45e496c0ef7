package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/maxBezel/formulabot/refcycle"

	"github.com/spf13/cobra"
)

var cycleOpts struct {
	text   string
	cursor int
	x, y   int
	times  int
}

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Toggle a reference in a formula and print the result",
	Long: `Runs the F4 toggle on --text without the bot. The cursor defaults to the
end of the text and the anchor to the configured one. --times repeats the
toggle, printing every step.`,
	Example: `  formulabot cycle --text '=S[3, 4] * 2' --cursor 4 --x 1 --y 1 --times 4`,
	RunE:    runCycle,
}

func init() {
	f := cycleCmd.Flags()
	f.StringVar(&cycleOpts.text, "text", "", "formula text")
	f.IntVar(&cycleOpts.cursor, "cursor", 0, "cursor byte offset (default end of text)")
	f.IntVar(&cycleOpts.x, "x", 0, "anchor column (default from config)")
	f.IntVar(&cycleOpts.y, "y", 0, "anchor row (default from config)")
	f.IntVar(&cycleOpts.times, "times", 1, "number of toggles to run")
	_ = cycleCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	if cycleOpts.times < 1 {
		return fmt.Errorf("--times must be at least 1, got %d", cycleOpts.times)
	}

	flags := cmd.Flags()
	anchor := refcycle.Anchor{X: cycleOpts.x, Y: cycleOpts.y}
	if cfg != nil {
		if !flags.Changed("x") {
			anchor.X = cfg.Anchor.X
		}
		if !flags.Changed("y") {
			anchor.Y = cfg.Anchor.Y
		}
	}

	cursor := cycleOpts.cursor
	if !flags.Changed("cursor") {
		cursor = len(cycleOpts.text)
	}

	return printCycle(cmd.OutOrStdout(), cycleOpts.text, cursor, anchor, cycleOpts.times)
}

// printCycle runs the toggle times times, feeding each result into the next
// step, and writes one line per step.
func printCycle(w io.Writer, text string, cursor int, anchor refcycle.Anchor, times int) error {
	for i := 1; i <= times; i++ {
		res, err := refcycle.Cycle(text, cursor, anchor)
		if errors.Is(err, refcycle.ErrNoReference) || errors.Is(err, refcycle.ErrNothingToToggle) {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%d: %s (cursor %d)\n", i, res.Text, res.Cursor)
		text, cursor = res.Text, res.Cursor
	}
	return nil
}
