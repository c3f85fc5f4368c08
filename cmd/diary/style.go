package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/calendar"
)

func newStyleCmd() *cobra.Command {
	var mode gridModeValue
	cmd := &cobra.Command{
		Use:   "style <text>",
		Short: "Show the font sizing chosen for a piece of entry text",
		Long: `Print the presentation style (font size, line height, alignment) the
calendar uses for the given text, and whether it is pinned to one line.
Write a newline as "\n".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := unescapeNewlines(args[0])
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "text:         %q\n", text)
			fmt.Fprintf(out, "presentation: %s\n", formatStyle(calendar.PresentationStyle(text)))
			cell := calendar.CellStyle(text)
			fmt.Fprintf(out, "cell:         %s\n", formatStyle(cell))
			if calendar.ForceSingleLine(text) {
				fmt.Fprintf(out, "single line:  yes (shrinks to %spt)\n", pt(cell.MinFontSize()))
			} else {
				fmt.Fprintln(out, "single line:  no")
			}

			if mode.IsSet() {
				fmt.Fprintf(out, "%-13s %s\n", string(mode.mode)+":", formatStyle(cell.Boosted(mode.mode)))
			}
			return nil
		},
	}
	addModeFlag(cmd.Flags(), &mode, "also show the size used in this grid mode")
	return cmd
}

func formatStyle(s calendar.Style) string {
	return fmt.Sprintf("font %spt, line %spt, %s", pt(s.FontSize), pt(s.LineHeight), s.Align)
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unescapeNewlines turns a literal \n typed on the command line into a newline.
func unescapeNewlines(s string) string {
	out := make([]rune, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}
