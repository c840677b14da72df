package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"dalc/internal/symbols"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List built-in functions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, set, err := loadBuiltins()
		if err != nil {
			return err
		}
		showKeywords, err := cmd.Flags().GetBool("keywords")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if showKeywords {
			for _, kw := range set.Keywords() {
				fmt.Fprintln(out, kw)
			}
			return nil
		}
		renderBuiltins(out, set)
		return nil
	},
}

func init() {
	builtinsCmd.Flags().Bool("keywords", false, "list reserved keywords instead")
}

// renderBuiltins prints NAME / PARAMS / RESULT columns in declaration order.
func renderBuiltins(w io.Writer, set *symbols.BuiltinSet) {
	rows := [][3]string{{"NAME", "PARAMS", "RESULT"}}
	for _, sig := range set.All() {
		params := make([]string, 0, sig.Arity())
		for _, p := range sig.Params() {
			params = append(params, p.NameKey())
		}
		result := "-"
		if sig.Result() != nil {
			result = sig.Result().NameKey()
		}
		rows = append(rows, [3]string{sig.Name(), "(" + strings.Join(params, ", ") + ")", result})
	}

	var widths [2]int
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s  %s  %s\n",
			runewidth.FillRight(row[0], widths[0]),
			runewidth.FillRight(row[1], widths[1]),
			row[2])
	}
	fmt.Fprintf(w, "\n%d functions, fingerprint %s\n", set.Len(), shortFingerprint(set.Fingerprint()))
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

