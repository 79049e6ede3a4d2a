// Command whentext parses natural-language date and time expressions from
// its arguments and prints the resolved values, one per line.
//
//	$ whentext --now 2018-08-04 "7/17 4 or 5 PM"
//	2018-07-17 16:00
//	2018-07-17 17:00
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/whentext/whentext"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "whentext:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		nowFlag     string
		direction   string
		noInfer     bool
		showMatches bool
	)
	cmd := &cobra.Command{
		Use:           "whentext [flags] text...",
		Short:         "parse natural-language dates and times",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := whentext.DefaultConfig()
			cfg.InferDatetimes = !noInfer
			dir, err := whentext.ParseDirection(direction)
			if err != nil {
				return err
			}
			cfg.Direction = dir
			if nowFlag != "" {
				now, err := parseNow(nowFlag)
				if err != nil {
					return err
				}
				cfg.Now = now
			}
			text := strings.Join(args, " ")
			if showMatches {
				matches, err := whentext.ParseMatched(text, cfg)
				if err != nil {
					return err
				}
				for _, m := range matches {
					fmt.Fprintf(cmd.OutOrStdout(), "%q [%d:%d]\t%s\n", m.Text, m.Start, m.End, m.Value)
				}
				return nil
			}
			values, err := whentext.Parse(text, cfg)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "reference instant, RFC 3339 or YYYY-MM-DD (default: wall clock)")
	cmd.Flags().StringVar(&direction, "direction", "next", "occurrence to pick for underspecified moments: next, previous or this")
	cmd.Flags().BoolVar(&noInfer, "no-infer", false, "keep partial results partial instead of completing them near now")
	cmd.Flags().BoolVar(&showMatches, "matched", false, "also print the matched substring and its byte offsets")
	return cmd
}

func parseNow(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse --now value %q", s)
}
