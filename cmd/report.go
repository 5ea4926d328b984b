package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
	"github.com/5alad/loveemu-lab/search"
	"github.com/5alad/loveemu-lab/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <input-file> <mml>",
	Short: "Counts matches for every note gap",
	Long:  `Counts matches for every allowed note gap, which helps pick a -l value that is tight enough.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1+melodyArgs() {
			return &usageError{msg: "report takes an input file and an MML string"}
		}
		buf, err := util.ReadInputFile(args[0])
		if err != nil {
			return err
		}
		p, err := loadPattern(args[1:])
		if err != nil {
			return err
		}
		return printGapReport(cmd.Context(), cmd.OutOrStdout(), buf, p)
	},
}

type gapReport struct {
	gap        int
	numMatches int
	firstMatch int
}

func analyzeGaps(ctx context.Context, buf []byte, p model.Pattern) ([]gapReport, error) {
	var res []gapReport
	for gap := constants.MinNoteGap; gap <= constants.MaxNoteGap; gap++ {
		s, err := search.NewScanner(ctx, buf, p, gap)
		if err != nil {
			return nil, err
		}
		r := gapReport{gap: gap, firstMatch: -1}
		for s.Next() {
			if r.numMatches == 0 {
				r.firstMatch = s.Match().Offset
			}
			r.numMatches++
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func printGapReport(ctx context.Context, w io.Writer, buf []byte, p model.Pattern) error {
	reports, err := analyzeGaps(ctx, buf, p)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "notes: %v, bytes: %v\n", p.Len(), len(buf))
	for _, r := range reports {
		if r.numMatches == 0 {
			fmt.Fprintf(w, "-l%-2d %8v\n", r.gap, 0)
			continue
		}
		fmt.Fprintf(w, "-l%-2d %8v  first at %08X\n", r.gap, r.numMatches, r.firstMatch)
	}
	return nil
}
