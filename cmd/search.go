package cmd

import (
	"context"

	"github.com/5alad/loveemu-lab/melody"
	"github.com/5alad/loveemu-lab/model"
	"github.com/5alad/loveemu-lab/report"
	"github.com/5alad/loveemu-lab/search"
	"github.com/5alad/loveemu-lab/util"
	"github.com/spf13/cobra"
)

// melodyArgs is how many positional arguments name the melody: the MML
// string, or nothing when --midi is given.
func melodyArgs() int {
	if searchOpts.midiPath != "" {
		return 0
	}
	return 1
}

func loadPattern(args []string) (model.Pattern, error) {
	if searchOpts.midiPath != "" {
		return melody.FromMidiFile(searchOpts.midiPath, searchOpts.track)
	}
	return melody.FromMML(args[0])
}

func checkNoteGap(gap int) error {
	if gap < 1 {
		return &configError{msg: `option "-l" must have a positive number`}
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) != 1+melodyArgs() {
		report.Usage(cmd.ErrOrStderr(), cmd.CommandPath())
		return &usageError{msg: "wrong number of arguments"}
	}
	if err := checkNoteGap(searchOpts.gap); err != nil {
		return err
	}

	buf, err := util.ReadInputFile(args[0])
	if err != nil {
		return err
	}
	if err := search.ValidateNoteGap(searchOpts.gap); err != nil {
		return err
	}
	p, err := loadPattern(args[1:])
	if err != nil {
		return err
	}

	pr := report.New(cmd.OutOrStdout(), searchOpts.quiet, searchOpts.verbose)
	if err := searchBuffer(cmd.Context(), pr, buf, p); err != nil {
		return err
	}
	pr.Finish()

	if pr.Count() == 0 {
		return errNoMatch
	}
	return nil
}

func searchBuffer(ctx context.Context, pr *report.Printer, buf []byte, p model.Pattern) error {
	s, err := search.NewScanner(ctx, buf, p, searchOpts.gap)
	if err != nil {
		return err
	}
	for s.Next() {
		pr.Print(s.Match())
	}
	return s.Err()
}
