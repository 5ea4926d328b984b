package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var searchOpts struct {
	quiet    bool
	verbose  bool
	gap      int
	midiPath string
	track    int
}

var rootCmd = &cobra.Command{
	Use:           "melosearch [options] <input-file> <mml>",
	Short:         "Search a byte sequence in a file by melody",
	Long:          longUsage(),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, args)
	},
}

func longUsage() string {
	var sb strings.Builder
	report.Usage(&sb, "melosearch")
	return sb.String()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&searchOpts.quiet, "quiet", "q", false, "quiet mode, prints only errors and offsets")
	flags.BoolVarP(&searchOpts.verbose, "verbose", "v", false, "also print where each note was found")
	flags.IntVarP(&searchOpts.gap, "length", "l", constants.GetDefaultNoteGap(), "max distance between notes (in bytes)")
	flags.StringVar(&searchOpts.midiPath, "midi", "", "read the melody from a MIDI file instead of MML")
	flags.IntVar(&searchOpts.track, "track", -1, "MIDI track to read the melody from (-1: first track with notes)")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if errors.Is(err, errNoMatch) {
		os.Exit(1)
	}
	cobra.CheckErr(err)
}
