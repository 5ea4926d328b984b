package cmd

import (
	"fmt"

	"github.com/5alad/loveemu-lab/midi"
	"github.com/5alad/loveemu-lab/mml"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <mml> <output.mid>",
	Short: "Writes a melody as a Standard MIDI File",
	Long:  `Writes a melody as a Standard MIDI File, so it can be checked by ear before searching for it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := mml.Parse(args[0])
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			return mml.EmptyError()
		}
		if err := midi.WriteMelodyFile(args[1], notes); err != nil {
			return err
		}
		if !searchOpts.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v notes to %v\n", len(notes), args[1])
		}
		return nil
	},
}
