package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/5alad/loveemu-lab/mml"
	"github.com/5alad/loveemu-lab/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectOpts struct {
	format   string
	relative bool
}

func init() {
	inspectCmd.Flags().StringVar(&inspectOpts.format, "format", "yaml", "output format: yaml or json")
	inspectCmd.Flags().BoolVar(&inspectOpts.relative, "relative", false, "print the pattern normalized to the first note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:     "notes <mml>",
	Aliases: []string{"inspect"},
	Short:   "Prints the notes parsed from a melody",
	Long:    `Prints the notes parsed from an MML string (or --midi file). Times and durations are in ticks, 48 per quarter note.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != melodyArgs() {
			return &usageError{msg: "notes takes one MML argument, or none with --midi"}
		}
		return inspect(cmd.OutOrStdout(), args)
	},
}

func inspectValue(args []string) (any, error) {
	if !inspectOpts.relative && searchOpts.midiPath == "" {
		notes, err := mml.Parse(args[0])
		return notes, err
	}

	p, err := loadPattern(args)
	if err != nil {
		return nil, err
	}
	if inspectOpts.relative {
		return p, nil
	}
	notes := make(model.Notes, len(p.Notes))
	for i, n := range p.Notes {
		n.Key += p.Root
		notes[i] = n
	}
	return notes, nil
}

func inspect(w io.Writer, args []string) error {
	if inspectOpts.format != "yaml" && inspectOpts.format != "json" {
		return &configError{msg: fmt.Sprintf("unknown format %q", inspectOpts.format)}
	}

	v, err := inspectValue(args)
	if err != nil {
		return err
	}

	if inspectOpts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
