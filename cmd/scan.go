package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/5alad/loveemu-lab/db"
	"github.com/5alad/loveemu-lab/model"
	"github.com/5alad/loveemu-lab/report"
	"github.com/5alad/loveemu-lab/search"
	"github.com/5alad/loveemu-lab/util"
	"github.com/spf13/cobra"
)

var scanOpts struct {
	exts     []string
	maxNum   int
	metadata bool
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanOpts.exts, "ext", nil, "only scan files with these extensions, e.g. --ext .spc,.nsf")
	scanCmd.Flags().IntVar(&scanOpts.maxNum, "max", 0, "scan at most this many files (0: no limit)")
	scanCmd.Flags().BoolVar(&scanOpts.metadata, "metadata", false, "annotate files with metadata from DynamoDB")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir> <mml>",
	Short: "Searches every file under a directory",
	Long:  `Searches every file under a directory for a melody and prints the matches grouped by file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1+melodyArgs() {
			return &usageError{msg: "scan takes a directory and an MML string"}
		}
		return runScan(cmd, args[0], args[1:])
	},
}

func lookupMetadata(paths []string) (model.FilenameToMetadata, error) {
	names := make(map[string]bool)
	for _, path := range paths {
		names[filepath.Base(path)] = true
	}

	res := make(model.FilenameToMetadata)
	for _, batch := range util.Chunk(util.SortedKeys(names), db.MaxBatch) {
		metadatas, err := db.GetFileMetadatas(batch)
		if err != nil {
			return nil, err
		}
		for k, v := range metadatas {
			res[k] = v
		}
	}
	return res, nil
}

func sectionHeader(path string, metadatas model.FilenameToMetadata) string {
	m, ok := metadatas[filepath.Base(path)]
	if !ok {
		return path
	}

	var details []string
	for _, s := range []string{m.Title, m.Game, m.Composer} {
		if s != "" {
			details = append(details, s)
		}
	}
	if m.Year != 0 {
		details = append(details, fmt.Sprint(m.Year))
	}
	if len(details) == 0 {
		return path
	}
	return fmt.Sprintf("%v (%v)", path, strings.Join(details, ", "))
}

func runScan(cmd *cobra.Command, root string, args []string) error {
	if err := checkNoteGap(searchOpts.gap); err != nil {
		return err
	}
	if err := search.ValidateNoteGap(searchOpts.gap); err != nil {
		return err
	}
	p, err := loadPattern(args)
	if err != nil {
		return err
	}

	paths, err := util.GatherAllPaths(root, scanOpts.exts, scanOpts.maxNum)
	if err != nil {
		return err
	}

	var metadatas model.FilenameToMetadata
	if scanOpts.metadata {
		metadatas, err = lookupMetadata(paths)
		if err != nil {
			return err
		}
	}

	progress := cmd.ErrOrStderr()
	if searchOpts.quiet {
		progress = io.Discard
	}

	pr := report.New(cmd.OutOrStdout(), searchOpts.quiet, searchOpts.verbose)
	for i, path := range paths {
		fmt.Fprintf(progress, "Processing %v of %v files\n", i+1, len(paths))
		buf, err := util.ReadInputFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipping %v because: %v\n", path, err)
			continue
		}
		pr.Section(sectionHeader(path, metadatas))
		if err := searchBuffer(cmd.Context(), pr, buf, p); err != nil {
			return err
		}
	}
	pr.Finish()

	if pr.Count() == 0 {
		return errNoMatch
	}
	return nil
}
