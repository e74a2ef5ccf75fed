package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/sadopc/itemstat/internal/browse"
	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/model"
	"github.com/sadopc/itemstat/internal/report"
	"github.com/sadopc/itemstat/internal/sequence"
	"github.com/sadopc/itemstat/internal/stat"
)

func (a *app) rootCmd() *cobra.Command {
	var kind string

	root := &cobra.Command{
		Use:   "itemstat [flags] <path>",
		Short: "Report size, real size, size on disk, hard links and devices of a path",
		Long: heredoc.Doc(`
			itemstat computes filesystem statistics for a file, a link, a folder or a
			numbered file sequence.

			The size is the apparent size of every file. The real size counts each
			hard-linked inode once, and the size on disk counts allocated blocks.
			Folders are walked recursively.

			Settings are read from itemstat.yaml (current directory, then the user
			config directory), ITEMSTAT_* environment variables and flags, the last
			one winning.
		`),
		Example: heredoc.Doc(`
			itemstat /data/shots
			itemstat -o table --one-file-system /
			itemstat --type sequence 'render/shot.####.exr'
			itemstat ls -o table render
			itemstat seq 'render/shot.%04d.exr'
		`),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(a.stdout, "You have to specify a path")
				return nil
			}
			k, err := model.ParseKind(kind)
			if err != nil {
				return &model.InvalidPathError{Path: args[0], Err: err}
			}
			return a.runStat(cmd, args[0], k)
		},
	}

	pf := root.PersistentFlags()
	pf.Bool("follow-links", false, "Follow symbolic links, counting each target once")
	pf.Bool("one-file-system", false, "Do not descend into directories on other devices")
	pf.StringSliceP("exclude", "e", nil, "Gitignore-style patterns to exclude (repeatable)")
	pf.Bool("hidden", true, "Include entries whose name starts with a dot")
	pf.IntP("depth", "d", 0, "Maximum traversal depth (0 = unlimited)")
	pf.IntP("workers", "j", 0, "Read directories with this many parallel workers (0 or 1 = sequential)")
	pf.BoolP("keep-going", "k", false, "Skip unreadable entries instead of failing")
	pf.StringP("output", "o", "plain", "Output format: plain, table or json")
	pf.String("log-level", "warn", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Also write logs to this file, rotated")
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: itemstat.yaml in the search path)")
	pf.BoolVar(&a.legacyExit, "legacy-exit", false, `On failure print "Error" and exit with status 0`)
	pf.BoolVar(&a.noProgress, "no-progress", false, "Do not show walk progress on stderr")
	pf.StringVar(&a.save, "save", "", "Also write the JSON report to this file ('-' for stdout)")

	root.Flags().StringVarP(&kind, "type", "t", "auto", "Item type: auto, file, folder, link or sequence")

	root.AddCommand(a.lsCmd(), a.seqCmd())
	return root
}

// runStat stats one path. An undefined kind is detected from the
// filesystem; a missing path whose name is a pattern is a sequence.
func (a *app) runStat(cmd *cobra.Command, path string, kind model.Kind) error {
	if kind == model.Undefined {
		if _, err := os.Lstat(path); err != nil && isPattern(path) {
			kind = model.Sequence
		} else if model.ClassifyPath(path) == model.Link {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				kind = model.Folder
			}
		}
	}
	if kind == model.Sequence {
		return a.runSequence(cmd, path)
	}

	var (
		item model.Item
		err  error
	)
	if kind == model.Undefined {
		item, err = model.FromPath(path)
	} else {
		item, err = model.New(kind, path)
	}
	if err != nil {
		if _, statErr := os.Lstat(path); errors.Is(statErr, os.ErrNotExist) {
			return &model.NotFoundError{Path: path, Err: statErr}
		}
		return err
	}

	st, err := stat.New(cmd.Context(), item, a.statOptions())
	if err != nil {
		return err
	}
	if st.Errors() > 0 {
		logger.Get().Warn("some entries were skipped", "path", path, "errors", st.Errors())
	}

	p, err := a.printer()
	if err != nil {
		return err
	}
	if err := p.Stat(st); err != nil {
		return err
	}
	return a.saveJSON(report.NewSummary(st))
}

func isPattern(path string) bool {
	switch sequence.CheckPattern(filepath.Base(path), sequence.DetectNone) {
	case sequence.PatternStandard, sequence.PatternCStyle:
		return true
	}
	return false
}

func (a *app) seqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seq <pattern>",
		Short: "Find the frames of a sequence and report their statistics",
		Long: heredoc.Doc(`
			seq looks up the frames matching a pattern such as shot.####.exr,
			shot.@.exr, shot.%04d.exr or one explicit frame like shot.0001.exr,
			then sums the statistics of every frame found.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSequence(cmd, args[0])
		},
	}
}

func (a *app) runSequence(cmd *cobra.Command, pattern string) error {
	seq, ok, err := browse.BrowseSequence(pattern, sequence.PatternAll)
	if err != nil {
		return err
	}
	if !ok {
		return &model.InvalidPathError{Path: pattern, Kind: model.Sequence, Err: errors.New("not a sequence pattern")}
	}
	if seq.NbFiles() == 0 {
		return &model.NotFoundError{Path: pattern, Err: os.ErrNotExist}
	}

	item := model.NewSequence(seq, filepath.Dir(pattern))
	st, err := stat.New(cmd.Context(), item, a.statOptions())
	if err != nil {
		return err
	}

	p, err := a.printer()
	if err != nil {
		return err
	}
	if err := p.Sequence(seq, st); err != nil {
		return err
	}
	return a.saveJSON(report.NewSummary(st))
}

func (a *app) lsCmd() *cobra.Command {
	var (
		filters  []string
		kinds    []string
		holes    bool
		negative bool
	)

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory, grouping numbered files into sequences",
		Long: heredoc.Doc(`
			ls lists the items of a directory with their statistics. Numbered
			files sharing a name are shown as one sequence; numbered directories
			stay folders.

			A file path lists the other frames of its sequence. A missing path is
			used as a filter on its parent directory.

			Filters accept '*' and '?', '#' for one digit, '@' for a number and
			printf verbs such as %04d.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			opts := browse.DefaultOptions()
			opts.Filters = filters
			if !a.cfg.Hidden {
				opts.Detection |= sequence.DetectIgnoreDotFile
			} else {
				opts.Detection &^= sequence.DetectIgnoreDotFile
			}
			if holes {
				opts.Detection |= sequence.DetectWithoutHoles
			}
			if negative {
				opts.Detection |= sequence.DetectNegative
			}
			if len(kinds) > 0 {
				opts.Kinds = model.Undefined
				for _, name := range kinds {
					k, err := model.ParseKind(name)
					if err != nil {
						return &model.InvalidPathError{Path: path, Err: err}
					}
					opts.Kinds |= k
				}
			}

			return a.runList(cmd, path, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&filters, "filter", "f", nil, "Only list names matching these patterns (repeatable)")
	f.StringSliceVar(&kinds, "kind", nil, "Only list these kinds: file, folder, link, sequence (repeatable)")
	f.BoolVar(&holes, "split-holes", false, "Split sequences at missing frames")
	f.BoolVar(&negative, "negative", false, "Read a leading '-' as part of frame numbers")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, path string, opts browse.Options) error {
	items, err := browse.Browse(path, opts)
	if err != nil {
		return err
	}

	sopts := a.statOptions()
	sopts.Walk.Progress = nil

	rows := make([]report.Row, 0, len(items))
	failed := 0
	for _, it := range items {
		st, err := stat.New(cmd.Context(), it, sopts)
		if err != nil {
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Get().Warn("cannot stat item", "item", it.String(), "err", err)
			failed++
		}
		rows = append(rows, report.Row{Item: it, Stat: st, Err: err})
	}

	p, err := a.printer()
	if err != nil {
		return err
	}
	if err := p.Listing(rows); err != nil {
		return err
	}

	summaries := make([]report.Summary, 0, len(rows))
	for _, r := range rows {
		if r.Stat != nil {
			summaries = append(summaries, report.NewSummary(r.Stat))
		}
	}
	if err := a.saveJSON(summaries); err != nil {
		return err
	}

	if failed > 0 && !a.cfg.KeepGoing {
		return fmt.Errorf("%d of %d items could not be read", failed, len(rows))
	}
	return nil
}
