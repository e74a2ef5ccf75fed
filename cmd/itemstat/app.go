package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sadopc/itemstat/internal/config"
	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/report"
	"github.com/sadopc/itemstat/internal/stat"
	"github.com/sadopc/itemstat/internal/walker"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	stdout, stderr io.Writer

	cfgFile    string
	legacyExit bool
	noProgress bool
	save       string

	cfg *config.Config
}

// setup loads the configuration and installs the logger. It runs before
// every command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := cfg.LoggerConfig()
	lc.Writer = a.stderr
	if err := logger.Init(lc); err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Get().Debug("loaded config", "file", cfg.File)
	}
	return nil
}

func (a *app) printer() (*report.Printer, error) {
	format, err := report.ParseFormat(a.cfg.Output)
	if err != nil {
		return nil, err
	}
	tty := isTerminal(a.stdout)
	color := tty && os.Getenv("NO_COLOR") == ""

	width := 0
	if f, ok := a.stdout.(*os.File); ok && tty {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}
	return report.NewPrinter(a.stdout, format, report.DefaultTheme(color), width), nil
}

func (a *app) statOptions() stat.Options {
	opts := stat.Options{
		Walk:            a.cfg.WalkOptions(),
		ContinueOnError: a.cfg.KeepGoing,
	}
	if !a.noProgress && a.cfg.Output != string(report.FormatJSON) && isTerminal(a.stderr) {
		opts.Walk.Progress = a.showProgress
	}
	return opts
}

// showProgress redraws a single status line on stderr.
func (a *app) showProgress(p walker.Progress) {
	if p.Done {
		fmt.Fprint(a.stderr, "\r\033[K")
		return
	}
	fmt.Fprintf(a.stderr, "\r\033[KScanning: %s files, %s dirs, %s, %.0f items/s",
		report.FormatCount(p.Files), report.FormatCount(p.Dirs), report.FormatSize(p.Bytes), p.ItemsPerSecond())
}

// saveJSON writes v to the --save file, if any.
func (a *app) saveJSON(v any) error {
	if a.save == "" {
		return nil
	}
	if err := report.SaveJSON(a.save, a.stdout, v); err != nil {
		return err
	}
	logger.Get().Info("saved report", "file", a.save)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
