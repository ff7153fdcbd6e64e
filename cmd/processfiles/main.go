package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jessevdk/go-flags"

	"emicli/internal/app"
	"emicli/internal/config"
	apperrors "emicli/internal/errors"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// Options are the command-line options. Values left empty keep the
// configuration file or EMI_* environment value.
type Options struct {
	Output      string `short:"o" long:"output" description:"write the text report to this file instead of stdout"`
	CSV         string `long:"csv" description:"also write a one-cell-per-column CSV to this file"`
	CSVBOM      bool   `long:"csv-bom" description:"prefix the CSV copy with a UTF-8 BOM"`
	XLSX        string `long:"xlsx" description:"also write the report to this .xlsx workbook"`
	Sheet       string `long:"sheet" description:"workbook sheet name"`
	OnError     string `long:"on-error" choice:"abort" choice:"skip" description:"what to do when a file fails"`
	Ext         string `long:"ext" description:"input file extension"`
	Config      string `long:"config" description:"YAML configuration file"`
	MetricsFile string `long:"metrics-file" description:"write Prometheus textfile metrics here at exit"`
	Verbose     bool   `short:"v" long:"verbose" description:"debug logging"`

	Args struct {
		Folder   string `positional-arg-name:"folder" description:"directory holding the measurement files (default: current directory)"`
		MaxTimes string `positional-arg-name:"maxTimes" description:"observations per row (default 10)"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts := Options{}
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = app.AppName
	parser.Usage = "[options] [folder [maxTimes]]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return exitOK
		}
		fmt.Fprintf(stderr, "%s: %s\n", app.AppName, err)
		return exitUsage
	}
	if len(rest) > 0 {
		return usage(parser, stderr, apperrors.InvalidArgumentsError(
			fmt.Sprintf("too many arguments: %d given, at most 2 accepted", len(rest)+countPositional(opts))))
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", app.AppName, err)
		return exitFatal
	}
	if err := applyOptions(cfg, opts); err != nil {
		return usage(parser, stderr, err)
	}

	application, err := app.NewApplication(cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", app.AppName, err)
		return exitFatal
	}
	defer application.Stop(context.Background())

	if _, err := application.Run(context.Background()); err != nil {
		if apperrors.IsUsage(err) {
			return usage(parser, stderr, err)
		}
		fmt.Fprintf(stderr, "%s: %s\n", app.AppName, err)
		return exitFatal
	}
	return exitOK
}

// applyOptions overlays the command line onto cfg.
func applyOptions(cfg *config.Config, opts Options) error {
	if opts.Args.Folder != "" {
		cfg.Report.Folder = opts.Args.Folder
	}
	if opts.Args.MaxTimes != "" {
		n, err := strconv.Atoi(opts.Args.MaxTimes)
		if err != nil || n < 1 {
			return apperrors.InvalidArgumentsError(
				fmt.Sprintf("maxTimes must be a positive integer, got %q", opts.Args.MaxTimes))
		}
		cfg.Report.MaxTimes = n
	}
	if opts.Output != "" {
		cfg.Report.Output = opts.Output
	}
	if opts.CSV != "" {
		cfg.Report.CSVPath = opts.CSV
	}
	if opts.CSVBOM {
		cfg.Report.CSVBOM = true
	}
	if opts.XLSX != "" {
		cfg.Report.XLSXPath = opts.XLSX
	}
	if opts.Sheet != "" {
		cfg.Report.Sheet = opts.Sheet
	}
	if opts.OnError != "" {
		cfg.Report.OnError = opts.OnError
	}
	if opts.Ext != "" {
		cfg.Report.Extension = opts.Ext
	}
	if opts.MetricsFile != "" {
		cfg.Telemetry.MetricsFile = opts.MetricsFile
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}

func countPositional(opts Options) int {
	n := 0
	if opts.Args.Folder != "" {
		n++
	}
	if opts.Args.MaxTimes != "" {
		n++
	}
	return n
}

func usage(parser *flags.Parser, stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "%s: %s\n", app.AppName, err)
	fmt.Fprintf(stderr, "usage: %s %s\n", parser.Name, parser.Usage)
	return exitUsage
}
