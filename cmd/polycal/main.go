package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ldelacroix/polycal/internal/calendar"
	"github.com/ldelacroix/polycal/internal/config"
	"github.com/ldelacroix/polycal/internal/feed"
	"github.com/ldelacroix/polycal/internal/l10n"
	"github.com/ldelacroix/polycal/internal/server"
	"github.com/ldelacroix/polycal/internal/timerange"
	"github.com/zalando/go-keyring"
)

// cliOptions collects the parsed flag values.
type cliOptions struct {
	date    string
	from    string
	to      string
	pattern string
	period  string
	lang    string
	serve   bool
	port    string
	vcfPath string
	webURL  string
	webUser string
	list    bool
}

// main delegates to runMain so deferred calls (closing log files) run before
// the process terminates; os.Exit does not run defers.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	var opts cliOptions
	flag.StringVar(&opts.date, config.FlagDate, "", config.FlagDescDate)
	flag.StringVar(&opts.from, config.FlagFrom, config.DefaultCalendar, config.FlagDescFrom)
	flag.StringVar(&opts.to, config.FlagTo, config.DefaultCalendar, config.FlagDescTo)
	flag.StringVar(&opts.pattern, config.FlagPattern, "", config.FlagDescPattern)
	flag.StringVar(&opts.period, config.FlagPeriod, "", config.FlagDescPeriod)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.StringVar(&opts.vcfPath, config.FlagVCF, "", config.FlagDescVCF)
	flag.StringVar(&opts.webURL, config.FlagWebURL, "", config.FlagDescWebURL)
	flag.StringVar(&opts.webUser, config.FlagWebUser, "", config.FlagDescWebUser)
	flag.BoolVar(&opts.list, config.FlagListKinds, false, config.FlagDescList)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires dependencies and dispatches to the selected mode.
func run(ctx context.Context, opts cliOptions) error {
	reg := calendar.NewRegistry()
	translator := l10n.New(opts.lang)

	if opts.list {
		return listKinds(reg)
	}
	if opts.serve {
		return runServer(ctx, opts, reg, translator)
	}
	return runConvert(opts, reg, translator)
}

// listKinds prints the descriptor of every supported calendar system.
func listKinds(reg *calendar.Registry) error {
	for _, info := range reg.Infos() {
		fmt.Printf("%-20s %-24s %-10s era %-4s epoch JDN %d\n",
			info.Kind, info.NativeName, info.Type, info.Era, int64(info.EpochJDN))
	}
	return nil
}

// resolveInputDate parses -date in the grammar of the -from calendar, or
// takes today when the flag is empty.
func resolveInputDate(opts cliOptions, reg *calendar.Registry) (calendar.Date, error) {
	from, err := calendar.ParseKind(opts.from)
	if err != nil {
		return calendar.Date{}, err
	}

	if opts.date == "" {
		return calendar.FromTime(time.Now(), from, reg)
	}

	d, ok := reg.Parse(opts.date, from)
	if !ok {
		return calendar.Date{}, fmt.Errorf("%s: %q", config.ErrBadISODate, opts.date)
	}
	return d, nil
}

// runConvert performs a one-shot conversion (or period resolution) and
// prints the result to stdout.
func runConvert(opts cliOptions, reg *calendar.Registry, translator *l10n.Translator) error {
	target, err := calendar.ParseKind(opts.to)
	if err != nil {
		return err
	}

	input, err := resolveInputDate(opts, reg)
	if err != nil {
		return err
	}

	if opts.period != "" {
		return runPeriod(opts, reg, translator, input, target)
	}

	out, err := reg.Convert(input, target)
	if err != nil {
		return err
	}
	text, err := reg.Format(out, opts.pattern)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// runPeriod resolves the requested granularity around the input date and
// prints the labelled range.
func runPeriod(opts cliOptions, reg *calendar.Registry, translator *l10n.Translator, input calendar.Date, target calendar.Kind) error {
	g, err := timerange.ParseGranularity(opts.period)
	if err != nil {
		return err
	}

	// The resolver anchors on Gregorian dates; normalize the input first.
	anchor, err := reg.Convert(input, calendar.Gregorian)
	if err != nil {
		return err
	}

	resolver := &timerange.Resolver{
		Registry: reg,
		Pattern:  opts.pattern,
		Labeler:  rangeLabeler(translator),
	}
	rng, err := resolver.Resolve(anchor.Year, anchor.Month, anchor.Day, g, target)
	if err != nil {
		return err
	}
	fmt.Println(rng.Label)
	return nil
}

// rangeLabeler builds a localized label for a resolved range.
func rangeLabeler(translator *l10n.Translator) timerange.Labeler {
	return func(g timerange.Granularity, start, end string) string {
		period := translator.Msg(g.TranslationKey())
		if start == end {
			return start
		}
		return translator.MsgData(config.TKeyRangeLabel, map[string]any{
			"Period": titleFirst(period),
			"Start":  start,
			"End":    end,
		})
	}
}

// titleFirst upper-cases the first rune of a localized period name.
func titleFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// summaryFormatter builds the localized event summary callback for the feed
// generator. The date argument is already in the target calendar.
func summaryFormatter(translator *l10n.Translator) func(name, date string, age int, yearKnown bool) string {
	return func(name, date string, age int, yearKnown bool) string {
		data := map[string]any{"Name": name, "Date": date}
		switch {
		case !yearKnown:
			return translator.MsgData(config.TKeyEvtSummary, data)
		case age == 0:
			return translator.MsgData(config.TKeyEvtSummaryBirth, data)
		default:
			data["Age"] = age
			return translator.MsgData(config.TKeyEvtSummaryAge, data)
		}
	}
}

// buildSyncConfig derives the feed source configuration from the flags. The
// web password is never a flag; it comes from the system keyring.
func buildSyncConfig(opts cliOptions) (feed.SyncConfig, error) {
	if opts.webURL != "" {
		cfg := feed.SyncConfig{
			Mode:    config.SourceModeWeb,
			WebURL:  opts.webURL,
			WebUser: opts.webUser,
		}
		if opts.webUser != "" {
			pass, err := keyring.Get(config.KeyringService, opts.webUser)
			if err != nil {
				slog.Warn(config.ErrKeyringRead,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			} else {
				cfg.WebPass = pass
			}
		}
		return cfg, nil
	}
	if opts.vcfPath != "" {
		return feed.SyncConfig{
			Mode:      config.SourceModeLocal,
			LocalPath: opts.vcfPath,
		}, nil
	}
	return feed.SyncConfig{}, fmt.Errorf("%s: %q", config.ErrModeUnsupport, "")
}

// runServer generates the feed, serves it over HTTP, and refreshes it at the
// standard interval until the context is cancelled.
func runServer(ctx context.Context, opts cliOptions, reg *calendar.Registry, translator *l10n.Translator) error {
	target, err := calendar.ParseKind(opts.to)
	if err != nil {
		return err
	}

	syncCfg, err := buildSyncConfig(opts)
	if err != nil {
		return err
	}

	gen := &feed.Generator{
		Clock:         feed.RealClock{},
		Fetcher:       feed.NewHTTPFetcher(),
		Registry:      reg,
		Target:        target,
		Pattern:       opts.pattern,
		FormatSummary: summaryFormatter(translator),
	}

	srv := server.NewFeedServer(opts.port, reg)

	refresh := func() {
		ics, _, _, err := gen.RunSync(ctx, syncCfg)
		if err != nil {
			slog.Error(config.ErrVCardParse,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
			return
		}
		srv.Update(ics)
	}
	refresh()

	go func() {
		ticker := time.NewTicker(config.DefaultICalRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	return srv.Start(ctx)
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	writers = append(writers, os.Stdout)

	// Attempt a file writer in the user's cache directory. O_TRUNC resets
	// logs on restart to prevent indefinite growth.
	if logPath, err := getLogFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
