package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Command names.
const (
	cmdText    = "text"
	cmdInput   = "input"
	cmdSubmit  = "submit"
	cmdHistory = "history"
	cmdSetup   = "setup"
	cmdHelp    = "help"
)

func main() {
	_ = godotenv.Load()

	verbose := false
	var args []string
	for _, a := range os.Args[1:] {
		if a == "-v" || a == "--verbose" {
			verbose = true
			continue
		}
		args = append(args, a)
	}

	log := newLogger(verbose)
	if err := run(context.Background(), log, args); err != nil {
		log.err(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return nil
	}

	switch args[0] {
	case cmdHelp, "-h", "--help":
		printUsage(os.Stdout)
		return nil
	case cmdText:
		return runText(ctx, log, args[1:])
	case cmdInput:
		return runInput(ctx, log, args[1:])
	case cmdSubmit:
		return runSubmit(ctx, log, args[1:])
	case cmdHistory:
		return runHistory(log, args[1:])
	case cmdSetup:
		return runSetup(log, args[1:])
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "aoc-env: Advent of Code environment CLI")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  aoc-env text    [--year Y] [--day D]")
	_, _ = fmt.Fprintln(w, "  aoc-env input   [--year Y] [--day D]")
	_, _ = fmt.Fprintln(w, "  aoc-env submit  --part P --answer A [--year Y] [--day D]")
	_, _ = fmt.Fprintln(w, "  aoc-env history [--year Y] [--day D]")
	_, _ = fmt.Fprintln(w, "  aoc-env setup   --session TOKEN")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Options:")
	_, _ = fmt.Fprintln(w, "  --config   Path to config.json (default: ./config.json)")
	_, _ = fmt.Fprintln(w, "  --year     Puzzle year (default: latest unlocked)")
	_, _ = fmt.Fprintln(w, "  --day      Puzzle day (default: latest unlocked)")
	_, _ = fmt.Fprintln(w, "  -v         Verbose informational logging")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Environment:")
	_, _ = fmt.Fprintln(w, "  AOC_SESSION  Session token, used when config has none")
	_, _ = fmt.Fprintln(w, "  NO_COLOR     Disable colored output")
}

// commonFlags are shared by every puzzle-addressing command.
type commonFlags struct {
	configPath string
	year, day  int
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.configPath, "config", "config.json", "path to config file")
	fs.IntVar(&f.year, "year", 0, "puzzle year")
	fs.IntVar(&f.day, "day", 0, "puzzle day")
	return f
}

// identity resolves the addressed puzzle, defaulting missing year/day to the
// most recently unlocked one.
func (f *commonFlags) identity(part int) puzzleIdentity {
	year, day := f.year, f.day
	if year == 0 || day == 0 {
		ly, ld := latestPuzzleDate(time.Now())
		if year == 0 {
			year = ly
		}
		if day == 0 {
			day = ld
		}
	}
	return puzzleIdentity{year: year, day: day, part: part}
}

// latestPuzzleDate returns the most recently unlocked puzzle. Puzzles unlock
// at midnight US Eastern (UTC-5), 25 per December.
func latestPuzzleDate(now time.Time) (year, day int) {
	est := now.UTC().Add(-5 * time.Hour)
	if est.Month() < time.December {
		return est.Year() - 1, 25
	}
	if est.Day() > 25 {
		return est.Year(), 25
	}
	return est.Year(), est.Day()
}

// buildPipeline wires config, credentials, client and cache together.
func buildPipeline(configPath string, log *logger) (*pipeline, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	creds, err := newCredentialStore(cfg)
	if err != nil {
		return nil, err
	}
	client, err := newSiteClient(cfg, creds, log)
	if err != nil {
		return nil, err
	}
	cache := newPuzzleCache(cfg.CacheDir)
	return newPipeline(client, cache, cfg.cooldown(), log), nil
}

func runText(ctx context.Context, log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdText, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := buildPipeline(cf.configPath, log)
	if err != nil {
		return err
	}
	id := cf.identity(0)
	text, err := p.fetchStatement(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("--- Advent of Code %d - Day %d ---\n\n", id.year, id.day)
	fmt.Println(text)
	return nil
}

func runInput(ctx context.Context, log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdInput, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := buildPipeline(cf.configPath, log)
	if err != nil {
		return err
	}
	input, err := p.fetchInput(ctx, cf.identity(0))
	if err != nil {
		return err
	}
	// Print verbatim: inputs are whitespace sensitive.
	fmt.Print(input)
	return nil
}

func runSubmit(ctx context.Context, log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdSubmit, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := addCommonFlags(fs)
	var (
		part   int
		answer string
	)
	fs.IntVar(&part, "part", 0, "puzzle part (1 or 2)")
	fs.StringVar(&answer, "answer", "", "answer to submit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if part == 0 {
		return errors.New("--part is required")
	}
	if strings.TrimSpace(answer) == "" {
		return errors.New("--answer is required")
	}

	p, err := buildPipeline(cf.configPath, log)
	if err != nil {
		return err
	}
	out, err := p.submitAnswer(ctx, cf.identity(part), answer)
	if err != nil {
		return err
	}
	fmt.Print(formatOutcomes([]submissionOutcome{out}))
	if out.Verdict == verdictRateLimited && out.WaitSeconds > 0 {
		log.warnf("server asks for a %ds wait before the next attempt", out.WaitSeconds)
	}
	return nil
}

// runHistory lists recorded submission outcomes. It reads only the cache,
// so it needs neither credentials nor network.
func runHistory(log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdHistory, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		return err
	}
	cache := newPuzzleCache(cfg.CacheDir)

	year := cf.year
	if year == 0 {
		year, _ = latestPuzzleDate(time.Now())
	}

	var outcomes []submissionOutcome
	if cf.day != 0 {
		outcomes, err = cache.submissions(year, cf.day)
	} else {
		outcomes, err = cache.yearSubmissions(year)
	}
	if err != nil {
		return err
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Timestamp.Before(outcomes[j].Timestamp)
	})
	fmt.Print(formatOutcomes(outcomes))
	return nil
}

func runSetup(log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdSetup, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		session    string
	)
	fs.StringVar(&configPath, "config", "config.json", "path to config file")
	fs.StringVar(&session, "session", "", "session cookie value from the puzzle site")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if session == "" {
		session = os.Getenv(sessionEnvVar)
	}
	session = strings.TrimSpace(session)
	if session == "" {
		return errors.New("--session is required (or set AOC_SESSION)")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.Session = session
	if err := saveConfig(configPath, cfg); err != nil {
		return err
	}
	// Deliberately not echoing the token anywhere.
	log.ok("config saved: session token updated")
	return nil
}
