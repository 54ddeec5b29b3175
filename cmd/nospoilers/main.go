package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/JohnDeved/no-spoilers/internal/client"
	"github.com/JohnDeved/no-spoilers/internal/config"
	"github.com/JohnDeved/no-spoilers/internal/schedule"
	"github.com/JohnDeved/no-spoilers/internal/tui"
	"github.com/JohnDeved/no-spoilers/internal/vod"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nospoilers",
		Short: "Pick a recent pro match and get its VODs without seeing the score",
		Long: `nospoilers lists recent results from tracked events and favorite teams,
numbered by day, and prints VOD links for the match you pick, English streams first.`,
		SilenceUsage: true,
		RunE:         runPrompt,
	}
	rootCmd.PersistentFlags().String("driver", "", "Page driver: chrome or http (default from config)")
	rootCmd.PersistentFlags().String("url", "", "Results page URL (default from config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogger(verbose)
	}

	// List command (non-interactive schedule)
	listCmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the filtered schedule and exit",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().Bool("json", false, "Output JSON")

	vodsCmd := &cobra.Command{
		Use:   "vods <number>",
		Short: "Print the VODs of a listed match",
		Args:  cobra.ExactArgs(1),
		RunE:  runVods,
	}
	vodsCmd.Flags().Bool("json", false, "Output JSON")

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse matches in a full-screen view",
		Args:  cobra.NoArgs,
		RunE:  runBrowse,
	}

	rootCmd.AddCommand(listCmd, vodsCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// openSession loads config and starts the page driver. The returned close
// function releases the browser and must always be called.
func openSession(cmd *cobra.Command) (tui.Session, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return tui.Session{}, nil, fmt.Errorf("loading config: %w", err)
	}

	if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
		cfg.Driver = driver
	}
	if u, _ := cmd.Flags().GetString("url"); u != "" {
		cfg.ResultsURL = u
	}

	colors, err := cfg.TeamColors()
	if err != nil {
		slog.Warn("team colors unavailable", "err", err)
	}

	var fetcher client.Fetcher
	closeFn := func() {}
	switch cfg.Driver {
	case config.DriverHTTP:
		fetcher = client.NewHTTPFetcher(cfg.UserAgent, cfg.RequestsPerSecond)
	case config.DriverChrome, "":
		chrome, err := client.NewChromeFetcher(cfg.UserAgent, cfg.WaitTimeout())
		if err != nil {
			return tui.Session{}, nil, err
		}
		fetcher = chrome
		closeFn = chrome.Close
	default:
		return tui.Session{}, nil, fmt.Errorf("unknown driver %q (want %s or %s)", cfg.Driver, config.DriverChrome, config.DriverHTTP)
	}

	sess := tui.Session{
		Provider:   client.New(cfg.ResultsURL, fetcher),
		Classifier: schedule.NewClassifier(cfg.SponsorGroups, cfg.FavoriteTeams),
		Selector:   vod.NewSelector(cfg.EnglishCountries),
		Theme:      tui.NewTheme(colors),
		Now:        time.Now,
	}
	return sess, closeFn, nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = tui.RunPrompt(ctx, sess, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		fmt.Println()
		return nil
	}
	return err
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isInteractiveTerminal() {
		return runPrompt(cmd, args)
	}

	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = tui.Run(ctx, sess)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func runList(cmd *cobra.Command, args []string) error {
	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sched, err := schedule.Load(ctx, sess.Provider, sess.Classifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Results unavailable: %v\n", err)
	}

	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sched)
	}

	if sched.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d unreadable result(s)\n", sched.Skipped)
	}
	tui.WriteSchedule(os.Stdout, sched, sess.Theme, sess.Now())
	return nil
}

func runVods(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("match number must be an integer, got %q", args[0])
	}

	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sched, err := schedule.Load(ctx, sess.Provider, sess.Classifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Results unavailable: %v\n", err)
	}

	match, ok := sched.FindByNumber(number)
	if !ok {
		fmt.Printf("No match numbered %d\n", number)
		return nil
	}

	sel, err := sess.Selector.Lookup(ctx, sess.Provider, match.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "VODs unavailable: %v\n", err)
	}

	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		type vodOut struct {
			Label     string `json:"label"`
			Country   string `json:"country"`
			StreamURL string `json:"stream_url"`
		}
		out := struct {
			Match  schedule.Match `json:"match"`
			Status string         `json:"status"`
			Vods   []vodOut       `json:"vods"`
		}{
			Match:  match,
			Status: sel.Status.String(),
		}
		out.Vods = make([]vodOut, 0, len(sel.Vods))
		for _, v := range sel.Vods {
			out.Vods = append(out.Vods, vodOut{Label: v.Label, Country: v.Country, StreamURL: v.StreamURL})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%s - %s\n", sess.Theme.Team(match.Team1), sess.Theme.Team(match.Team2))
	tui.WriteVods(os.Stdout, sel)
	return nil
}

func isInteractiveTerminal() bool {
	inInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	outInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (inInfo.Mode()&os.ModeCharDevice) != 0 && (outInfo.Mode()&os.ModeCharDevice) != 0
}
