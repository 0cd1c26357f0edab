// Package cli implements the timebal command-line interface: stateless
// balance and report runs straight against the time-tracking provider.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leap/balance-engine/config"
	"github.com/leap/balance-engine/engine"
	"github.com/leap/balance-engine/provider/harvest"
)

var rootCmd = &cobra.Command{
	Use:   "timebal",
	Short: "Time balance tracker – hours owed vs. hours in surplus",
	Long: `timebal reconciles logged hours from your time-tracking account against
an expected-hours schedule, adjusted for declared leave days.

Provider credentials come from HARVEST_ACCOUNT_ID and HARVEST_TOKEN
(or a config.yaml); leave days can be supplied as a pasted export file.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	flagFrom      string
	flagTo        string
	flagLeaveFile string
	flagHours     []string
)

func init() {
	for _, cmd := range []*cobra.Command{balanceCmd, reportCmd} {
		cmd.Flags().StringVar(&flagFrom, "from", "", "Start date (YYYY-MM-DD); defaults to the provider window")
		cmd.Flags().StringVar(&flagTo, "to", "", "End date (YYYY-MM-DD); defaults to the provider window")
		cmd.Flags().StringVar(&flagLeaveFile, "leave-file", "", "File with pasted leave export lines (tab-separated)")
		cmd.Flags().StringSliceVar(&flagHours, "hours", nil, `Weekday hours override, e.g. "Monday=8" (repeatable)`)
	}
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(reportCmd)
}

// runInputs is everything a reporting command needs, resolved from
// flags, config, and the provider.
type runInputs struct {
	rng      engine.DateRange
	entries  []engine.LoggedHoursEntry
	schedule *engine.Schedule
	ledger   *engine.Ledger
}

func gather(ctx context.Context) (*runInputs, error) {
	cfg := config.Load()
	if !cfg.HasProvider() {
		return nil, fmt.Errorf("provider credentials missing: set HARVEST_ACCOUNT_ID and HARVEST_TOKEN")
	}

	client := harvest.NewClient(ctx, cfg.HarvestBaseURL, cfg.HarvestAccountID, cfg.HarvestToken)
	userID := cfg.HarvestUserID
	if userID == "" {
		var err error
		userID, err = client.FetchUserID(ctx)
		if err != nil {
			return nil, err
		}
	}

	rng, err := resolveWindow(ctx, client, userID)
	if err != nil {
		return nil, err
	}

	schedule, err := scheduleFromFlags()
	if err != nil {
		return nil, err
	}

	ledger := engine.NewLedger()
	if flagLeaveFile != "" {
		text, err := os.ReadFile(flagLeaveFile)
		if err != nil {
			return nil, fmt.Errorf("reading leave file: %w", err)
		}
		added := ledger.ImportBulk(string(text))
		fmt.Printf("Imported %d leave days from %s\n", added, flagLeaveFile)
	}

	entries, err := client.FetchLoggedHours(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return &runInputs{rng: rng, entries: entries, schedule: schedule, ledger: ledger}, nil
}

// resolveWindow uses --from/--to when given, otherwise the provider's
// earliest/latest entry dates, otherwise first-of-month through today.
func resolveWindow(ctx context.Context, client *harvest.Client, userID string) (engine.DateRange, error) {
	if flagFrom != "" || flagTo != "" {
		if flagFrom == "" || flagTo == "" {
			return engine.DateRange{}, fmt.Errorf("--from and --to must be given together")
		}
		start, err := engine.ParseDay(flagFrom)
		if err != nil {
			return engine.DateRange{}, fmt.Errorf("invalid --from date: %w", err)
		}
		end, err := engine.ParseDay(flagTo)
		if err != nil {
			return engine.DateRange{}, fmt.Errorf("invalid --to date: %w", err)
		}
		return engine.NewDateRange(start, end)
	}

	earliest, okEarliest, err := client.EarliestEntryDate(ctx, userID)
	if err != nil {
		return engine.DateRange{}, err
	}
	latest, okLatest, err := client.LatestEntryDate(ctx, userID)
	if err != nil {
		return engine.DateRange{}, err
	}
	if !okEarliest || !okLatest {
		return engine.DefaultWindow(engine.Today()), nil
	}
	return engine.NewDateRange(earliest, latest)
}

// scheduleFromFlags builds the standard week and applies any
// "Weekday=hours" overrides, clamped to [0, 24].
func scheduleFromFlags() (*engine.Schedule, error) {
	mapping := engine.DefaultSchedule().Hours()
	for _, spec := range flagHours {
		name, value, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid --hours %q (want Weekday=hours)", spec)
		}
		wd, ok := engine.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours in %q: %w", spec, err)
		}
		if hours < 0 {
			hours = 0
		}
		if hours > 24 {
			hours = 24
		}
		mapping[wd] = engine.NewHours(hours)
	}
	return engine.NewSchedule(mapping), nil
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}
