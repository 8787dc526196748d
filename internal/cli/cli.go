// Package cli implements the jacha command line interface: a serve command
// for the HTTP API and one-shot scrape commands that print to stdout.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefanlut/jacha/internal/chn"
	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/fetch"
	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/logger"
	"github.com/stefanlut/jacha/internal/poll"
	"github.com/stefanlut/jacha/internal/server"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagFormat string
	flagGender string
	flagDate   string
	flagAddr   string
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jacha",
		Short: "College hockey schedules, scoreboards, and rankings",
		Long: `jacha scrapes college hockey schedules, scoreboards, and poll rankings
and serves them as a JSON API or prints them straight to the terminal.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&flagGender, "gender", "men", "men or women")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newScoreboardCmd())
	cmd.AddCommand(newPollCmd())
	cmd.AddCommand(newTeamsCmd())

	return cmd
}

func parseCommonFlags() (OutputFormat, hockey.Gender, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	gender, err := hockey.ParseGender(flagGender)
	if err != nil {
		return "", "", err
	}
	return format, gender, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.LoadConfig()
			if flagAddr != "" {
				cfg.Addr = flagAddr
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      server.New(cfg).Handler(),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("starting server", logger.Fields{"addr": cfg.Addr})
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
			case <-ctx.Done():
				logger.Info("shutdown signal received", nil)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					srv.Close()
					return fmt.Errorf("graceful shutdown failed: %w", err)
				}
			}
			logger.Info("server stopped", nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides JACHA_ADDR)")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <team>",
		Short: "Print a team's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, gender, err := parseCommonFlags()
			if err != nil {
				return err
			}

			client := chn.NewClient(fetch.New(), hockey.CurrentSeason(time.Now()))
			schedule, err := client.TeamSchedule(cmd.Context(), args[0], gender)
			if errors.Is(err, directory.ErrNotFound) {
				return fmt.Errorf("team %q not found; run 'jacha teams' for the full list", args[0])
			}
			if err != nil {
				return err
			}
			return WriteSchedule(os.Stdout, schedule, format)
		},
	}
}

func newScoreboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Print a day's scoreboard (live scores when no date given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, gender, err := parseCommonFlags()
			if err != nil {
				return err
			}

			client := chn.NewClient(fetch.New(), hockey.CurrentSeason(time.Now()))

			var scoreboard *hockey.Scoreboard
			if flagDate == "" {
				scoreboard, err = client.LiveScoreboard(cmd.Context(), gender)
			} else {
				date, parseErr := time.Parse("2006-01-02", flagDate)
				if parseErr != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", flagDate)
				}
				scoreboard, err = client.Scoreboard(cmd.Context(), date, gender)
			}
			if err != nil {
				return err
			}
			return WriteScoreboard(os.Stdout, scoreboard, format)
		},
	}
	cmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (default: live scores)")
	return cmd
}

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Print the current national poll",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, gender, err := parseCommonFlags()
			if err != nil {
				return err
			}

			result, err := poll.NewClient(fetch.New()).Scrape(cmd.Context(), gender)
			if err != nil {
				return err
			}
			return WritePoll(os.Stdout, result, format)
		},
	}
}

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List every team in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, gender, err := parseCommonFlags()
			if err != nil {
				return err
			}
			return WriteTeams(os.Stdout, directory.ListAll(gender), format)
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
