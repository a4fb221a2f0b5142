package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/feed"
	"github.com/tartampluch/go-misri/internal/format"
	"github.com/tartampluch/go-misri/internal/server"
	"golang.org/x/text/language"
)

// app carries the state shared by every command.
type app struct {
	configPath string
	debug      bool
	settings   config.Settings
	clock      engine.Clock
	logCloser  io.Closer
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
	}
}

// setup loads settings and logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	closer, err := setupLogging(settings.Log, a.debug)
	if err != nil {
		return err
	}
	a.logCloser = closer

	if a.clock == nil {
		a.clock = engine.RealClock{}
	}
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               config.CommandName,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		newServeCommand(a),
		newConvertCommand(a),
		newMonthCommand(a),
		newICSCommand(a),
		newVersionCommand(),
	)
	return root
}

func newServeCommand(a *app) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed(config.FlagHost) {
				a.settings.Server.Host = host
			}
			if cmd.Flags().Changed(config.FlagPort) {
				a.settings.Server.Port = port
			}
			if err := a.settings.Validate(); err != nil {
				return err
			}

			f, err := format.New()
			if err != nil {
				return err
			}

			// Cancel on SIGINT (Ctrl+C) or SIGTERM.
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logStartupInfo()

			if err := server.New(a.settings, f, a.clock).Start(ctx); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, config.FlagHost, config.DefaultHost, config.FlagDescHost)
	cmd.Flags().IntVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   config.CmdConvert + " [YYYY-MM-DD]",
		Short: config.CmdDescConvert,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := engine.Today(a.clock)
			if len(args) == 1 {
				g, err := engine.ParseGregorian(args[0])
				if err != nil {
					return err
				}
				target = g
			}

			f, err := format.New()
			if err != nil {
				return err
			}
			display := f.Format(target.Misri())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}
			_, err = fmt.Fprintf(out, "%s\t%s\t%s\n", target, display.FormattedEn, display.FormattedAr)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func newMonthCommand(a *app) *cobra.Command {
	var arabic bool

	cmd := &cobra.Command{
		Use:   config.CmdMonth + " [year month]",
		Short: config.CmdDescMonth,
		Args:  monthArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := resolveMonth(a.clock, args)
			if err != nil {
				return err
			}

			f, err := format.New()
			if err != nil {
				return err
			}

			tag := language.English
			if arabic {
				tag = language.Arabic
			}
			return renderMonth(cmd.OutOrStdout(), f.Names(tag), engine.BuildMonthGrid(year, month), arabic)
		},
	}

	cmd.Flags().BoolVar(&arabic, config.FlagArabic, false, config.FlagDescArabic)
	return cmd
}

func newICSCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdICS + " [year month]",
		Short: config.CmdDescICS,
		Args:  monthArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := resolveMonth(a.clock, args)
			if err != nil {
				return err
			}

			f, err := format.New()
			if err != nil {
				return err
			}

			b := feed.NewBuilder(f)
			b.Clock = a.clock
			data, err := b.Month(year, month)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdDescVersion,
		Args:  cobra.NoArgs,
		// Printing the version needs neither settings nor logging.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

// monthArgs accepts either nothing or a year and a month.
func monthArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("%s, got %d argument(s)", config.ErrMonthArgs, len(args))
	}
	return nil
}

// resolveMonth reads "<year> <month>" or falls back to the current Misri month.
func resolveMonth(clock engine.Clock, args []string) (int, int, error) {
	if len(args) == 0 {
		today := engine.Today(clock).Misri()
		return today.Year, today.Month, nil
	}

	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrNotANumber, args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrNotANumber, args[1])
	}
	if year < 1 || year > config.MaxFeedYear || month < 1 || month > engine.MonthsPerYear {
		return 0, 0, fmt.Errorf("%s: %d-%02d", config.ErrInvalidMonth, year, month)
	}
	return year, month, nil
}

// renderMonth prints a month as a 7-column table starting on Sunday. Arabic
// output uses Arabic-Indic digits.
func renderMonth(w io.Writer, names format.Names, grid engine.MonthGrid, arabic bool) error {
	digits := strconv.Itoa
	year := strconv.Itoa(grid.Year)
	if arabic {
		digits = format.ArabicIndic
		year = format.ArabicIndic(grid.Year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", names.Months[grid.Month-1], year)
	for _, d := range names.Weekdays {
		fmt.Fprintf(&b, "%6s", d)
	}
	b.WriteByte('\n')

	for _, week := range grid.Weeks() {
		for _, c := range week {
			if c.Blank() {
				fmt.Fprintf(&b, "%6s", "")
				continue
			}
			fmt.Fprintf(&b, "%6s", digits(int(c)))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
