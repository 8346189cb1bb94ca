/*
root.go - shiftpay command tree

PURPOSE:
  Builds the cobra command tree and the dependencies every subcommand
  shares: settings, logger, store, pay calculator, payroll service.

CONFIGURATION ORDER:
  1. Built-in defaults (config.DefaultSettings)
  2. .env file in the working directory
  3. SHIFTPAY_* environment variables
  4. Command-line flags

SEE ALSO:
  - serve.go: HTTP server
  - calc.go, summary.go, shifts.go, holidays.go, policy.go, seed.go: offline commands
*/
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/shift-pay/config"
	"github.com/warp/shift-pay/logging"
	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/payroll"
	"github.com/warp/shift-pay/store/sqlite"
	"github.com/warp/shift-pay/workerpool"
)

// app carries the resolved settings and opened dependencies.
type app struct {
	settings config.Settings
	envFile  string

	log   *zap.Logger
	store *sqlite.Store
	pool  *workerpool.WorkerPool
	svc   *payroll.Service
}

func newApp() *app {
	return &app{settings: config.DefaultSettings()}
}

// run executes the command tree with args and releases whatever the
// subcommand opened, even when it failed.
func run(args []string, stdout, stderr io.Writer) error {
	a := newApp()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shiftpay",
		Short: "Shift pay calculator with unsocial, Sunday and holiday premiums",
		Long: `shiftpay prices work shifts against a pay policy: a base rate, an
unsocial-hours premium for early and late bands, and Sunday and public
holiday rates. Shifts and holidays are kept in a SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolveSettings(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	f.String("db", "", "SQLite database path (\":memory:\" for a throwaway database)")
	f.String("policy", "", "pay policy YAML file")
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("env", "", "environment: development or production")
	f.Int("workers", 0, "worker pool size for batch pricing")

	root.AddCommand(
		newServeCmd(a),
		newCalcCmd(a),
		newSummaryCmd(a),
		newHolidaysCmd(a),
		newShiftsCmd(a),
		newPolicyCmd(a),
		newSeedCmd(a),
	)
	return root
}

// resolveSettings layers flags over the environment.
func (a *app) resolveSettings(cmd *cobra.Command) error {
	s, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("db") {
		s.DBPath, _ = f.GetString("db")
	}
	if f.Changed("policy") {
		s.PolicyPath, _ = f.GetString("policy")
	}
	if f.Changed("log-level") {
		s.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("env") {
		s.Env, _ = f.GetString("env")
	}
	if f.Changed("workers") {
		s.Workers, _ = f.GetInt("workers")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s
	return nil
}

// open builds the service. Subcommands call it lazily so that --help and
// policy show never touch the database.
func (a *app) open() (*payroll.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	log, err := logging.New(a.settings.LogLevel, a.settings.Env)
	if err != nil {
		return nil, err
	}
	a.log = log

	calc, err := a.calculator()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(a.settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.store = store

	a.pool = workerpool.New(a.settings.Workers, a.settings.Workers*4)
	a.svc = payroll.NewService(store, calc, a.pool, log)

	log.Debug("service ready",
		zap.String("db", a.settings.DBPath),
		zap.String("policy", a.settings.PolicyPath),
		zap.Int("workers", a.settings.Workers))
	return a.svc, nil
}

func (a *app) calculator() (*pay.Calculator, error) {
	p, err := config.LoadPolicy(a.settings.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy %s: %w", a.settings.PolicyPath, err)
	}
	return pay.NewCalculator(p)
}

func (a *app) close() error {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.store != nil {
		err := a.store.Close()
		a.store = nil
		return err
	}
	return nil
}
