package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/spf13/cobra"

	"okinoko_rewards/contract"
	"okinoko_rewards/internal/config"
	"okinoko_rewards/sdk"
	"okinoko_rewards/store"
	"okinoko_rewards/token"
)

// app is what every command works with: config, the opened store and the pool on top of it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     sdk.Store
	pool   *contract.RewardPool
	// save persists a json snapshot store, nil for badger
	save func() error
}

// openApp opens the state database. A databasePath ending in .json uses a snapshot file
// instead of badger, handy for throwaway runs and fixtures.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, errors.New("no config found in context")
	}
	logger := commonRun(cfg)
	a := &app{cfg: cfg, logger: logger}
	if strings.HasSuffix(cfg.DatabasePath, ".json") {
		mem := store.NewMemory()
		if err := mem.LoadFromFile(cfg.DatabasePath); err != nil {
			return nil, err
		}
		a.db = mem
		a.save = func() error { return mem.SaveToFile(cfg.DatabasePath) }
	} else {
		db, err := store.NewBadger(
			store.WithDataDir(cfg.DatabasePath),
			store.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
	}
	a.pool = contract.New(
		a.db,
		token.Resolver{},
		contract.WithAddress(sdk.ParseAddress(cfg.PoolAddress)),
		contract.WithLogger(logger),
	)
	logger.Debug(
		"opened pool",
		"component", programName,
		"db", cfg.DatabasePath,
		"pool", cfg.PoolAddress,
	)
	return a, nil
}

// run opens the app, runs fn and closes the store again. The snapshot file is only
// written when fn succeeded.
func run(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	err = fn(a)
	if err == nil && a.save != nil {
		err = a.save()
	}
	if cerr := a.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// env builds the call environment from --sender and --at.
func (a *app) env() (sdk.Env, error) {
	sender := sdk.ParseAddress(a.cfg.Sender)
	if !sender.IsValid() {
		return sdk.Env{}, fmt.Errorf("a valid --sender is required, got %q", a.cfg.Sender)
	}
	now := time.Now()
	ts := now.Unix()
	if globalFlags.at != 0 {
		ts = globalFlags.at
	}
	return sdk.Env{
		Sender:    sender,
		Timestamp: ts,
		TxId:      fmt.Sprintf("cli-%d", now.UnixNano()),
	}, nil
}

func (a *app) amount(val string) (*contract.Amount, error) {
	return contract.ParseAmount(val, a.cfg.TokenDecimals)
}

func (a *app) formatAmount(v *contract.Amount) string {
	return contract.FormatAmount(v, a.cfg.TokenDecimals)
}

func (a *app) tokenAddress() sdk.Address {
	return sdk.ParseAddress(a.cfg.TokenAddress)
}

// newResult starts the flat JSON object printed after a command.
func newResult() *contract.JSONObject {
	return contract.BeginObject(&jwriter.Writer{})
}

func printObject(out io.Writer, o *contract.JSONObject) error {
	b, err := o.Build()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// printJSON writes one of the contract records.
func printJSON(out io.Writer, v interface{ MarshalJSON() ([]byte, error) }) error {
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
