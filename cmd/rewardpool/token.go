package main

import (
	"github.com/spf13/cobra"

	"okinoko_rewards/sdk"
	"okinoko_rewards/token"
)

// tokenCommand drives the local THX ledger the treasury holds.
func tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Local token ledger",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "deploy",
		Short: "Deploy the configured token with the sender as minter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				symbol := sdk.Asset(a.cfg.TokenSymbol)
				err = a.db.Update(func(st sdk.State) error {
					_, err := token.Deploy(st, a.tokenAddress(), env.Sender, symbol)
					return err
				})
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					Str("token", a.tokenAddress().String()).
					Str("symbol", symbol.String()).
					Str("minter", env.Sender.String()))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "mint <to> <amount>",
		Short: "Mint tokens, minter only",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				to := sdk.ParseAddress(args[0])
				amount, err := a.amount(args[1])
				if err != nil {
					return err
				}
				err = a.withLedger(func(l *token.Ledger) error {
					return l.Mint(env.Sender, to, amount)
				})
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().Str("to", to.String()).Str("minted", a.formatAmount(amount)))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "approve <amount> [spender]",
		Short: "Set the allowance of spender, the pool by default",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				amount, err := a.amount(args[0])
				if err != nil {
					return err
				}
				spender := a.pool.Address()
				if len(args) == 2 {
					spender = sdk.ParseAddress(args[1])
				}
				err = a.withLedger(func(l *token.Ledger) error {
					return l.Approve(env.Sender, spender, amount)
				})
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					Str("owner", env.Sender.String()).
					Str("spender", spender.String()).
					Str("allowance", a.formatAmount(amount)))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "balance <address>",
		Short: "Show the balance of an address and its allowance for the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				addr := sdk.ParseAddress(args[0])
				res := newResult().Str("address", addr.String())
				err := a.db.View(func(st sdk.State) error {
					l, err := token.Open(st, a.tokenAddress())
					if err != nil {
						return err
					}
					bal, err := l.BalanceOf(addr)
					if err != nil {
						return err
					}
					allowance, err := l.Allowance(addr, a.pool.Address())
					if err != nil {
						return err
					}
					res.Str("symbol", l.Symbol().String()).
						Str("balance", a.formatAmount(bal)).
						Str("pool_allowance", a.formatAmount(allowance))
					return nil
				})
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), res)
			})
		},
	})
	return cmd
}

func (a *app) withLedger(fn func(l *token.Ledger) error) error {
	return a.db.Update(func(st sdk.State) error {
		l, err := token.Open(st, a.tokenAddress())
		if err != nil {
			return err
		}
		return fn(l)
	})
}
