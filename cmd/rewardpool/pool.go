package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"okinoko_rewards/contract"
	"okinoko_rewards/sdk"
)

func initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <manager>",
		Short: "Initialize the pool with its manager and the configured token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				manager := sdk.ParseAddress(args[0])
				if err := a.pool.Initialize(env, manager, a.tokenAddress()); err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					Str("manager", manager.String()).
					Str("token", a.tokenAddress().String()))
			})
		},
	}
}

func infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the pool configuration and treasury",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				info, err := a.pool.Info()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), info)
			})
		},
	}
}

func depositCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Move tokens from the sender into the treasury, approve the pool first",
		Args:  cobra.ExactArgs(1),
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
				if err := a.pool.Deposit(env, amount); err != nil {
					return err
				}
				bal, err := a.pool.TreasuryBalance()
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					Str("deposited", a.formatAmount(amount)).
					Str("treasury", a.formatAmount(bal)))
			})
		},
	}
}

func memberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage pool members",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <address>",
		Short: "Add a member, manager only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				member := sdk.ParseAddress(args[0])
				if err := a.pool.AddMember(env, member); err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().Str("member", member.String()))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <address>",
		Short: "Show whether an address is a member or the manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				addr := sdk.ParseAddress(args[0])
				isMember, err := a.pool.IsMember(addr)
				if err != nil {
					return err
				}
				isManager, err := a.pool.IsManager(addr)
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					Str("address", addr.String()).
					Bool("member", isMember).
					Bool("manager", isManager))
			})
		},
	})
	return cmd
}

func durationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Poll durations for rule and reward polls",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <rule|reward> <seconds>",
		Short: "Set the poll duration for polls opened from now on, manager only",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				secs, err := contract.ParseUintField(args[1], "duration")
				if err != nil {
					return err
				}
				switch args[0] {
				case "rule":
					err = a.pool.SetRewardRulePollDuration(env, secs)
				case "reward":
					err = a.pool.SetRewardPollDuration(env, secs)
				default:
					return fmt.Errorf("unknown poll kind %q, use rule or reward", args[0])
				}
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().Str("kind", args[0]).U64("seconds", secs))
			})
		},
	})
	return cmd
}

func finalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <poll id>",
		Short: "Close a poll after its deadline and apply the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				pollID, err := contract.ParseUintField(args[0], "poll id")
				if err != nil {
					return err
				}
				accepted, err := a.pool.TryToFinalize(env, pollID)
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().U64("poll", pollID).Bool("accepted", accepted))
			})
		},
	}
}

func withdrawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <reward id>",
		Short: "Pay out an approved reward to the sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				id, err := contract.ParseUintField(args[0], "reward id")
				if err != nil {
					return err
				}
				if err := a.pool.Withdraw(env, id); err != nil {
					return err
				}
				rw, err := a.pool.Reward(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rw)
			})
		},
	}
}

func pollCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Inspect polls",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <poll id>",
		Short: "Show a poll and its tally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				pollID, err := contract.ParseUintField(args[0], "poll id")
				if err != nil {
					return err
				}
				p, err := a.pool.Poll(pollID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "vote <poll id> <voter>",
		Short: "Show how an address voted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				pollID, err := contract.ParseUintField(args[0], "poll id")
				if err != nil {
					return err
				}
				v, err := a.pool.VoteOf(pollID, sdk.ParseAddress(args[1]))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	})
	return cmd
}
