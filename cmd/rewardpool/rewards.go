package main

import (
	"github.com/spf13/cobra"

	"okinoko_rewards/contract"
	"okinoko_rewards/sdk"
)

func ruleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Reward rules",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <amount>",
		Short: "Propose a reward rule and open its poll, manager only",
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
				index, err := a.pool.AddRewardRule(env, amount)
				if err != nil {
					return err
				}
				rule, err := a.pool.RewardRule(index)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rule)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <index>",
		Short: "Show a reward rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				index, err := contract.ParseUintField(args[0], "rule index")
				if err != nil {
					return err
				}
				rule, err := a.pool.RewardRule(index)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rule)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all reward rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				n, err := a.pool.RewardRuleCount()
				if err != nil {
					return err
				}
				for i := range n {
					rule, err := a.pool.RewardRule(i)
					if err != nil {
						return err
					}
					if err := printJSON(cmd.OutOrStdout(), rule); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	return cmd
}

func rewardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Reward claims",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "claim <rule index>",
		Short: "Claim the amount of an enabled rule for the sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				index, err := contract.ParseUintField(args[0], "rule index")
				if err != nil {
					return err
				}
				id, err := a.pool.ClaimReward(env, index)
				if err != nil {
					return err
				}
				rw, err := a.pool.Reward(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rw)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "propose <beneficiary> <amount>",
		Short: "Propose a one-off reward for a member, manager only",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				env, err := a.env()
				if err != nil {
					return err
				}
				amount, err := a.amount(args[1])
				if err != nil {
					return err
				}
				id, err := a.pool.ProposeReward(env, sdk.ParseAddress(args[0]), amount)
				if err != nil {
					return err
				}
				rw, err := a.pool.Reward(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rw)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <reward id>",
		Short: "Show a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				id, err := contract.ParseUintField(args[0], "reward id")
				if err != nil {
					return err
				}
				rw, err := a.pool.Reward(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rw)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list <beneficiary>",
		Short: "List the rewards of a beneficiary in filing order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				beneficiary := sdk.ParseAddress(args[0])
				n, err := a.pool.RewardCount(beneficiary)
				if err != nil {
					return err
				}
				for i := range n {
					rw, err := a.pool.RewardsOf(beneficiary, i)
					if err != nil {
						return err
					}
					if err := printJSON(cmd.OutOrStdout(), rw); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	return cmd
}
