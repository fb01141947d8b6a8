package main

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"okinoko_rewards/contract"
	"okinoko_rewards/internal/config"
	"okinoko_rewards/sdk"
)

func voteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote <poll id> <agree>",
		Short: "Vote on a poll as the sender",
		Args:  cobra.ExactArgs(2),
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
				agree, err := contract.ParseBoolField(args[1])
				if err != nil {
					return err
				}
				if err := a.pool.Vote(env, pollID, agree); err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					U64("poll", pollID).
					Str("voter", env.Sender.String()).
					Bool("agree", agree))
			})
		},
	}
	cmd.AddCommand(voteSignCommand())
	cmd.AddCommand(voteRelayCommand())
	return cmd
}

// voteSignCommand signs offline, it never opens the database.
func voteSignCommand() *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "sign <poll id> <agree> <nonce>",
		Short: "Sign a vote with an evm key so someone else can relay it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			if keyHex == "" {
				return errors.New("--key is required")
			}
			key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
			if err != nil {
				return err
			}
			pollID, err := contract.ParseUintField(args[0], "poll id")
			if err != nil {
				return err
			}
			agree, err := contract.ParseBoolField(args[1])
			if err != nil {
				return err
			}
			nonce, err := contract.ParseUintField(args[2], "nonce")
			if err != nil {
				return err
			}
			voter, sig, err := contract.SignVote(key, sdk.ParseAddress(cfg.PoolAddress), pollID, agree, nonce)
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), newResult().
				U64("poll", pollID).
				Str("voter", voter.String()).
				Bool("agree", agree).
				U64("nonce", nonce).
				Str("signature", hexutil.Encode(sig)))
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "hex encoded secp256k1 private key")
	return cmd
}

func voteRelayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relay <poll id> <voter> <agree> <nonce> <signature>",
		Short: "Submit a vote signed by someone else, the sender only pays for the call",
		Args:  cobra.ExactArgs(5),
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
				voter := sdk.ParseAddress(args[1])
				agree, err := contract.ParseBoolField(args[2])
				if err != nil {
					return err
				}
				nonce, err := contract.ParseUintField(args[3], "nonce")
				if err != nil {
					return err
				}
				sig, err := contract.ParseSignature(args[4])
				if err != nil {
					return err
				}
				if err := a.pool.VoteSigned(env, pollID, voter, agree, nonce, sig); err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), newResult().
					U64("poll", pollID).
					Str("voter", voter.String()).
					Bool("agree", agree).
					Str("relayer", env.Sender.String()))
			})
		},
	}
}
