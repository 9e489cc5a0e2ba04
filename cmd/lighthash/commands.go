package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/rollkit/go-lite-abci/pkg/cometcompat"
	"github.com/rollkit/go-lite-abci/pkg/genesis"
	"github.com/rollkit/go-lite-abci/pkg/header"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

// NewRootCmd returns the lighthash command tree.
func NewRootCmd() *cobra.Command {
	logger := log.NewNopLogger()

	root := &cobra.Command{
		Use:           "lighthash",
		Short:         "Compute light-client hashes of genesis files, headers and validator sets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(cmd)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	AddLogFlags(root)

	getLogger := func() log.Logger { return logger }
	root.AddCommand(
		GenesisCmd(getLogger),
		HeaderCmd(getLogger),
		ValsetCmd(getLogger),
	)
	return root
}

// GenesisCmd loads a genesis file and prints its trust anchor.
func GenesisCmd(logger func() log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis [file]",
		Short: "Validate a genesis file and print its validator set hash and app hash.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := genesis.FromFile(args[0])
			if err != nil {
				return err
			}
			logger().Debug("loaded genesis", "chain_id", g.ChainID, "validators", len(g.Validators))

			set, err := g.ValidatorSet()
			if err != nil {
				return fmt.Errorf("build validator set: %w", err)
			}
			total, err := set.TotalVotingPower()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chain_id: %s\n", g.ChainID)
			fmt.Fprintf(out, "validators: %d\n", set.Size())
			fmt.Fprintf(out, "total_voting_power: %d\n", total)
			fmt.Fprintf(out, "validators_hash: %s\n", set.Hash())
			fmt.Fprintf(out, "app_hash: %s\n", g.InitialAppHash())

			comet, _ := cmd.Flags().GetBool(FlagComet)
			if !comet {
				return nil
			}
			if _, err := cometcompat.ToCometGenesisDoc(g); err != nil {
				return err
			}
			cmtHash, err := cometcompat.CometValidatorHasher()(set)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "cometbft_validators_hash: %s\n", cmtHash)
			return nil
		},
	}
	AddCometFlag(cmd)
	return cmd
}

// HeaderCmd hashes a JSON encoded header.
func HeaderCmd(logger func() log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header [file]",
		Short: "Print the hash of a JSON encoded block header.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var h header.Header
			if err := readJSON(args[0], &h); err != nil {
				return err
			}
			if err := h.ValidateBasic(); err != nil {
				logger().Warn("header failed basic validation", "height", h.Height, "err", err)
			}

			sum, err := cometcompat.LightHeaderHasher()(&h)
			if err != nil {
				return fmt.Errorf("hash header: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "height: %d\n", h.Height)
			fmt.Fprintf(out, "hash: %s\n", sum)

			comet, _ := cmd.Flags().GetBool(FlagComet)
			if !comet {
				return nil
			}
			cmtSum, err := cometcompat.CometHeaderHasher()(&h)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "cometbft_hash: %s\n", cmtSum)
			return nil
		},
	}
	AddCometFlag(cmd)
	return cmd
}

// ValsetCmd hashes a JSON array of validators, optionally after applying a
// JSON array of updates.
func ValsetCmd(logger func() log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valset [file]",
		Short: "Print the hash and total voting power of a JSON validator list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []validator.Info
			if err := readJSON(args[0], &infos); err != nil {
				return err
			}
			set, err := validator.NewSet(infos)
			if err != nil {
				return err
			}

			updatesPath, _ := cmd.Flags().GetString(FlagUpdates)
			if updatesPath != "" {
				var updates []validator.Update
				if err := readJSON(updatesPath, &updates); err != nil {
					return err
				}
				set, err = set.WithUpdates(updates)
				if err != nil {
					return fmt.Errorf("apply updates: %w", err)
				}
				logger().Info("applied validator updates", "count", len(updates), "size", set.Size())
			}

			return printSet(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().String(FlagUpdates, "", "JSON file with validator updates to apply before hashing")
	return cmd
}

func printSet(out io.Writer, set *validator.Set) error {
	total, err := set.TotalVotingPower()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "validators: %d\n", set.Size())
	fmt.Fprintf(out, "total_voting_power: %d\n", total)
	fmt.Fprintf(out, "hash: %s\n", set.Hash())
	return nil
}

func readJSON(path string, v any) error {
	bz, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
