package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/merkledrop/claim-gateway/internal/config"
	"github.com/merkledrop/claim-gateway/modules/airdrop"
)

func NewCheckCommand() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <distributor> <wallet>",
		Short: "Check a wallet's entitlement in a distributor",
		Args:  cobra.ExactArgs(2),
		RunE:  checkHandler,
	}

	return checkCmd
}

func checkHandler(cmd *cobra.Command, args []string) error {
	conf := config.Load()
	distributorAddress, claimantAddress := args[0], args[1]

	airdropUsecase, err := airdrop.NewUsecase(conf)
	if err != nil {
		return errors.WithStack(err)
	}

	detail, err := airdropUsecase.GetDistributor(cmd.Context(), distributorAddress)
	if err != nil {
		return errors.Wrap(err, "can't fetch distributor")
	}
	claimant, err := airdropUsecase.GetClaimant(cmd.Context(), distributorAddress, claimantAddress)
	if err != nil {
		return errors.Wrap(err, "can't fetch claimant")
	}

	out := map[string]any{
		"network":     conf.Network,
		"distributor": detail,
		"claimant":    claimant,
		"entitled":    claimant != nil,
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
