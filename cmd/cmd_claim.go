package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/internal/config"
	"github.com/merkledrop/claim-gateway/modules/airdrop"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

func NewClaimCommand() *cobra.Command {
	claimCmd := &cobra.Command{
		Use:   "claim <distributor>",
		Short: "Claim an airdrop entitlement with the configured wallet",
		Args:  cobra.ExactArgs(1),
		RunE:  claimHandler,
	}

	flags := claimCmd.Flags()
	flags.String("wallet", "", "path to the claiming wallet keypair file")

	config.BindPFlag("wallet.keypair_file", flags.Lookup("wallet"))

	return claimCmd
}

func claimHandler(cmd *cobra.Command, args []string) error {
	conf := config.Load()
	distributorAddress := args[0]

	if conf.Wallet.KeypairFile == "" {
		return errors.Wrap(errs.InvalidArgument, "no claiming wallet configured, pass --wallet or set wallet.keypair_file")
	}
	wallet, err := claim.LoadKeypairWallet(conf.Wallet.KeypairFile)
	if err != nil {
		return errors.WithStack(err)
	}

	airdropUsecase, err := airdrop.NewUsecase(conf)
	if err != nil {
		return errors.WithStack(err)
	}

	ctx := cmd.Context()
	logger.InfoContext(ctx, "Submitting claim",
		slogx.String("distributor", distributorAddress),
		slogx.Stringer("claimant", wallet.PublicKey()),
		slogx.Stringer("network", conf.Network),
	)

	outcome, err := airdropUsecase.Claim(ctx, distributorAddress, wallet)
	if err != nil {
		if errors.Is(err, usecase.ErrNotEntitled) {
			return errors.Wrap(err, "nothing to claim")
		}
		return errors.Wrap(err, "claim failed")
	}

	switch outcome.Status {
	case claim.StatusConfirmed:
		fmt.Fprintf(cmd.OutOrStdout(), "claim confirmed: %s\n", outcome.Signature)
	case claim.StatusIndeterminate:
		fmt.Fprintf(cmd.OutOrStdout(), "claim submitted but confirmation is unknown, check signature %s before retrying\n", outcome.Signature)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "claim %s: %s\n", outcome.Status, outcome.Signature)
	}
	return nil
}
