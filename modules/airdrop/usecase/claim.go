package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

// ErrNotEntitled is returned when a claim is attempted by a wallet with no
// entitlement in the distributor.
var ErrNotEntitled = errors.New("wallet has no entitlement in this distributor")

// ClaimOutcome reports one claim attempt to the caller.
type ClaimOutcome struct {
	Signature string
	Status    claim.Status
}

// Claim runs the whole claim pipeline for the wallet against one
// distributor: fetch the entitlement, shape and validate the claim params,
// resolve the campaign mint, submit, and invalidate cached records once the
// claim is known to have landed.
func (u *Usecase) Claim(ctx context.Context, distributorAddress string, wallet claim.Wallet) (*ClaimOutcome, error) {
	if wallet == nil || wallet.PublicKey().IsZero() {
		return nil, errors.WithStack(claim.ErrWalletNotConnected)
	}
	claimantAddress := wallet.PublicKey().String()

	claimant, err := u.airdropDg.GetClaimant(ctx, distributorAddress, claimantAddress)
	if err != nil {
		return nil, errors.Wrap(err, "can't fetch claimant record")
	}
	if claimant == nil {
		return nil, errors.WithStack(ErrNotEntitled)
	}

	params, err := claim.BuildClaimParams(claimant)
	if err != nil {
		return nil, errors.Wrap(err, "can't build claim params")
	}

	distributor, err := u.airdropDg.GetDistributor(ctx, params.DistributorAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fetch distributor %s", params.DistributorAddress)
	}
	mint, err := solana.PublicKeyFromBase58(distributor.Mint)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "distributor %s has invalid mint %q: %v", distributor.Address, distributor.Mint, err)
	}

	result, err := u.submitter.Claim(ctx, params, mint, wallet)
	if err != nil {
		return nil, errors.Wrap(err, "claim submission failed")
	}

	logger.InfoContext(ctx, "claim submitted",
		slogx.String("distributor", distributorAddress),
		slogx.String("claimant", claimantAddress),
		slogx.Stringer("signature", result.Signature),
		slogx.String("status", string(result.Status)),
	)

	// Indeterminate submissions keep their caches: the claim may or may not
	// have landed, and a stale "claimable" row is safer than a wrong
	// "claimed" one.
	if result.Status == claim.StatusConfirmed {
		u.airdropDg.InvalidateClaimant(distributorAddress, claimantAddress)
	}

	return &ClaimOutcome{
		Signature: result.Signature.String(),
		Status:    result.Status,
	}, nil
}
