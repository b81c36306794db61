package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
)

type postClaimRequest struct {
	Address string `params:"address"`
}

func (r *postClaimRequest) Validate() error {
	var errList []error
	if !isSolanaAddress(r.Address) {
		errList = append(errList, errors.Errorf("address '%s' is not a valid solana address", r.Address))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type postClaimResult struct {
	Signature string       `json:"signature"`
	Status    claim.Status `json:"status"`
}

type postClaimResponse = common.HttpResponse[postClaimResult]

func (h *HttpHandler) PostClaim(ctx *fiber.Ctx) (err error) {
	var req postClaimRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if h.wallet == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "claim wallet is not configured")
	}

	outcome, err := h.usecase.Claim(ctx.UserContext(), req.Address, h.wallet)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotEntitled):
			return errs.NewPublicError("wallet has no entitlement in this distributor")
		case errors.Is(err, claim.ErrUnsupportedWallet):
			return errs.NewPublicError("configured wallet does not support transaction signing")
		case errors.Is(err, claim.ErrMissingDistributor),
			errors.Is(err, claim.ErrMissingProof),
			errors.Is(err, claim.ErrInvalidProofNode),
			errors.Is(err, claim.ErrInvalidAmount):
			return errs.WithPublicMessage(err, "claimant record is invalid")
		case errors.Is(err, claim.ErrSubmissionFailed):
			return fiber.NewError(fiber.StatusBadGateway, "claim submission failed")
		}
		return errors.Wrap(err, "error during Claim")
	}

	resp := postClaimResponse{
		Result: &postClaimResult{
			Signature: outcome.Signature,
			Status:    outcome.Status,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
