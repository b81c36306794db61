package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
)

type getClaimantRequest struct {
	Address  string `params:"address"`
	Claimant string `params:"claimant"`
}

func (r *getClaimantRequest) Validate() error {
	var errList []error
	if !isSolanaAddress(r.Address) {
		errList = append(errList, errors.Errorf("address '%s' is not a valid solana address", r.Address))
	}
	if !isSolanaAddress(r.Claimant) {
		errList = append(errList, errors.Errorf("claimant '%s' is not a valid solana address", r.Claimant))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

// getClaimantResponse keeps the result field explicit: a wallet with no
// entitlement is result null, not an error.
type getClaimantResponse struct {
	Error  *string          `json:"error"`
	Result *entity.Claimant `json:"result"`
}

func (h *HttpHandler) GetClaimant(ctx *fiber.Ctx) (err error) {
	var req getClaimantRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	claimant, err := h.usecase.GetClaimant(ctx.UserContext(), req.Address, req.Claimant)
	if err != nil {
		return errors.Wrap(err, "error during GetClaimant")
	}

	return errors.WithStack(ctx.JSON(getClaimantResponse{Result: claimant}))
}
