package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
)

type getDistributorRequest struct {
	Address string `params:"address"`
}

func (r *getDistributorRequest) Validate() error {
	var errList []error
	if !isSolanaAddress(r.Address) {
		errList = append(errList, errors.Errorf("address '%s' is not a valid solana address", r.Address))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getDistributorResult struct {
	entity.Distributor
	Unlock   entity.UnlockKind `json:"unlockType"`
	Symbol   string            `json:"symbol,omitempty"`
	PriceUSD decimal.Decimal   `json:"priceUsd"`
}

type getDistributorResponse = common.HttpResponse[getDistributorResult]

func (h *HttpHandler) GetDistributor(ctx *fiber.Ctx) (err error) {
	var req getDistributorRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	detail, err := h.usecase.GetDistributor(ctx.UserContext(), req.Address)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("distributor not found")
		}
		return errors.Wrap(err, "error during GetDistributor")
	}

	resp := getDistributorResponse{
		Result: &getDistributorResult{
			Distributor: detail.Distributor,
			Unlock:      detail.Unlock,
			Symbol:      detail.Symbol,
			PriceUSD:    detail.PriceUSD,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
