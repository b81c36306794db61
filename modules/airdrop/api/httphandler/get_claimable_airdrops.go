package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
)

type getClaimableAirdropsRequest struct {
	Wallet string `params:"wallet"`
}

func (r *getClaimableAirdropsRequest) Validate() error {
	var errList []error
	if !isSolanaAddress(r.Wallet) {
		errList = append(errList, errors.Errorf("wallet '%s' is not a valid solana address", r.Wallet))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type claimableAirdrop struct {
	Chain              string          `json:"chain"`
	DistributorAddress string          `json:"distributorAddress"`
	Address            string          `json:"address"`
	AmountUnlocked     string          `json:"amountUnlocked"`
	AmountLocked       string          `json:"amountLocked"`
	AmountClaimed      string          `json:"amountClaimed"`
	Mint               string          `json:"mint"`
	ClaimableValue     string          `json:"claimableValue"`
	Symbol             string          `json:"symbol,omitempty"`
	PriceUSD           decimal.Decimal `json:"priceUsd"`
}

type getClaimableAirdropsResult struct {
	Items []claimableAirdrop `json:"items"`
}

type getClaimableAirdropsResponse = common.HttpResponse[getClaimableAirdropsResult]

func (h *HttpHandler) GetClaimableAirdrops(ctx *fiber.Ctx) (err error) {
	var req getClaimableAirdropsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	overviews, err := h.usecase.GetAirdrops(ctx.UserContext(), req.Wallet)
	if err != nil {
		return errors.Wrap(err, "error during GetAirdrops")
	}

	resp := getClaimableAirdropsResponse{
		Result: &getClaimableAirdropsResult{
			Items: lo.Map(overviews, func(o usecase.AirdropOverview, _ int) claimableAirdrop {
				return claimableAirdrop{
					Chain:              o.Chain,
					DistributorAddress: o.DistributorAddress,
					Address:            o.Address,
					AmountUnlocked:     o.AmountUnlocked,
					AmountLocked:       o.AmountLocked,
					AmountClaimed:      o.AmountClaimed,
					Mint:               o.Mint,
					ClaimableValue:     o.ClaimableValue,
					Symbol:             o.Symbol,
					PriceUSD:           o.PriceUSD,
				}
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
