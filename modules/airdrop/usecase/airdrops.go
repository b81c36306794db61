package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

// enrichmentConcurrency bounds parallel token-meta lookups during discovery.
const enrichmentConcurrency = 8

// AirdropOverview is one discovery row: the wallet's aggregate entitlement in
// a distributor, enriched with token metadata where available.
type AirdropOverview struct {
	entity.AirdropItem
	Symbol   string
	PriceUSD decimal.Decimal
}

// DistributorDetail is the full campaign view: the distributor record, its
// vesting classification, and token metadata where available.
type DistributorDetail struct {
	entity.Distributor
	Unlock   entity.UnlockKind
	Symbol   string
	PriceUSD decimal.Decimal
}

// GetAirdrops returns the wallet's claimable airdrops enriched with token
// symbol and USD price. Metadata lookups are best effort: an unknown or
// unreachable token leaves the row with an empty symbol and a zero price.
func (u *Usecase) GetAirdrops(ctx context.Context, wallet string) ([]AirdropOverview, error) {
	list, err := u.airdropDg.GetClaimableAirdrops(ctx, wallet)
	if err != nil {
		return nil, errors.Wrap(err, "can't fetch claimable airdrops")
	}

	overviews := make([]AirdropOverview, len(list.Items))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(enrichmentConcurrency)
	for i, item := range list.Items {
		i, item := i, item
		group.Go(func() error {
			overviews[i] = AirdropOverview{AirdropItem: item}
			overviews[i].Symbol, overviews[i].PriceUSD = u.tokenMeta(groupCtx, item.Mint)
			return groupCtx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}
	return overviews, nil
}

// GetDistributor returns the campaign detail for a distributor address.
func (u *Usecase) GetDistributor(ctx context.Context, address string) (*DistributorDetail, error) {
	distributor, err := u.airdropDg.GetDistributor(ctx, address)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fetch distributor %s", address)
	}
	if err := distributor.Validate(); err != nil {
		return nil, errors.Wrapf(err, "distributor %s failed validation", address)
	}
	unlock, err := distributor.Classify()
	if err != nil {
		return nil, errors.Wrapf(err, "can't classify distributor %s", address)
	}

	detail := &DistributorDetail{
		Distributor: *distributor,
		Unlock:      unlock,
	}
	detail.Symbol, detail.PriceUSD = u.tokenMeta(ctx, distributor.Mint)
	return detail, nil
}

// GetClaimant returns the wallet's entitlement within a distributor, or
// (nil, nil) when the wallet is not entitled.
func (u *Usecase) GetClaimant(ctx context.Context, distributorAddress, claimantAddress string) (*entity.Claimant, error) {
	claimant, err := u.airdropDg.GetClaimant(ctx, distributorAddress, claimantAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fetch claimant %s of distributor %s", claimantAddress, distributorAddress)
	}
	return claimant, nil
}

// tokenMeta resolves symbol and USD price for a mint, degrading to zero
// values on any failure. errs.NotFound is the expected miss and not logged.
func (u *Usecase) tokenMeta(ctx context.Context, mint string) (string, decimal.Decimal) {
	symbol, err := u.tokenMetaDg.GetSymbol(ctx, mint)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			logger.WarnContext(ctx, "can't resolve token symbol", slogx.Error(err), slogx.String("mint", mint))
		}
		symbol = ""
	}
	price, err := u.tokenMetaDg.GetPriceUSD(ctx, mint)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			logger.WarnContext(ctx, "can't resolve token price", slogx.Error(err), slogx.String("mint", mint))
		}
		price = decimal.Zero
	}
	return symbol, price
}
