package datagateway

import (
	"context"

	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
	"github.com/shopspring/decimal"
)

type AirdropDataGateway interface {
	// GetClaimableAirdrops returns the discovery list for a wallet.
	GetClaimableAirdrops(ctx context.Context, wallet string) (*entity.AirdropList, error)

	// GetDistributor returns the campaign record for a distributor address.
	GetDistributor(ctx context.Context, address string) (*entity.Distributor, error)

	// GetClaimant returns the wallet's entitlement within a distributor, or
	// (nil, nil) when the wallet has no entitlement.
	GetClaimant(ctx context.Context, distributorAddress, claimantAddress string) (*entity.Claimant, error)

	// InvalidateClaimant drops cached records that become stale once a claim
	// for the pair lands on chain.
	InvalidateClaimant(distributorAddress, claimantAddress string)
}

type TokenMetaDataGateway interface {
	// GetSymbol returns the token symbol for a mint. Returns errs.NotFound
	// when the symbol is unknown.
	GetSymbol(ctx context.Context, mint string) (string, error)

	// GetPriceUSD returns the USD price for a mint. Returns errs.NotFound
	// when no price is available.
	GetPriceUSD(ctx context.Context, mint string) (decimal.Decimal, error)
}
