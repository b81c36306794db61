package usecase

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/datagateway"
)

// ClaimSubmitter submits one validated claim to the chain.
type ClaimSubmitter interface {
	Claim(ctx context.Context, params *claim.Params, mint solana.PublicKey, wallet claim.Wallet) (*claim.Result, error)
}

type Usecase struct {
	airdropDg   datagateway.AirdropDataGateway
	tokenMetaDg datagateway.TokenMetaDataGateway
	submitter   ClaimSubmitter
}

func New(airdropDg datagateway.AirdropDataGateway, tokenMetaDg datagateway.TokenMetaDataGateway, submitter ClaimSubmitter) *Usecase {
	return &Usecase{
		airdropDg:   airdropDg,
		tokenMetaDg: tokenMetaDg,
		submitter:   submitter,
	}
}
