package httphandler

import (
	"github.com/gagliardetto/solana-go"

	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network common.Network

	// wallet signs gateway-side claim submissions. Nil when no keypair is
	// configured; the claim endpoint then rejects requests.
	wallet claim.Wallet
}

func New(network common.Network, usecase *usecase.Usecase, wallet claim.Wallet) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		network: network,
		wallet:  wallet,
	}
}

func isSolanaAddress(s string) bool {
	if s == "" {
		return false
	}
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}
