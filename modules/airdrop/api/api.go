package api

import (
	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/modules/airdrop/api/httphandler"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase, wallet claim.Wallet) *httphandler.HttpHandler {
	return httphandler.New(network, usecase, wallet)
}
