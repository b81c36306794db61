package airdrop

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/do/v2"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/internal/config"
	airdropapi "github.com/merkledrop/claim-gateway/modules/airdrop/api"
	"github.com/merkledrop/claim-gateway/modules/airdrop/api/httphandler"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/streamclient"
	"github.com/merkledrop/claim-gateway/modules/airdrop/tokenmeta"
	"github.com/merkledrop/claim-gateway/modules/airdrop/usecase"
)

// NewUsecase wires the airdrop pipeline from configuration: distributor API
// client, token metadata client, and claim submitter.
func NewUsecase(conf config.Config) (*usecase.Usecase, error) {
	if !conf.Network.IsSupported() {
		return nil, errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network)
	}
	endpoints := conf.Endpoints.ForNetwork(conf.Network)

	airdropDg, err := streamclient.New(endpoints.DistributorAPI, conf.Network, streamclient.Options{
		CacheSize: conf.Cache.Size,
		CacheTTL:  conf.Cache.TTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create distributor api client")
	}

	tokenMetaDg, err := tokenmeta.New(endpoints.RPC, conf.Endpoints.PriceAPIURL(), conf.Network)
	if err != nil {
		return nil, errors.Wrap(err, "can't create token metadata client")
	}

	submitter := claim.NewSubmitter(claim.NewRPCAdapter(endpoints.RPC), conf.Network)

	return usecase.New(airdropDg, tokenMetaDg, submitter), nil
}

// New wires the airdrop module's HTTP handler for the gateway service.
func New(injector do.Injector) (*httphandler.HttpHandler, error) {
	conf := do.MustInvoke[config.Config](injector)

	airdropUsecase, err := NewUsecase(conf)
	if err != nil {
		return nil, err
	}

	// The claiming wallet is optional: without one the gateway still serves
	// discovery and eligibility, and rejects claim submissions.
	var wallet claim.Wallet
	if conf.Wallet.KeypairFile != "" {
		keypairWallet, err := claim.LoadKeypairWallet(conf.Wallet.KeypairFile)
		if err != nil {
			return nil, errors.Wrap(err, "can't load claiming wallet")
		}
		wallet = keypairWallet
	}

	return airdropapi.NewHTTPHandler(conf.Network, airdropUsecase, wallet), nil
}
