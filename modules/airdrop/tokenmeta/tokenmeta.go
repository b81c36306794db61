package tokenmeta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/datagateway"
	"github.com/merkledrop/claim-gateway/pkg/cache"
	"github.com/merkledrop/claim-gateway/pkg/httpclient"
	"github.com/shopspring/decimal"
)

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 5 * time.Minute
)

type httpDoer interface {
	Get(ctx context.Context, path string, reqOptions httpclient.RequestOptions) (*httpclient.HttpResponse, error)
	Post(ctx context.Context, path string, reqOptions httpclient.RequestOptions) (*httpclient.HttpResponse, error)
}

// Client resolves display metadata for token mints: the symbol from the
// network's RPC node (DAS getAsset) and the USD price from the price API.
// Both lookups are best-effort; callers degrade to "unknown" on errs.NotFound
// instead of failing a page.
type Client struct {
	rpcClient   httpDoer
	priceClient httpDoer
	network     common.Network

	symbols *cache.TTLCache[string, string]
	prices  *cache.TTLCache[string, decimal.Decimal]
}

var _ datagateway.TokenMetaDataGateway = (*Client)(nil)

func New(rpcURL, priceAPIURL string, network common.Network) (*Client, error) {
	rpcClient, err := httpclient.New(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create rpc http client")
	}
	priceClient, err := httpclient.New(priceAPIURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create price http client")
	}
	return newClient(rpcClient, priceClient, network), nil
}

func newClient(rpcClient, priceClient httpDoer, network common.Network) *Client {
	return &Client{
		rpcClient:   rpcClient,
		priceClient: priceClient,
		network:     network,
		symbols:     cache.New[string, string](defaultCacheSize, defaultCacheTTL),
		prices:      cache.New[string, decimal.Decimal](defaultCacheSize, defaultCacheTTL),
	}
}

type getAssetRequest struct {
	JsonRPC string         `json:"jsonrpc"`
	Id      string         `json:"id"`
	Method  string         `json:"method"`
	Params  getAssetParams `json:"params"`
}

type getAssetParams struct {
	Id             string          `json:"id"`
	DisplayOptions map[string]bool `json:"displayOptions"`
}

type getAssetResponse struct {
	Result struct {
		TokenInfo struct {
			Symbol string `json:"symbol"`
		} `json:"token_info"`
	} `json:"result"`
}

// GetSymbol resolves the token symbol for a mint via the RPC node's DAS API.
func (c *Client) GetSymbol(ctx context.Context, mint string) (string, error) {
	key := fmt.Sprintf("%s:%s", c.network, mint)
	if cached, ok := c.symbols.Get(key); ok {
		return cached, nil
	}

	body, err := json.Marshal(getAssetRequest{
		JsonRPC: "2.0",
		Id:      "claim-gateway",
		Method:  "getAsset",
		Params: getAssetParams{
			Id:             mint,
			DisplayOptions: map[string]bool{"showFungible": true},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "can't marshal getAsset request")
	}

	resp, err := c.rpcClient.Post(ctx, "/", httpclient.RequestOptions{Body: body})
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "can't fetch token asset"), errs.RemoteError)
	}
	if resp.StatusCode()/100 != 2 {
		return "", errors.Mark(errors.Errorf("getAsset returned status %d", resp.StatusCode()), errs.RemoteError)
	}

	var assetResp getAssetResponse
	if err := resp.UnmarshalBody(&assetResp); err != nil {
		return "", errors.Mark(errors.WithStack(err), errs.RemoteError)
	}
	symbol := assetResp.Result.TokenInfo.Symbol
	if symbol == "" {
		return "", errors.Wrapf(errs.NotFound, "no symbol for mint %s", mint)
	}
	c.symbols.Put(key, symbol)
	return symbol, nil
}

// GetPriceUSD resolves the USD price for a mint. Price feeds only cover
// mainnet mints; on other networks the price is always unknown.
func (c *Client) GetPriceUSD(ctx context.Context, mint string) (decimal.Decimal, error) {
	if c.network != common.NetworkMainnet {
		return decimal.Zero, errors.Wrapf(errs.NotFound, "no price feed on %s", c.network)
	}
	if cached, ok := c.prices.Get(mint); ok {
		return cached, nil
	}

	query := url.Values{}
	query.Set("contract_addresses", mint)
	query.Set("vs_currencies", "usd")
	resp, err := c.priceClient.Get(ctx, "/simple/token_price/solana", httpclient.RequestOptions{Query: query})
	if err != nil {
		return decimal.Zero, errors.Mark(errors.Wrap(err, "can't fetch token price"), errs.RemoteError)
	}
	if resp.StatusCode()/100 != 2 {
		return decimal.Zero, errors.Mark(errors.Errorf("token price fetch returned status %d", resp.StatusCode()), errs.RemoteError)
	}

	var prices map[string]map[string]decimal.Decimal
	if err := resp.UnmarshalBody(&prices); err != nil {
		return decimal.Zero, errors.Mark(errors.WithStack(err), errs.RemoteError)
	}
	price, ok := prices[strings.ToLower(mint)]["usd"]
	if !ok {
		return decimal.Zero, errors.Wrapf(errs.NotFound, "no price for mint %s", mint)
	}
	c.prices.Put(mint, price)
	return price, nil
}
