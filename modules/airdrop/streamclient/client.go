package streamclient

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/modules/airdrop/datagateway"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
	"github.com/merkledrop/claim-gateway/pkg/cache"
	"github.com/merkledrop/claim-gateway/pkg/httpclient"
)

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 5 * time.Minute
)

// httpDoer is the subset of httpclient.Client used by this package.
type httpDoer interface {
	Get(ctx context.Context, path string, reqOptions httpclient.RequestOptions) (*httpclient.HttpResponse, error)
}

// Client fetches eligibility and campaign records from the distributor REST
// backend of one network. Records are cached for a bounded freshness window;
// cache keys always include the network so a client for another network can
// never serve stale cross-network records.
type Client struct {
	httpClient httpDoer
	network    common.Network

	distributors *cache.TTLCache[string, *entity.Distributor]
	claimants    *cache.TTLCache[string, *entity.Claimant]
	airdrops     *cache.TTLCache[string, *entity.AirdropList]
}

var _ datagateway.AirdropDataGateway = (*Client)(nil)

type Options struct {
	// CacheSize bounds each record cache (entries). Defaults to 1024.
	CacheSize int

	// CacheTTL is the freshness window for cached records. Defaults to 5 minutes.
	CacheTTL time.Duration
}

func New(baseURL string, network common.Network, options ...Options) (*Client, error) {
	if !network.IsSupported() {
		return nil, errors.Errorf("unsupported network %q", network)
	}
	httpClient, err := httpclient.New(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}
	return newClient(httpClient, network, opts), nil
}

func newClient(httpClient httpDoer, network common.Network, opts Options) *Client {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &Client{
		httpClient:   httpClient,
		network:      network,
		distributors: cache.New[string, *entity.Distributor](opts.CacheSize, opts.CacheTTL),
		claimants:    cache.New[string, *entity.Claimant](opts.CacheSize, opts.CacheTTL),
		airdrops:     cache.New[string, *entity.AirdropList](opts.CacheSize, opts.CacheTTL),
	}
}

func (c *Client) Network() common.Network {
	return c.network
}

func (c *Client) distributorKey(address string) string {
	return fmt.Sprintf("%s:%s", c.network, address)
}

func (c *Client) claimantKey(distributorAddress, claimantAddress string) string {
	return fmt.Sprintf("%s:%s:%s", c.network, distributorAddress, claimantAddress)
}

func (c *Client) airdropsKey(wallet string) string {
	return fmt.Sprintf("%s:%s", c.network, wallet)
}
