package streamclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
	"github.com/merkledrop/claim-gateway/pkg/httpclient"
)

const claimableAirdropsLimit = 100

// GetClaimableAirdrops fetches the discovery list for a wallet, serving a
// cached copy when one is still fresh.
func (c *Client) GetClaimableAirdrops(ctx context.Context, wallet string) (*entity.AirdropList, error) {
	if wallet == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "wallet address is required")
	}
	if cached, ok := c.airdrops.Get(c.airdropsKey(wallet)); ok {
		return cached, nil
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprint(claimableAirdropsLimit))
	query.Set("skimZeroValued", "false")
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/airdrops/claimable/%s", wallet), httpclient.RequestOptions{
		Query: query,
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't fetch claimable airdrops"), errs.RemoteError)
	}
	if resp.StatusCode()/100 != 2 {
		return nil, errors.Mark(errors.Errorf("claimable airdrops fetch returned status %d", resp.StatusCode()), errs.RemoteError)
	}

	var list entity.AirdropList
	if err := resp.UnmarshalBody(&list); err != nil {
		return nil, errors.Mark(errors.WithStack(err), errs.RemoteError)
	}
	c.airdrops.Put(c.airdropsKey(wallet), &list)
	return &list, nil
}

// GetDistributor fetches the campaign record for a distributor address,
// serving a cached copy when one is still fresh.
func (c *Client) GetDistributor(ctx context.Context, address string) (*entity.Distributor, error) {
	if address == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "distributor address is required")
	}
	if cached, ok := c.distributors.Get(c.distributorKey(address)); ok {
		return cached, nil
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/airdrops/%s", address), httpclient.RequestOptions{})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't fetch distributor"), errs.RemoteError)
	}
	if resp.StatusCode()/100 != 2 {
		return nil, errors.Mark(errors.Errorf("distributor fetch returned status %d", resp.StatusCode()), errs.RemoteError)
	}

	var distributor entity.Distributor
	if err := resp.UnmarshalBody(&distributor); err != nil {
		return nil, errors.Mark(errors.WithStack(err), errs.RemoteError)
	}
	c.distributors.Put(c.distributorKey(address), &distributor)
	return &distributor, nil
}

// GetClaimant fetches the wallet's entitlement within a distributor. The
// backend reports "no entitlement" as HTTP 400; that outcome is returned as
// (nil, nil) and is never cached, so an entitlement added later is picked up
// on the next call.
func (c *Client) GetClaimant(ctx context.Context, distributorAddress, claimantAddress string) (*entity.Claimant, error) {
	if distributorAddress == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "distributor address is required")
	}
	if claimantAddress == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "claimant address is required")
	}
	if cached, ok := c.claimants.Get(c.claimantKey(distributorAddress, claimantAddress)); ok {
		return cached, nil
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/airdrops/%s/claimants/%s", distributorAddress, claimantAddress), httpclient.RequestOptions{})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't fetch claimant"), errs.RemoteError)
	}
	if resp.StatusCode() == http.StatusBadRequest {
		// not eligible
		return nil, nil
	}
	if resp.StatusCode()/100 != 2 {
		return nil, errors.Mark(errors.Errorf("claimant fetch returned status %d", resp.StatusCode()), errs.RemoteError)
	}

	var claimant entity.Claimant
	if err := resp.UnmarshalBody(&claimant); err != nil {
		return nil, errors.Mark(errors.WithStack(err), errs.RemoteError)
	}
	c.claimants.Put(c.claimantKey(distributorAddress, claimantAddress), &claimant)
	return &claimant, nil
}

// InvalidateClaimant drops the cached records whose amounts change once a
// claim for the pair is confirmed on chain.
func (c *Client) InvalidateClaimant(distributorAddress, claimantAddress string) {
	c.claimants.Delete(c.claimantKey(distributorAddress, claimantAddress))
	c.distributors.Delete(c.distributorKey(distributorAddress))
	c.airdrops.Delete(c.airdropsKey(claimantAddress))
}
