package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/modules/airdrop/claim"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
)

const (
	testDistributor = "8gmmVjVaTattB9dzLAqJW5rG7HSFyAcgjvHcabeAjGJs"
	testMint        = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

type fakeAirdropDg struct {
	list        *entity.AirdropList
	listErr     error
	distributor *entity.Distributor
	claimant    *entity.Claimant
	claimantErr error

	invalidated [][2]string
}

func (f *fakeAirdropDg) GetClaimableAirdrops(_ context.Context, _ string) (*entity.AirdropList, error) {
	return f.list, f.listErr
}

func (f *fakeAirdropDg) GetDistributor(_ context.Context, address string) (*entity.Distributor, error) {
	if f.distributor == nil || f.distributor.Address != address {
		return nil, errors.Wrapf(errs.NotFound, "distributor %s", address)
	}
	return f.distributor, nil
}

func (f *fakeAirdropDg) GetClaimant(_ context.Context, _, _ string) (*entity.Claimant, error) {
	return f.claimant, f.claimantErr
}

func (f *fakeAirdropDg) InvalidateClaimant(distributorAddress, claimantAddress string) {
	f.invalidated = append(f.invalidated, [2]string{distributorAddress, claimantAddress})
}

type fakeTokenMetaDg struct {
	symbols map[string]string
	prices  map[string]decimal.Decimal
}

func (f *fakeTokenMetaDg) GetSymbol(_ context.Context, mint string) (string, error) {
	symbol, ok := f.symbols[mint]
	if !ok {
		return "", errors.Wrapf(errs.NotFound, "symbol for %s", mint)
	}
	return symbol, nil
}

func (f *fakeTokenMetaDg) GetPriceUSD(_ context.Context, mint string) (decimal.Decimal, error) {
	price, ok := f.prices[mint]
	if !ok {
		return decimal.Zero, errors.Wrapf(errs.NotFound, "price for %s", mint)
	}
	return price, nil
}

type fakeSubmitter struct {
	result *claim.Result
	err    error

	calls  int
	params *claim.Params
	mint   solana.PublicKey
}

func (f *fakeSubmitter) Claim(_ context.Context, params *claim.Params, mint solana.PublicKey, _ claim.Wallet) (*claim.Result, error) {
	f.calls++
	f.params = params
	f.mint = mint
	return f.result, f.err
}

func testDistributorEntity() *entity.Distributor {
	return &entity.Distributor{
		Chain:               "SOLANA",
		Mint:                testMint,
		Address:             testDistributor,
		Name:                "USDC drop",
		MaxTotalClaim:       "1000000",
		TotalAmountUnlocked: "1000000",
		TotalAmountLocked:   "0",
		IsActive:            true,
		IsOnChain:           true,
	}
}

func testClaimantEntity(address string) *entity.Claimant {
	return &entity.Claimant{
		Chain:              "SOLANA",
		DistributorAddress: testDistributor,
		Address:            address,
		Proof:              []entity.Bytes{bytes.Repeat([]byte{0xaa}, 32)},
		AmountUnlocked:     "5000000",
		AmountLocked:       "0",
		AmountClaimed:      "0",
	}
}

func TestGetAirdrops(t *testing.T) {
	airdropDg := &fakeAirdropDg{
		list: &entity.AirdropList{
			Limit: 100,
			Items: []entity.AirdropItem{
				{DistributorAddress: testDistributor, Mint: testMint, AmountUnlocked: "5000000"},
				{DistributorAddress: "other", Mint: "unknownMint", AmountUnlocked: "1"},
			},
		},
	}
	tokenMetaDg := &fakeTokenMetaDg{
		symbols: map[string]string{testMint: "USDC"},
		prices:  map[string]decimal.Decimal{testMint: decimal.NewFromFloat(0.9998)},
	}
	u := New(airdropDg, tokenMetaDg, &fakeSubmitter{})

	overviews, err := u.GetAirdrops(context.Background(), "wallet")
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	assert.Equal(t, "USDC", overviews[0].Symbol)
	assert.True(t, overviews[0].PriceUSD.Equal(decimal.NewFromFloat(0.9998)))
	assert.Equal(t, testDistributor, overviews[0].DistributorAddress)

	// unknown token degrades to empty metadata, not an error
	assert.Empty(t, overviews[1].Symbol)
	assert.True(t, overviews[1].PriceUSD.IsZero())
}

func TestGetAirdropsFetchError(t *testing.T) {
	airdropDg := &fakeAirdropDg{listErr: errors.Wrap(errs.RemoteError, "api down")}
	u := New(airdropDg, &fakeTokenMetaDg{}, &fakeSubmitter{})

	_, err := u.GetAirdrops(context.Background(), "wallet")
	assert.ErrorIs(t, err, errs.RemoteError)
}

func TestGetDistributor(t *testing.T) {
	t.Run("instant campaign", func(t *testing.T) {
		airdropDg := &fakeAirdropDg{distributor: testDistributorEntity()}
		tokenMetaDg := &fakeTokenMetaDg{symbols: map[string]string{testMint: "USDC"}}
		u := New(airdropDg, tokenMetaDg, &fakeSubmitter{})

		detail, err := u.GetDistributor(context.Background(), testDistributor)
		require.NoError(t, err)
		assert.Equal(t, entity.UnlockInstant, detail.Unlock)
		assert.Equal(t, "USDC", detail.Symbol)
		assert.True(t, detail.PriceUSD.IsZero())
	})

	t.Run("vested campaign", func(t *testing.T) {
		distributor := testDistributorEntity()
		distributor.TotalAmountUnlocked = "400000"
		distributor.TotalAmountLocked = "600000"
		airdropDg := &fakeAirdropDg{distributor: distributor}
		u := New(airdropDg, &fakeTokenMetaDg{}, &fakeSubmitter{})

		detail, err := u.GetDistributor(context.Background(), testDistributor)
		require.NoError(t, err)
		assert.Equal(t, entity.UnlockVested, detail.Unlock)
	})

	t.Run("totals violating the campaign invariant are rejected", func(t *testing.T) {
		distributor := testDistributorEntity()
		distributor.TotalAmountUnlocked = "900000"
		distributor.TotalAmountLocked = "200000"
		airdropDg := &fakeAirdropDg{distributor: distributor}
		u := New(airdropDg, &fakeTokenMetaDg{}, &fakeSubmitter{})

		_, err := u.GetDistributor(context.Background(), testDistributor)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("unknown distributor", func(t *testing.T) {
		u := New(&fakeAirdropDg{}, &fakeTokenMetaDg{}, &fakeSubmitter{})
		_, err := u.GetDistributor(context.Background(), testDistributor)
		assert.ErrorIs(t, err, errs.NotFound)
	})
}

func TestGetClaimant(t *testing.T) {
	t.Run("no entitlement is nil, not an error", func(t *testing.T) {
		u := New(&fakeAirdropDg{}, &fakeTokenMetaDg{}, &fakeSubmitter{})
		claimant, err := u.GetClaimant(context.Background(), testDistributor, "wallet")
		require.NoError(t, err)
		assert.Nil(t, claimant)
	})

	t.Run("entitled", func(t *testing.T) {
		airdropDg := &fakeAirdropDg{claimant: testClaimantEntity("wallet")}
		u := New(airdropDg, &fakeTokenMetaDg{}, &fakeSubmitter{})
		claimant, err := u.GetClaimant(context.Background(), testDistributor, "wallet")
		require.NoError(t, err)
		require.NotNil(t, claimant)
		assert.Equal(t, "5000000", claimant.AmountUnlocked)
	})
}

func TestClaim(t *testing.T) {
	sig := solana.SignatureFromBytes(append([]byte{0x01}, make([]byte, 63)...))
	newWallet := func() *claim.KeypairWallet {
		return claim.NewKeypairWallet(solana.NewWallet().PrivateKey)
	}

	t.Run("confirmed claim invalidates caches", func(t *testing.T) {
		wallet := newWallet()
		airdropDg := &fakeAirdropDg{
			distributor: testDistributorEntity(),
			claimant:    testClaimantEntity(wallet.PublicKey().String()),
		}
		submitter := &fakeSubmitter{result: &claim.Result{Signature: sig, Status: claim.StatusConfirmed}}
		u := New(airdropDg, &fakeTokenMetaDg{}, submitter)

		outcome, err := u.Claim(context.Background(), testDistributor, wallet)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusConfirmed, outcome.Status)
		assert.Equal(t, sig.String(), outcome.Signature)

		assert.Equal(t, 1, submitter.calls)
		assert.Equal(t, solana.MustPublicKeyFromBase58(testMint), submitter.mint)
		require.NotNil(t, submitter.params)
		assert.Equal(t, testDistributor, submitter.params.DistributorAddress)

		require.Len(t, airdropDg.invalidated, 1)
		assert.Equal(t, [2]string{testDistributor, wallet.PublicKey().String()}, airdropDg.invalidated[0])
	})

	t.Run("indeterminate claim keeps caches", func(t *testing.T) {
		wallet := newWallet()
		airdropDg := &fakeAirdropDg{
			distributor: testDistributorEntity(),
			claimant:    testClaimantEntity(wallet.PublicKey().String()),
		}
		submitter := &fakeSubmitter{result: &claim.Result{Signature: sig, Status: claim.StatusIndeterminate}}
		u := New(airdropDg, &fakeTokenMetaDg{}, submitter)

		outcome, err := u.Claim(context.Background(), testDistributor, wallet)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusIndeterminate, outcome.Status)
		assert.Empty(t, airdropDg.invalidated)
	})

	t.Run("no entitlement", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		u := New(&fakeAirdropDg{distributor: testDistributorEntity()}, &fakeTokenMetaDg{}, submitter)

		_, err := u.Claim(context.Background(), testDistributor, newWallet())
		assert.ErrorIs(t, err, ErrNotEntitled)
		assert.Zero(t, submitter.calls)
	})

	t.Run("nil wallet", func(t *testing.T) {
		u := New(&fakeAirdropDg{}, &fakeTokenMetaDg{}, &fakeSubmitter{})
		_, err := u.Claim(context.Background(), testDistributor, nil)
		assert.ErrorIs(t, err, claim.ErrWalletNotConnected)
	})

	t.Run("invalid claimant record", func(t *testing.T) {
		wallet := newWallet()
		claimant := testClaimantEntity(wallet.PublicKey().String())
		claimant.Proof = nil
		submitter := &fakeSubmitter{}
		u := New(&fakeAirdropDg{distributor: testDistributorEntity(), claimant: claimant}, &fakeTokenMetaDg{}, submitter)

		_, err := u.Claim(context.Background(), testDistributor, wallet)
		assert.ErrorIs(t, err, claim.ErrMissingProof)
		assert.Zero(t, submitter.calls)
	})

	t.Run("submission failure", func(t *testing.T) {
		wallet := newWallet()
		airdropDg := &fakeAirdropDg{
			distributor: testDistributorEntity(),
			claimant:    testClaimantEntity(wallet.PublicKey().String()),
		}
		submitter := &fakeSubmitter{err: errors.WithStack(claim.ErrSubmissionFailed)}
		u := New(airdropDg, &fakeTokenMetaDg{}, submitter)

		_, err := u.Claim(context.Background(), testDistributor, wallet)
		assert.ErrorIs(t, err, claim.ErrSubmissionFailed)
		assert.Empty(t, airdropDg.invalidated)
	})
}
