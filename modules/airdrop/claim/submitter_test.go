package claim

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
)

type fakeRPC struct {
	blockhashErr error
	sendErr      error
	sendSig      solana.Signature
	statuses     []ConfirmationStatus
	statusErr    error

	blockhashCalls int
	sendCalls      int
	statusCalls    int
}

func (f *fakeRPC) LatestBlockhash(_ context.Context) (solana.Hash, error) {
	f.blockhashCalls++
	if f.blockhashErr != nil {
		return solana.Hash{}, f.blockhashErr
	}
	return solana.HashFromBytes(make([]byte, 32)), nil
}

func (f *fakeRPC) SendTransaction(_ context.Context, _ *solana.Transaction) (solana.Signature, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return f.sendSig, nil
}

func (f *fakeRPC) SignatureStatus(_ context.Context, _ solana.Signature) (ConfirmationStatus, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return ConfirmationUnknown, f.statusErr
	}
	if len(f.statuses) == 0 {
		return ConfirmationUnknown, nil
	}
	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return status, nil
}

func (f *fakeRPC) totalCalls() int {
	return f.blockhashCalls + f.sendCalls + f.statusCalls
}

// signOnlyWallet can sign single transactions but not batches.
type signOnlyWallet struct {
	key solana.PrivateKey
}

func (w *signOnlyWallet) PublicKey() solana.PublicKey {
	return w.key.PublicKey()
}

func (w *signOnlyWallet) SignTransaction(_ context.Context, tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.key.PublicKey()) {
			return &w.key
		}
		return nil
	})
	return err
}

// viewOnlyWallet exposes a public key but cannot sign anything.
type viewOnlyWallet struct {
	key solana.PublicKey
}

func (w *viewOnlyWallet) PublicKey() solana.PublicKey {
	return w.key
}

func testParams() *Params {
	return &Params{
		DistributorAddress: "8gmmVjVaTattB9dzLAqJW5rG7HSFyAcgjvHcabeAjGJs",
		Proof:              [][32]byte{},
		AmountUnlocked:     big.NewInt(5000000),
		AmountLocked:       big.NewInt(0),
	}
}

func testSubmitter(rpcClient SolanaRPC) *Submitter {
	return NewSubmitter(rpcClient, common.NetworkDevnet, SubmitterOptions{
		ConfirmTimeout: 100 * time.Millisecond,
		PollInterval:   5 * time.Millisecond,
	})
}

func TestSubmitterClaim(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	sig := solana.SignatureFromBytes(append([]byte{0x01}, make([]byte, 63)...))

	t.Run("confirmed claim", func(t *testing.T) {
		rpcClient := &fakeRPC{
			sendSig:  sig,
			statuses: []ConfirmationStatus{ConfirmationProcessed, ConfirmationConfirmed},
		}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		result, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, result.Status)
		assert.Equal(t, sig, result.Signature)
		require.Len(t, result.Instructions, 1)
		assert.Equal(t, DistributorProgramID, result.Instructions[0].ProgramID())
		assert.Equal(t, 1, rpcClient.sendCalls)
	})

	t.Run("nil wallet", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, nil)
		assert.ErrorIs(t, err, ErrWalletNotConnected)
		assert.Zero(t, rpcClient.totalCalls())
	})

	t.Run("wallet without a public key", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, &viewOnlyWallet{})
		assert.ErrorIs(t, err, ErrWalletNotConnected)
		assert.Zero(t, rpcClient.totalCalls())
	})

	t.Run("wallet without signing capability", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		wallet := &viewOnlyWallet{key: solana.NewWallet().PublicKey()}

		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		assert.ErrorIs(t, err, ErrUnsupportedWallet)
		assert.Zero(t, rpcClient.totalCalls())
	})

	t.Run("wallet without batch signing capability", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		wallet := &signOnlyWallet{key: solana.NewWallet().PrivateKey}

		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		assert.ErrorIs(t, err, ErrUnsupportedWallet)
		assert.Zero(t, rpcClient.totalCalls())
	})

	t.Run("amount beyond uint64", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		params := testParams()
		params.AmountUnlocked = new(big.Int).Lsh(big.NewInt(1), 64)
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		_, err := testSubmitter(rpcClient).Claim(context.Background(), params, mint, wallet)
		assert.ErrorIs(t, err, errs.OverflowUint64)
		assert.Zero(t, rpcClient.totalCalls())
	})

	t.Run("broadcast rejected", func(t *testing.T) {
		rpcClient := &fakeRPC{sendErr: errors.New("blockhash not found")}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		assert.ErrorIs(t, err, ErrSubmissionFailed)
		assert.Zero(t, rpcClient.statusCalls)
	})

	t.Run("empty signature is a failed submission", func(t *testing.T) {
		rpcClient := &fakeRPC{}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		assert.ErrorIs(t, err, ErrSubmissionFailed)
	})

	t.Run("failed on chain", func(t *testing.T) {
		rpcClient := &fakeRPC{
			sendSig:  sig,
			statuses: []ConfirmationStatus{ConfirmationFailed},
		}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		_, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		assert.ErrorIs(t, err, ErrSubmissionFailed)
	})

	t.Run("unobservable confirmation is indeterminate", func(t *testing.T) {
		rpcClient := &fakeRPC{
			sendSig:  sig,
			statuses: []ConfirmationStatus{ConfirmationUnknown},
		}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		result, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		require.NoError(t, err)
		assert.Equal(t, StatusIndeterminate, result.Status)
		assert.Equal(t, sig, result.Signature)
	})

	t.Run("status endpoint errors degrade to indeterminate", func(t *testing.T) {
		rpcClient := &fakeRPC{
			sendSig:   sig,
			statusErr: errors.New("rpc node down"),
		}
		wallet := NewKeypairWallet(solana.NewWallet().PrivateKey)

		result, err := testSubmitter(rpcClient).Claim(context.Background(), testParams(), mint, wallet)
		require.NoError(t, err)
		assert.Equal(t, StatusIndeterminate, result.Status)
	})
}
