package claim

import (
	"context"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/common/errs"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

// ConfirmationStatus is the observed state of a submitted signature.
type ConfirmationStatus string

const (
	ConfirmationUnknown   ConfirmationStatus = "unknown"
	ConfirmationProcessed ConfirmationStatus = "processed"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationFailed    ConfirmationStatus = "failed"
)

// SolanaRPC is the narrow RPC surface the submitter needs. Implemented by
// RPCAdapter for production use and by fakes in tests.
type SolanaRPC interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (ConfirmationStatus, error)
}

// Status is the terminal state of one claim attempt. A broadcast whose
// confirmation could not be observed is surfaced as StatusIndeterminate, not
// as a failure: resubmitting it blindly risks a duplicate claim attempt.
type Status string

const (
	StatusConfirmed     Status = "confirmed"
	StatusFailed        Status = "failed"
	StatusIndeterminate Status = "indeterminate"
)

// Result reports one submission: the transaction signature, the terminal
// status, and the instructions that were submitted (observability only).
type Result struct {
	Signature    solana.Signature
	Status       Status
	Instructions []solana.Instruction
}

// Submitter constructs and submits claim transactions against one network's
// RPC endpoint. It never retries: a retry is a caller decision made by
// re-running the whole pipeline.
type Submitter struct {
	rpcClient SolanaRPC
	network   common.Network

	confirmTimeout time.Duration
	pollInterval   time.Duration
}

type SubmitterOptions struct {
	// ConfirmTimeout bounds how long a submission waits for confirmation
	// before reporting StatusIndeterminate. Defaults to 45s.
	ConfirmTimeout time.Duration

	// PollInterval is the confirmation polling cadence. Defaults to 2s.
	PollInterval time.Duration
}

func NewSubmitter(rpcClient SolanaRPC, network common.Network, options ...SubmitterOptions) *Submitter {
	var opts SubmitterOptions
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 45 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	return &Submitter{
		rpcClient:      rpcClient,
		network:        network,
		confirmTimeout: opts.ConfirmTimeout,
		pollInterval:   opts.PollInterval,
	}
}

// Claim submits one claim transaction signed by the wallet. Preconditions
// (wallet connected, signing capabilities present) are checked before any
// I/O. mint is the campaign token mint, taken from the distributor record.
func (s *Submitter) Claim(ctx context.Context, params *Params, mint solana.PublicKey, wallet Wallet) (*Result, error) {
	if wallet == nil || wallet.PublicKey().IsZero() {
		return nil, errors.WithStack(ErrWalletNotConnected)
	}
	signer, ok := wallet.(TransactionSigner)
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedWallet, "missing signTransaction capability")
	}
	if _, ok := wallet.(MultiTransactionSigner); !ok {
		return nil, errors.Wrap(ErrUnsupportedWallet, "missing signAllTransactions capability")
	}

	distributor, err := solana.PublicKeyFromBase58(params.DistributorAddress)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "distributor address %q: %v", params.DistributorAddress, err)
	}
	amountUnlocked, err := amountToBaseUnits(params.AmountUnlocked)
	if err != nil {
		return nil, errors.Wrap(err, "amountUnlocked")
	}
	amountLocked, err := amountToBaseUnits(params.AmountLocked)
	if err != nil {
		return nil, errors.Wrap(err, "amountLocked")
	}

	instruction, err := NewClaimInstruction(distributor, mint, wallet.PublicKey(), amountUnlocked, amountLocked, params.Proof)
	if err != nil {
		return nil, errors.Wrap(err, "can't build claim instruction")
	}

	blockhash, err := s.rpcClient.LatestBlockhash(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't fetch latest blockhash"), ErrSubmissionFailed)
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(wallet.PublicKey()),
	)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't build transaction"), ErrSubmissionFailed)
	}
	if err := signer.SignTransaction(ctx, tx); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't sign transaction"), ErrSubmissionFailed)
	}

	sig, err := s.rpcClient.SendTransaction(ctx, tx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "claim transaction rejected"), ErrSubmissionFailed)
	}
	if sig.IsZero() {
		return nil, errors.Wrap(ErrSubmissionFailed, "submission returned an empty signature")
	}

	result := &Result{
		Signature:    sig,
		Instructions: []solana.Instruction{instruction},
	}
	result.Status, err = s.awaitConfirmation(ctx, sig)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// awaitConfirmation polls the signature status until the transaction lands,
// fails, or the timeout elapses. After a broadcast the outcome can no longer
// be "rejected outright": an unobservable confirmation is Indeterminate.
func (s *Submitter) awaitConfirmation(ctx context.Context, sig solana.Signature) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		status, err := s.rpcClient.SignatureStatus(ctx, sig)
		if err != nil {
			logger.WarnContext(ctx, "can't query signature status",
				slogx.Error(err),
				slogx.Stringer("signature", sig),
				slogx.Stringer("network", s.network),
			)
		} else {
			switch status {
			case ConfirmationConfirmed:
				return StatusConfirmed, nil
			case ConfirmationFailed:
				return "", errors.Wrapf(ErrSubmissionFailed, "transaction %s failed on chain", sig)
			}
		}

		select {
		case <-ctx.Done():
			return StatusIndeterminate, nil
		case <-ticker.C:
		}
	}
}

// amountToBaseUnits narrows a validated amount to the u64 wire type.
func amountToBaseUnits(v *big.Int) (uint64, error) {
	if v == nil || v.Sign() < 0 {
		return 0, errors.WithStack(ErrInvalidAmount)
	}
	if !v.IsUint64() {
		return 0, errors.Wrapf(errs.OverflowUint64, "amount %s", v)
	}
	return v.Uint64(), nil
}
