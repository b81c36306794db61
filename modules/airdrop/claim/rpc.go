package claim

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCAdapter implements SolanaRPC over the standard JSON-RPC client.
type RPCAdapter struct {
	client *rpc.Client
}

var _ SolanaRPC = (*RPCAdapter)(nil)

func NewRPCAdapter(endpoint string) *RPCAdapter {
	return &RPCAdapter{client: rpc.New(endpoint)}
}

func (a *RPCAdapter) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := a.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, errors.WithStack(err)
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, errors.New("getLatestBlockhash returned an empty result")
	}
	return out.Value.Blockhash, nil
}

func (a *RPCAdapter) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := a.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, errors.WithStack(err)
	}
	return sig, nil
}

func (a *RPCAdapter) SignatureStatus(ctx context.Context, sig solana.Signature) (ConfirmationStatus, error) {
	out, err := a.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return ConfirmationUnknown, errors.WithStack(err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return ConfirmationUnknown, nil
	}
	status := out.Value[0]
	if status.Err != nil {
		return ConfirmationFailed, nil
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return ConfirmationConfirmed, nil
	default:
		return ConfirmationProcessed, nil
	}
}
