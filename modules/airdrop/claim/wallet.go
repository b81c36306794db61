package claim

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
)

// Wallet exposes the connected signer's identity. Signing capabilities are
// modeled as separate interfaces so the submitter can check them before any
// I/O happens.
type Wallet interface {
	PublicKey() solana.PublicKey
}

// TransactionSigner is the capability to sign a single transaction.
type TransactionSigner interface {
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
}

// MultiTransactionSigner is the capability to sign a batch of transactions.
type MultiTransactionSigner interface {
	SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error
}

// KeypairWallet is a Wallet backed by a local Solana keypair. It is used by
// the CLI and by the gateway's claim endpoint.
type KeypairWallet struct {
	key solana.PrivateKey
}

var (
	_ Wallet                 = (*KeypairWallet)(nil)
	_ TransactionSigner      = (*KeypairWallet)(nil)
	_ MultiTransactionSigner = (*KeypairWallet)(nil)
)

func NewKeypairWallet(key solana.PrivateKey) *KeypairWallet {
	return &KeypairWallet{key: key}
}

// LoadKeypairWallet reads a wallet from a solana-keygen JSON file.
func LoadKeypairWallet(path string) (*KeypairWallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load keypair from %q", path)
	}
	return &KeypairWallet{key: key}, nil
}

func (w *KeypairWallet) PublicKey() solana.PublicKey {
	return w.key.PublicKey()
}

func (w *KeypairWallet) SignTransaction(_ context.Context, tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.key.PublicKey()) {
			return &w.key
		}
		return nil
	})
	return errors.WithStack(err)
}

func (w *KeypairWallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error {
	for _, tx := range txs {
		if err := w.SignTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
