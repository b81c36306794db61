package claim

import "github.com/cockroachdb/errors"

var (
	// ErrWalletNotConnected is returned when no wallet public key is available.
	ErrWalletNotConnected = errors.New("wallet not connected")

	// ErrUnsupportedWallet is returned when the connected wallet lacks a
	// required signing capability.
	ErrUnsupportedWallet = errors.New("wallet does not support transaction signing")

	// ErrMissingDistributor is returned when a claimant record has no
	// distributor address.
	ErrMissingDistributor = errors.New("invalid claimant data: distributorAddress is missing")

	// ErrMissingProof is returned when a claimant record has no proof
	// sequence. An empty sequence (single-leaf tree) is valid; an absent one
	// is not.
	ErrMissingProof = errors.New("invalid claimant data: proof is missing")

	// ErrInvalidProofNode is returned when a proof node is not a 32-byte hash.
	ErrInvalidProofNode = errors.New("invalid claimant data: proof node is not 32 bytes")

	// ErrInvalidAmount is returned when amountUnlocked or amountLocked is
	// absent or not a non-negative base-unit integer.
	ErrInvalidAmount = errors.New("invalid claimant data: amountUnlocked or amountLocked is invalid")

	// ErrSubmissionFailed is returned when the claim transaction was rejected
	// or the submission produced a structurally invalid result.
	ErrSubmissionFailed = errors.New("claim submission failed")
)
