package claim

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/modules/airdrop/entity"
)

// Params is the validated, shaped payload for one claim attempt. Amounts are
// arbitrary-precision base-unit integers; they are only narrowed to the wire
// representation at instruction encoding time.
type Params struct {
	DistributorAddress string
	Proof              [][32]byte
	AmountUnlocked     *big.Int
	AmountLocked       *big.Int
}

// BuildClaimParams validates a claimant record and shapes it for submission.
// It performs no I/O. Validation is ordered: distributor address, proof,
// amounts; the first failure wins and names the offending field.
func BuildClaimParams(claimant *entity.Claimant) (*Params, error) {
	if claimant == nil || claimant.DistributorAddress == "" {
		return nil, errors.WithStack(ErrMissingDistributor)
	}
	if claimant.Proof == nil {
		return nil, errors.WithStack(ErrMissingProof)
	}
	proof := make([][32]byte, len(claimant.Proof))
	for i, node := range claimant.Proof {
		if len(node) != 32 {
			return nil, errors.Wrapf(ErrInvalidProofNode, "node %d has %d bytes", i, len(node))
		}
		copy(proof[i][:], node)
	}

	amountUnlocked, err := parseBaseUnits(claimant.AmountUnlocked)
	if err != nil {
		return nil, errors.Wrap(err, "amountUnlocked")
	}
	amountLocked, err := parseBaseUnits(claimant.AmountLocked)
	if err != nil {
		return nil, errors.Wrap(err, "amountLocked")
	}

	return &Params{
		DistributorAddress: claimant.DistributorAddress,
		Proof:              proof,
		AmountUnlocked:     amountUnlocked,
		AmountLocked:       amountLocked,
	}, nil
}

// parseBaseUnits parses a non-negative base-unit amount. Floats are rejected:
// base units must survive exactly, and float64 cannot represent large-supply
// token amounts.
func parseBaseUnits(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.WithStack(ErrInvalidAmount)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	return v, nil
}
