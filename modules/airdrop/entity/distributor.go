package entity

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/common/errs"
)

// Distributor is the read-only projection of one airdrop campaign, as served
// by the distributor API. Amounts are decimal strings in token base units.
type Distributor struct {
	Chain               string  `json:"chain"`
	Mint                string  `json:"mint"`
	Version             int     `json:"version"`
	Address             string  `json:"address"`
	Sender              string  `json:"sender"`
	Name                string  `json:"name"`
	MaxNumNodes         string  `json:"maxNumNodes"`
	MaxTotalClaim       string  `json:"maxTotalClaim"`
	TotalAmountUnlocked string  `json:"totalAmountUnlocked"`
	TotalAmountLocked   string  `json:"totalAmountLocked"`
	IsActive            bool    `json:"isActive"`
	IsOnChain           bool    `json:"isOnChain"`
	IsVerified          bool    `json:"isVerified"`
	ClawbackDt          *string `json:"clawbackDt"`
	IsAligned           bool    `json:"isAligned"`
	MerkleRoot          Bytes   `json:"merkleRoot"`
}

// UnlockKind classifies a distributor's vesting progress.
type UnlockKind string

const (
	// UnlockInstant means the whole allocation is already unlocked.
	UnlockInstant UnlockKind = "Instant"

	// UnlockYetToStart means unlocking has not begun.
	UnlockYetToStart UnlockKind = "Yet to Start"

	// UnlockVested means unlocking is in progress.
	UnlockVested UnlockKind = "Vested"
)

// Classify derives the unlock phase from the campaign totals:
// totalUnlocked == maxTotalClaim is Instant, totalUnlocked == 0 is
// Yet to Start, anything in between is Vested.
func (d Distributor) Classify() (UnlockKind, error) {
	unlocked, err := parseAmount(d.TotalAmountUnlocked)
	if err != nil {
		return "", errors.Wrap(err, "totalAmountUnlocked")
	}
	maxClaim, err := parseAmount(d.MaxTotalClaim)
	if err != nil {
		return "", errors.Wrap(err, "maxTotalClaim")
	}
	switch {
	case unlocked.Cmp(maxClaim) == 0:
		return UnlockInstant, nil
	case unlocked.Sign() == 0:
		return UnlockYetToStart, nil
	default:
		return UnlockVested, nil
	}
}

// Validate checks the campaign totals invariant:
// totalUnlocked + totalLocked <= maxTotalClaim.
func (d Distributor) Validate() error {
	unlocked, err := parseAmount(d.TotalAmountUnlocked)
	if err != nil {
		return errors.Wrap(err, "totalAmountUnlocked")
	}
	locked, err := parseAmount(d.TotalAmountLocked)
	if err != nil {
		return errors.Wrap(err, "totalAmountLocked")
	}
	maxClaim, err := parseAmount(d.MaxTotalClaim)
	if err != nil {
		return errors.Wrap(err, "maxTotalClaim")
	}
	if new(big.Int).Add(unlocked, locked).Cmp(maxClaim) > 0 {
		return errors.Wrapf(errs.InvalidArgument, "distributor %s: unlocked + locked exceeds maxTotalClaim", d.Address)
	}
	return nil
}

// parseAmount parses a base-unit amount. Amounts are arbitrary-precision
// integers, never floats: large-supply tokens overflow float64 mantissas.
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "amount is empty")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(errs.InvalidArgument, "amount %q is not a base-10 integer", s)
	}
	if v.Sign() < 0 {
		return nil, errors.Wrapf(errs.InvalidArgument, "amount %q is negative", s)
	}
	return v, nil
}
