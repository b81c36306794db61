package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merkledrop/claim-gateway/common/errs"
)

func testDistributor() Distributor {
	return Distributor{
		Chain:               "SOLANA",
		Mint:                "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Address:             "8gmmVjVaTattB9dzLAqJW5rG7HSFyAcgjvHcabeAjGJs",
		Name:                "USDC drop",
		MaxTotalClaim:       "1000000",
		TotalAmountUnlocked: "1000000",
		TotalAmountLocked:   "0",
		IsActive:            true,
		IsOnChain:           true,
	}
}

func TestDistributorClassify(t *testing.T) {
	testcases := []struct {
		name     string
		unlocked string
		locked   string
		maxClaim string
		expected UnlockKind
	}{
		{
			name:     "fully unlocked is instant",
			unlocked: "1000000",
			locked:   "0",
			maxClaim: "1000000",
			expected: UnlockInstant,
		},
		{
			name:     "nothing unlocked is yet to start",
			unlocked: "0",
			locked:   "1000000",
			maxClaim: "1000000",
			expected: UnlockYetToStart,
		},
		{
			name:     "partially unlocked is vested",
			unlocked: "400000",
			locked:   "600000",
			maxClaim: "1000000",
			expected: UnlockVested,
		},
		{
			// degenerate empty campaign: unlocked == max wins over unlocked == 0
			name:     "zero max claim is instant",
			unlocked: "0",
			locked:   "0",
			maxClaim: "0",
			expected: UnlockInstant,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := testDistributor()
			d.TotalAmountUnlocked = tc.unlocked
			d.TotalAmountLocked = tc.locked
			d.MaxTotalClaim = tc.maxClaim

			kind, err := d.Classify()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}

	t.Run("malformed amount", func(t *testing.T) {
		d := testDistributor()
		d.TotalAmountUnlocked = "12.5"
		_, err := d.Classify()
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestDistributorValidate(t *testing.T) {
	t.Run("valid totals", func(t *testing.T) {
		assert.NoError(t, testDistributor().Validate())
	})

	t.Run("partially claimed campaign", func(t *testing.T) {
		d := testDistributor()
		d.TotalAmountUnlocked = "300000"
		d.TotalAmountLocked = "500000"
		assert.NoError(t, d.Validate())
	})

	t.Run("totals exceeding max claim", func(t *testing.T) {
		d := testDistributor()
		d.TotalAmountUnlocked = "900000"
		d.TotalAmountLocked = "200000"
		assert.ErrorIs(t, d.Validate(), errs.InvalidArgument)
	})

	t.Run("negative amount", func(t *testing.T) {
		d := testDistributor()
		d.TotalAmountLocked = "-1"
		assert.ErrorIs(t, d.Validate(), errs.InvalidArgument)
	})
}

func TestDistributorJSON(t *testing.T) {
	raw := `{
		"chain": "SOLANA",
		"mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"version": 2,
		"address": "8gmmVjVaTattB9dzLAqJW5rG7HSFyAcgjvHcabeAjGJs",
		"sender": "EsYxypWzEGmHDC71cBwZpcpnwSzGSGbuGr4tnBYkMyBV",
		"name": "USDC drop",
		"maxNumNodes": "100",
		"maxTotalClaim": "1000000",
		"totalAmountUnlocked": "400000",
		"totalAmountLocked": "600000",
		"isActive": true,
		"isOnChain": true,
		"isVerified": true,
		"clawbackDt": null,
		"isAligned": false,
		"merkleRoot": [1, 2, 3]
	}`

	var d Distributor
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, 2, d.Version)
	assert.Nil(t, d.ClawbackDt)
	assert.Equal(t, Bytes{1, 2, 3}, d.MerkleRoot)

	kind, err := d.Classify()
	require.NoError(t, err)
	assert.Equal(t, UnlockVested, kind)
}
