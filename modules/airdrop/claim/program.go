package claim

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/cockroachdb/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// DistributorProgramID is the on-chain Merkle-distributor program. The same
// program is deployed on mainnet and devnet.
var DistributorProgramID = solana.MustPublicKeyFromBase58("J7cV46t2BLkoHWvmrcG1nK3wgB2D1EmHLko29bEDbnpV")

const claimStatusSeed = "ClaimStatus"

// anchorDiscriminator returns the 8-byte anchor instruction discriminator.
func anchorDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// FindClaimStatusAddress derives the per-claimant claim-status PDA.
func FindClaimStatusAddress(claimant, distributor solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(claimStatusSeed), claimant.Bytes(), distributor.Bytes()},
		DistributorProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "can't derive claim status address")
	}
	return addr, nil
}

// newClaimArgs is the borsh-encoded argument block of the new_claim
// instruction: amounts as u64 little-endian, proof as a vec of 32-byte nodes.
type newClaimArgs struct {
	AmountUnlocked uint64
	AmountLocked   uint64
	Proof          [][32]byte
}

func (a newClaimArgs) encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(anchorDiscriminator("new_claim"))
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint64(a.AmountUnlocked, binary.LittleEndian); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := enc.WriteUint64(a.AmountLocked, binary.LittleEndian); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := enc.WriteUint32(uint32(len(a.Proof)), binary.LittleEndian); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, node := range a.Proof {
		if err := enc.WriteBytes(node[:], false); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return buf.Bytes(), nil
}

// NewClaimInstruction builds the new_claim instruction. The distributor vault
// and the claimant token account are the associated token accounts of the
// distributor and the claimant for the campaign mint.
func NewClaimInstruction(distributor, mint, claimant solana.PublicKey, amountUnlocked, amountLocked uint64, proof [][32]byte) (solana.Instruction, error) {
	claimStatus, err := FindClaimStatusAddress(claimant, distributor)
	if err != nil {
		return nil, err
	}
	vault, _, err := solana.FindAssociatedTokenAddress(distributor, mint)
	if err != nil {
		return nil, errors.Wrap(err, "can't derive distributor vault address")
	}
	destination, _, err := solana.FindAssociatedTokenAddress(claimant, mint)
	if err != nil {
		return nil, errors.Wrap(err, "can't derive claimant token account address")
	}

	data, err := newClaimArgs{
		AmountUnlocked: amountUnlocked,
		AmountLocked:   amountLocked,
		Proof:          proof,
	}.encode()
	if err != nil {
		return nil, errors.Wrap(err, "can't encode new_claim args")
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(distributor).WRITE(),
		solana.Meta(claimStatus).WRITE(),
		solana.Meta(vault).WRITE(),
		solana.Meta(destination).WRITE(),
		solana.Meta(claimant).SIGNER().WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(DistributorProgramID, accounts, data), nil
}
