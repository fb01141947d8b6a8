package contract

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

// VoteDigest is the 32 byte message a voter signs so someone else can relay the vote:
// keccak256(keccak256(pool) || pollID || voter || agree || nonce), numbers big endian and the
// nonce widened to 32 bytes. The digest is signed as an Ethereum personal message.
func VoteDigest(pool sdk.Address, pollID uint64, voter sdk.Address, agree bool, nonce uint64) ([]byte, error) {
	addr, ok := voter.Common()
	if !ok {
		return nil, fmt.Errorf("voter %q: %w", voter, ErrInvalidAddress)
	}
	msg := make([]byte, 0, 32+8+20+1+32)
	msg = append(msg, crypto.Keccak256([]byte(pool.String()))...)
	msg = binary.BigEndian.AppendUint64(msg, pollID)
	msg = append(msg, addr.Bytes()...)
	if agree {
		msg = append(msg, 1)
	} else {
		msg = append(msg, 0)
	}
	n := uint256.NewInt(nonce).Bytes32()
	msg = append(msg, n[:]...)
	return crypto.Keccak256(msg), nil
}

// SignVote signs a relayed vote with key and returns the voter address the key belongs to.
// Example payload: SignVote(key, contract.DefaultAddress, 0, true, 7)
func SignVote(key *ecdsa.PrivateKey, pool sdk.Address, pollID uint64, agree bool, nonce uint64) (sdk.Address, []byte, error) {
	voter := sdk.AddressFromCommon(crypto.PubkeyToAddress(key.PublicKey))
	digest, err := VoteDigest(pool, pollID, voter, agree, nonce)
	if err != nil {
		return "", nil, err
	}
	sig, err := crypto.Sign(accounts.TextHash(digest), key)
	if err != nil {
		return "", nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return voter, sig, nil
}

// recoverSigner returns the address that produced sig over digest. v may be 0/1 or 27/28.
func recoverSigner(digest, sig []byte) (sdk.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	s := make([]byte, crypto.SignatureLength)
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}
	if s[crypto.RecoveryIDOffset] > 1 {
		return "", fmt.Errorf("%w: bad recovery id", ErrInvalidSignature)
	}
	pub, err := crypto.SigToPub(accounts.TextHash(digest), s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return sdk.AddressFromCommon(crypto.PubkeyToAddress(*pub)), nil
}

// verifyVoteSignature checks that voter signed (pool, pollID, agree, nonce).
func verifyVoteSignature(pool sdk.Address, pollID uint64, voter sdk.Address, agree bool, nonce uint64, sig []byte) error {
	digest, err := VoteDigest(pool, pollID, voter, agree, nonce)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	signer, err := recoverSigner(digest, sig)
	if err != nil {
		return err
	}
	if signer != voter {
		return fmt.Errorf("%w: signed by %s", ErrInvalidSignature, signer)
	}
	return nil
}
