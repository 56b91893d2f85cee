// Package verifier implements sign-in message verification for
// Sign-In With Farcaster (SIWF) messages: an EIP-4361 style statement
// signed with personal_sign, carrying the fid as a resource URI.
package verifier

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

// DefaultIDRegistry is the Farcaster IdRegistry contract on Optimism
// mainnet, mapping custody addresses to fids.
var DefaultIDRegistry = common.HexToAddress("0x00000000Fc6c5F01Fc30151999387Bb99A9f489b")

var idOfSelector = crypto.Keccak256([]byte("idOf(address)"))[:4]

const fidResourcePrefix = "farcaster://fid/"

// Config configures the production verifier.
type Config struct {
	// RPCURL is an Optimism JSON-RPC endpoint used to confirm custody
	// of the fid against the IdRegistry. When empty no onchain check
	// is performed (local development).
	RPCURL string

	// IDRegistry overrides DefaultIDRegistry (test deployments).
	IDRegistry common.Address

	// AcceptAuthAddresses accepts signers that are not the fid's
	// custody address, i.e. delegated auth addresses the registry
	// cannot attest directly.
	AcceptAuthAddresses bool
}

// SIWFVerifier verifies SIWF sign-in messages. Construct one per
// process; dialing the RPC endpoint is the expensive part and the
// resulting client is safe for concurrent use.
type SIWFVerifier struct {
	client              *ethclient.Client
	registry            common.Address
	acceptAuthAddresses bool
}

// New creates a SIWFVerifier from the given config.
func New(cfg Config) (ports.SignInVerifier, error) {
	v := &SIWFVerifier{
		registry:            cfg.IDRegistry,
		acceptAuthAddresses: cfg.AcceptAuthAddresses,
	}
	if v.registry == (common.Address{}) {
		v.registry = DefaultIDRegistry
	}
	if cfg.RPCURL != "" {
		client, err := ethclient.Dial(cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial eth rpc: %w", err)
		}
		v.client = client
	}
	return v, nil
}

// Verify checks that the message is bound to the request's domain and
// nonce, that the signature recovers to the address the message claims,
// and (when an RPC client is configured) that the signer holds the fid
// in the IdRegistry.
func (v *SIWFVerifier) Verify(ctx context.Context, req core.VerificationRequest) (core.Identity, error) {
	msg, err := parseMessage(req.Message)
	if err != nil {
		return core.Identity{}, fmt.Errorf("%w: %v", core.ErrVerificationFailed, err)
	}

	if msg.domain != req.Domain {
		return core.Identity{}, fmt.Errorf("%w: domain mismatch", core.ErrVerificationFailed)
	}
	if msg.nonce == "" || msg.nonce != req.Nonce {
		return core.Identity{}, fmt.Errorf("%w: nonce mismatch", core.ErrVerificationFailed)
	}

	if msg.address == "" {
		return core.Identity{}, core.ErrMissingAddress
	}
	if !common.IsHexAddress(msg.address) {
		return core.Identity{}, fmt.Errorf("%w: invalid address", core.ErrVerificationFailed)
	}

	recovered, err := recoverSigner(req.Message, req.Signature)
	if err != nil {
		return core.Identity{}, fmt.Errorf("%w: %v", core.ErrVerificationFailed, err)
	}
	if recovered != common.HexToAddress(msg.address) {
		return core.Identity{}, fmt.Errorf("%w: signer mismatch", core.ErrVerificationFailed)
	}

	if msg.fid == 0 {
		return core.Identity{}, core.ErrMissingFid
	}

	if v.client != nil {
		onchainFid, err := v.registryFid(ctx, recovered)
		if err != nil {
			return core.Identity{}, fmt.Errorf("id registry lookup failed: %w", err)
		}
		if onchainFid != msg.fid && !v.acceptAuthAddresses {
			return core.Identity{}, fmt.Errorf("%w: signer does not hold fid %d", core.ErrVerificationFailed, msg.fid)
		}
	}

	return core.Identity{Fid: msg.fid, Address: msg.address}.Normalize(), nil
}

// recoverSigner recovers the EIP-191 personal_sign signer of message.
func recoverSigner(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}

	// Wallets produce v as 27/28; SigToPub wants 0/1.
	if sig[64] >= 27 {
		sig = append([]byte{}, sig...)
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// registryFid returns IdRegistry.idOf(addr), 0 if the address holds no fid.
func (v *SIWFVerifier) registryFid(ctx context.Context, addr common.Address) (int64, error) {
	data := make([]byte, 0, 36)
	data = append(data, idOfSelector...)
	data = append(data, common.LeftPadBytes(addr.Bytes(), 32)...)

	res, err := v.client.CallContract(ctx, ethereum.CallMsg{To: &v.registry, Data: data}, nil)
	if err != nil {
		return 0, err
	}

	return new(big.Int).SetBytes(res).Int64(), nil
}

// siwfMessage is the subset of an EIP-4361 message this service binds on.
type siwfMessage struct {
	domain  string
	address string
	nonce   string
	fid     int64
}

const preamble = " wants you to sign in with your Ethereum account:"

// parseMessage extracts domain, address, nonce and fid from a SIWF
// message. Only structure is validated here; binding checks happen in
// Verify so each mismatch can be reported precisely.
func parseMessage(raw string) (siwfMessage, error) {
	var msg siwfMessage

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return msg, fmt.Errorf("message too short")
	}

	if !strings.HasSuffix(lines[0], preamble) {
		return msg, fmt.Errorf("missing sign-in preamble")
	}
	msg.domain = strings.TrimSuffix(lines[0], preamble)
	msg.address = strings.TrimSpace(lines[1])

	inResources := false
	for _, line := range lines[2:] {
		switch {
		case strings.HasPrefix(line, "Nonce: "):
			msg.nonce = strings.TrimPrefix(line, "Nonce: ")
			inResources = false
		case line == "Resources:":
			inResources = true
		case inResources && strings.HasPrefix(line, "- "+fidResourcePrefix):
			fidStr := strings.TrimPrefix(line, "- "+fidResourcePrefix)
			fid, err := strconv.ParseInt(fidStr, 10, 64)
			if err != nil {
				return msg, fmt.Errorf("invalid fid resource %q", fidStr)
			}
			msg.fid = fid
		case inResources && !strings.HasPrefix(line, "- "):
			inResources = false
		}
	}

	return msg, nil
}
