package verifier_test

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farstack/heimdall/adapters/verifier"
	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

const (
	testDomain = "abc123.tunnel.example"
	testNonce  = "8f7a2bc1"
	testFid    = int64(12345)
)

func newSigner(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func buildMessage(domain, address, nonce string, fid int64) string {
	return fmt.Sprintf(
		"%s wants you to sign in with your Ethereum account:\n%s\n\n"+
			"URI: https://%s/\nVersion: 1\nChain ID: 10\nNonce: %s\n"+
			"Issued At: 2026-08-30T12:00:00Z\nResources:\n- farcaster://fid/%d",
		domain, address, domain, nonce, fid)
}

func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// Present v as 27/28 the way wallets do.
	sig[64] += 27
	return hexutil.Encode(sig)
}

func newVerifier(t *testing.T) ports.SignInVerifier {
	t.Helper()
	v, err := verifier.New(verifier.Config{})
	require.NoError(t, err)
	return v
}

func TestVerifyValidSignIn(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := buildMessage(testDomain, address, testNonce, testFid)

	identity, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, key, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	require.NoError(t, err)
	assert.Equal(t, testFid, identity.Fid)
	assert.Equal(t, strings.ToLower(address), identity.Address)
}

func TestVerifyAcceptsRecoveryIDWithoutOffset(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := buildMessage(testDomain, address, testNonce, testFid)
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: hexutil.Encode(sig),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.NoError(t, err)
}

func TestVerifyRejectsDomainMismatch(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := buildMessage("phishing.example", address, testNonce, testFid)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, key, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrVerificationFailed)
}

func TestVerifyRejectsNonceMismatch(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := buildMessage(testDomain, address, "stale-nonce", testFid)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, key, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrVerificationFailed)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := buildMessage(testDomain, address, testNonce, testFid)
	signature := signMessage(t, key, message)

	tampered := buildMessage(testDomain, address, testNonce, testFid+1)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   tampered,
		Signature: signature,
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrVerificationFailed)
}

func TestVerifyRejectsForeignSigner(t *testing.T) {
	_, address := newSigner(t)
	otherKey, _ := newSigner(t)
	v := newVerifier(t)

	message := buildMessage(testDomain, address, testNonce, testFid)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, otherKey, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrVerificationFailed)
}

func TestVerifyReportsMissingFid(t *testing.T) {
	key, address := newSigner(t)
	v := newVerifier(t)

	message := fmt.Sprintf(
		"%s wants you to sign in with your Ethereum account:\n%s\n\nNonce: %s",
		testDomain, address, testNonce)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, key, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrMissingFid)
}

func TestVerifyReportsMissingAddress(t *testing.T) {
	key, _ := newSigner(t)
	v := newVerifier(t)

	message := fmt.Sprintf(
		"%s wants you to sign in with your Ethereum account:\n\nNonce: %s\nResources:\n- farcaster://fid/%d",
		testDomain, testNonce, testFid)

	_, err := v.Verify(context.Background(), core.VerificationRequest{
		Message:   message,
		Signature: signMessage(t, key, message),
		Nonce:     testNonce,
		Domain:    testDomain,
	})
	assert.ErrorIs(t, err, core.ErrMissingAddress)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := newVerifier(t)

	for _, req := range []core.VerificationRequest{
		{},
		{Message: "hello", Signature: "0x00", Nonce: "n", Domain: "d"},
		{Message: buildMessage(testDomain, "0x0000000000000000000000000000000000000001", testNonce, testFid), Signature: "not-hex", Nonce: testNonce, Domain: testDomain},
	} {
		_, err := v.Verify(context.Background(), req)
		assert.Error(t, err)
	}
}
