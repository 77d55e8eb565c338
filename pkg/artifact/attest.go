package artifact

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

const (
	attestHeader = "relver-attest-v1"

	// signaturePrefix marks the encoded signature line appended to a signed
	// tag message.
	signaturePrefix = "sshsig-v1"
)

// ErrNoSignature reports a tag message that carries no signature line.
var ErrNoSignature = errors.New("tag message carries no signature")

// Attestation is the statement a release tag makes about the versions it
// pins. Its canonical payload is what gets signed.
type Attestation struct {
	Tag         string
	Release     string
	Development string
}

// Signer signs canonical payload bytes and returns an encoded signature
// line to be appended to the tag message.
type Signer func(payload []byte) (string, error)

// NewSSHSigner wraps an SSH key into a Signer producing the
// prefix:format:pubkey:signature line Verify undoes.
func NewSSHSigner(signer ssh.Signer) Signer {
	pubB64 := base64.StdEncoding.EncodeToString(signer.PublicKey().Marshal())
	return func(payload []byte) (string, error) {
		sig, err := signer.Sign(rand.Reader, payload)
		if err != nil {
			return "", err
		}
		sigB64 := base64.StdEncoding.EncodeToString(sig.Blob)
		return fmt.Sprintf("%s:%s:%s:%s", signaturePrefix, sig.Format, pubB64, sigB64), nil
	}
}

// Payload renders the canonical bytes covered by the signature.
func (a Attestation) Payload() []byte {
	var b strings.Builder
	b.WriteString(attestHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "tag %s\n", a.Tag)
	fmt.Fprintf(&b, "release %s\n", a.Release)
	fmt.Fprintf(&b, "development %s\n", a.Development)
	return []byte(b.String())
}

// Message renders the unsigned tag message.
func (a Attestation) Message() string {
	return string(a.Payload())
}

func (a Attestation) validate() error {
	for _, f := range []string{a.Tag, a.Release, a.Development} {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("attestation field is empty")
		}
		if strings.ContainsAny(f, "\n\r") {
			return fmt.Errorf("attestation field %q contains a line break", f)
		}
	}
	return nil
}

// Sign renders the attestation followed by its signature line. The result is
// the complete message for the annotated tag.
func Sign(a Attestation, sign Signer) (string, error) {
	if err := a.validate(); err != nil {
		return "", err
	}
	line, err := sign(a.Payload())
	if err != nil {
		return "", fmt.Errorf("sign attestation: %w", err)
	}
	if strings.TrimSpace(line) == "" {
		return "", fmt.Errorf("sign attestation: signer returned an empty signature")
	}
	return a.Message() + line + "\n", nil
}

// Verified describes an attestation whose signature checked out.
type Verified struct {
	Attestation Attestation
	Format      string
	Fingerprint string
}

// Verify parses a tag message and checks the embedded signature against the
// public key it names. The payload is reconstructed from the parsed fields,
// so any edit to the versions breaks verification.
func Verify(message []byte) (Verified, error) {
	a, sigLine, err := parseMessage(message)
	if err != nil {
		return Verified{}, err
	}
	if sigLine == "" {
		return Verified{}, ErrNoSignature
	}

	parts := strings.SplitN(sigLine, ":", 4)
	if len(parts) != 4 || parts[0] != signaturePrefix {
		return Verified{}, fmt.Errorf("malformed signature line %q", sigLine)
	}
	pubRaw, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return Verified{}, fmt.Errorf("decode public key: %w", err)
	}
	sigRaw, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return Verified{}, fmt.Errorf("decode signature: %w", err)
	}
	pub, err := ssh.ParsePublicKey(pubRaw)
	if err != nil {
		return Verified{}, fmt.Errorf("parse public key: %w", err)
	}

	sig := &ssh.Signature{Format: parts[1], Blob: sigRaw}
	if err := pub.Verify(a.Payload(), sig); err != nil {
		return Verified{}, fmt.Errorf("verify attestation: %w", err)
	}

	return Verified{
		Attestation: a,
		Format:      parts[1],
		Fingerprint: ssh.FingerprintSHA256(pub),
	}, nil
}

// parseMessage splits a tag message into attestation fields and the trailing
// signature line. Unsigned messages yield an empty signature line.
func parseMessage(message []byte) (Attestation, string, error) {
	lines := strings.Split(strings.TrimRight(string(message), "\n"), "\n")
	if len(lines) == 0 || lines[0] != attestHeader {
		return Attestation{}, "", fmt.Errorf("tag message does not open with %s", attestHeader)
	}

	var a Attestation
	sigLine := ""
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, signaturePrefix+":") {
			sigLine = line
			break
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		switch key {
		case "tag":
			a.Tag = value
		case "release":
			a.Release = value
		case "development":
			a.Development = value
		}
	}

	if err := a.validate(); err != nil {
		return Attestation{}, "", fmt.Errorf("incomplete attestation: %w", err)
	}
	return a, sigLine, nil
}
