package apt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/openpgp" //nolint:staticcheck // only keyring parsing is used
)

// ErrFingerprintMismatch is returned when no key in a keyring has the expected fingerprint.
var ErrFingerprintMismatch = errors.New("signing key fingerprint mismatch")

// NormalizeFingerprint upper-cases a fingerprint and strips spaces and colons.
func NormalizeFingerprint(fp string) string {
	r := strings.NewReplacer(" ", "", ":", "", "\t", "")
	return strings.ToUpper(r.Replace(fp))
}

// KeyringFingerprints returns the primary key fingerprints in an OpenPGP
// keyring, binary (dearmored) or ASCII-armored.
func KeyringFingerprints(data []byte) ([]string, error) {
	var (
		entities openpgp.EntityList
		err      error
	)
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN PGP")) {
		entities, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	fps := make([]string, 0, len(entities))
	for _, e := range entities {
		fps = append(fps, fmt.Sprintf("%X", e.PrimaryKey.Fingerprint[:]))
	}
	return fps, nil
}

// VerifyFingerprint checks that the keyring holds a key with fingerprint want.
func VerifyFingerprint(data []byte, want string) error {
	fps, err := KeyringFingerprints(data)
	if err != nil {
		return err
	}

	want = NormalizeFingerprint(want)
	for _, fp := range fps {
		if fp == want {
			return nil
		}
	}
	return fmt.Errorf("%w: want %s, keyring has %s", ErrFingerprintMismatch, want, strings.Join(fps, ", "))
}
