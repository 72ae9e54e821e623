package umbral

import (
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

func newKDFHash() hash.Hash {
	hasher, _ := blake2b.New256(nil)
	return hasher
}

// deriveDEMKey expands the raw key seed into an AEAD key with HKDF-BLAKE2b.
// The returned box must be wiped by the caller.
func deriveDEMKey(seed *SecretBox) (*SecretBox, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	err := seed.WithBytes(func(data []byte) error {
		reader := hkdf.New(newKDFHash, data, nil, []byte(dstKeySeedKDF))
		_, err := io.ReadFull(reader, key)
		return err
	})
	if err != nil {
		ZeroizeBytes(key)
		return nil, err
	}
	return NewSecretBox(key), nil
}

// sealWithSeed encrypts the plaintext under the seed-derived key with
// XChaCha20-Poly1305, binding the ciphertext to the capsule bytes as
// associated data. Output layout: nonce || AEAD ciphertext.
func sealWithSeed(seed *SecretBox, capsuleBytes, plaintext []byte) ([]byte, error) {
	key, err := deriveDEMKey(seed)
	if err != nil {
		return nil, err
	}
	defer key.Zeroize()

	var ciphertext []byte
	err = key.WithBytes(func(keyBytes []byte) error {
		aead, err := chacha20poly1305.NewX(keyBytes)
		if err != nil {
			return err
		}

		nonce, err := SecureRandom(aead.NonceSize())
		if err != nil {
			return ErrRandomnessFailed.WithCause(err)
		}

		ciphertext = aead.Seal(nonce, nonce, plaintext, capsuleBytes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ciphertext, nil
}

func openWithSeed(seed *SecretBox, capsuleBytes, ciphertext []byte) ([]byte, error) {
	key, err := deriveDEMKey(seed)
	if err != nil {
		return nil, err
	}
	defer key.Zeroize()

	var plaintext []byte
	err = key.WithBytes(func(keyBytes []byte) error {
		aead, err := chacha20poly1305.NewX(keyBytes)
		if err != nil {
			return err
		}

		if len(ciphertext) < aead.NonceSize() {
			return ErrCiphertextTooShort
		}
		nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]

		opened, err := aead.Open(nil, nonce, sealed, capsuleBytes)
		if err != nil {
			return ErrDecryptionFailed.WithCause(err)
		}
		plaintext = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// Encrypt encapsulates a fresh key for the delegating public key and
// encrypts the plaintext under it. Returns the capsule and the ciphertext;
// the capsule is public and required for every decryption path.
func Encrypt(params *Parameters, delegatingPK *PublicKey, plaintext []byte) (*Capsule, []byte, error) {
	capsule, seed, err := Encapsulate(params, delegatingPK)
	if err != nil {
		return nil, nil, err
	}
	defer seed.Zeroize()

	ciphertext, err := sealWithSeed(seed, capsule.Bytes(), plaintext)
	if err != nil {
		return nil, nil, err
	}
	return capsule, ciphertext, nil
}

// DecryptOriginal decrypts a ciphertext with the delegator's own secret key
func DecryptOriginal(delegatingSK *SecretKey, capsule *Capsule, ciphertext []byte) ([]byte, error) {
	seed := capsule.OpenOriginal(delegatingSK)
	defer seed.Zeroize()

	return openWithSeed(seed, capsule.Bytes(), ciphertext)
}

// DecryptReencrypted decrypts a ciphertext on the receiving side from a
// threshold set of capsule fragments
func DecryptReencrypted(
	receivingSK *SecretKey,
	delegatingPK *PublicKey,
	capsule *Capsule,
	cfrags []*CapsuleFrag,
	ciphertext []byte,
) ([]byte, error) {
	seed, err := capsule.OpenReencrypted(receivingSK, delegatingPK, cfrags)
	if err != nil {
		return nil, err
	}
	defer seed.Zeroize()

	return openWithSeed(seed, capsule.Bytes(), ciphertext)
}
