// Package logcipher implements the event-log obfuscation and credential
// hashing contracts. The stream cipher is a repeating-key XOR keyed by
// SHA-256 of the password. The key is derived from the password alone and
// reused for every message, which is a known weakness of this construction
// (key reuse enables known-plaintext recovery); the format is kept for
// compatibility with existing ciphertext rather than fixed here.
package logcipher

import (
	"crypto/sha256"
	"encoding/base64"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel replaces any log entry that cannot be decrypted. Decryption never
// fails with an error.
const Sentinel = "[unable to decrypt log entry]"

// DeriveKey derives the fixed-length XOR key from the UTF-8 password bytes.
func DeriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// Encrypt XORs the plaintext with the repeating password-derived key and
// base64-encodes the result. The empty string encrypts to the empty string
// without touching the cipher.
func Encrypt(plaintext, password string) string {
	if plaintext == "" {
		return ""
	}
	key := DeriveKey(password)
	raw := []byte(plaintext)
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = b ^ key[i%len(key)]
	}
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt. Bad base64, a wrong key producing invalid UTF-8,
// or any other malformed input yields the sentinel string instead of an
// error. The empty string round-trips to the empty string.
func Decrypt(ciphertext, password string) string {
	if ciphertext == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return Sentinel
	}
	key := DeriveKey(password)
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = b ^ key[i%len(key)]
	}
	if !utf8.Valid(out) {
		return Sentinel
	}
	return string(out)
}

// HashPassword produces the salted one-way verifier stored for a user.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether candidate matches the stored verifier. A
// malformed or foreign-format hash verifies as false, never as an error.
func VerifyPassword(storedHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
