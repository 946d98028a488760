// Package encryption seals small secrets, such as the persisted session
// token, with an AEAD cipher keyed from a passphrase.
//
//	enc, err := encryption.New(passphrase, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
//	sealed, err := enc.Encrypt(token)
//	token, err := enc.Decrypt(sealed)
//
// Output is base64 of nonce||ciphertext. Keys are derived with HKDF-SHA256,
// so the same passphrase always opens what it sealed.
package encryption
