// Package session persists the storefront session token.
//
// The token lives under a fixed key ("token") in durable client storage.
// FileStore writes it through a storage.Storage, optionally sealed with an
// encryption.Encryptor; MemoryStore keeps it in process for tests and
// one-shot runs. Inspect decodes the token's claims without verifying the
// signature, which only the backend can do.
package session
