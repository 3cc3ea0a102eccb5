package models

// Credentials holds the Kraken API key pair. The public key is sent verbatim in
// the API-Key header; the private key is a base64-encoded secret used only for
// signing and never transmitted. Immutable once loaded.
type Credentials struct {
	PublicKey  string
	PrivateKey string
}
