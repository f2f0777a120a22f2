// Package binance_auth implements Binance API request signing.
// Signed requests carry the API key in the X-MBX-APIKEY header and an
// HMAC-SHA256 signature computed over the encoded parameter string.
package binance_auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// RecvWindowMillis is the validity window Binance grants a signed request,
// stamped into every signed payload as recvWindow.
const RecvWindowMillis = 5000

// Signer holds API credentials and signs parameter sets. The HTTP client
// and the offline payload inspector share this signer.
type Signer struct {
	apiKey string
	secret string
	now    func() time.Time
}

func NewSigner(apiKey, secret string) *Signer {
	return &Signer{apiKey: apiKey, secret: secret, now: time.Now}
}

// WithClock replaces the timestamp source. Tests and the offline inspector
// pin it to get reproducible signatures.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// Enabled reports whether this signer has credentials loaded.
func (s *Signer) Enabled() bool {
	return s != nil && s.apiKey != "" && s.secret != ""
}

// APIKey returns the key to send in the X-MBX-APIKEY header.
func (s *Signer) APIKey() string {
	return s.apiKey
}

// SignParams returns a copy of p extended with timestamp (epoch millis),
// recvWindow, and the signature over everything before it. The signature is
// always the last parameter: Binance excludes it from the signed string and
// expects the rest of the payload byte-identical to what was signed.
func (s *Signer) SignParams(p *Params) *Params {
	signed := p.Clone()
	signed.Set("timestamp", strconv.FormatInt(s.now().UnixMilli(), 10))
	signed.Set("recvWindow", strconv.Itoa(RecvWindowMillis))
	signed.Set("signature", s.Signature(signed.Encode()))
	return signed
}

// Signature computes the lowercase hex HMAC-SHA256 of payload, keyed by the
// API secret.
func (s *Signer) Signature(payload string) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
