package binance_auth

import (
	"net/url"
	"strings"
)

// Params is an insertion-ordered set of request parameters. Binance verifies
// the signature against the exact byte sequence it receives, so the encoded
// form must be stable and order-preserving; url.Values re-sorts keys on
// Encode and cannot be used here.
type Params struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

func NewParams() *Params {
	return &Params{}
}

// Set stores value under key, replacing an existing entry in place so the
// original position is kept. New keys append at the end.
func (p *Params) Set(key, value string) {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs[i].value = value
			return
		}
	}
	p.pairs = append(p.pairs, pair{key: key, value: value})
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	for _, kv := range p.pairs {
		if kv.key == key {
			return kv.value, true
		}
	}
	return "", false
}

// Len returns the number of stored parameters.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	cp := &Params{pairs: make([]pair, len(p.pairs))}
	copy(cp.pairs, p.pairs)
	return cp
}

// Encode renders key=value pairs joined by '&' in insertion order, with
// keys and values percent-encoded.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// Map returns the parameters as a plain map, for structured logging.
// Insertion order is not preserved in the copy.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.pairs))
	for _, kv := range p.pairs {
		m[kv.key] = kv.value
	}
	return m
}
