// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jongio/weburl/urlutil"
)

// Value is a single query value. Null marks a key given without "=", which
// is different from a key with an empty value ("a=").
type Value struct {
	Str  string
	Null bool
}

// NullValue is the value of a key given without "=".
var NullValue = Value{Null: true}

// StringValue returns a non-null Value.
func StringValue(s string) Value {
	return Value{Str: s}
}

// String returns Str, or "" for a null value.
func (v Value) String() string {
	return v.Str
}

// MarshalJSON encodes a null value as JSON null and any other as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Null {
		return []byte("null"), nil
	}
	return json.Marshal(v.Str)
}

func compareValues(a, b Value) int {
	if a.Null != b.Null {
		if a.Null {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Str, b.Str)
}

// Params maps query keys to values in first-insertion order. A key holding
// one value is a scalar; more values make it a list. The zero value is an
// empty Params ready to use. Params is not safe for concurrent mutation.
type Params struct {
	m *orderedmap.OrderedMap[string, []Value]
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{}
}

func (p *Params) entries() *orderedmap.OrderedMap[string, []Value] {
	if p.m == nil {
		p.m = orderedmap.New[string, []Value]()
	}
	return p.m
}

// Len returns the number of keys.
func (p *Params) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the keys in first-insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, p.Len())
	p.Range(func(key string, _ []Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Has reports whether key is present, including with a null value.
func (p *Params) Has(key string) bool {
	if p == nil || p.m == nil {
		return false
	}
	_, ok := p.m.Get(key)
	return ok
}

// Get returns the first value of key.
func (p *Params) Get(key string) (Value, bool) {
	vals := p.Values(key)
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[0], true
}

// Values returns a copy of all values of key in appearance order.
func (p *Params) Values(key string) []Value {
	if p == nil || p.m == nil {
		return nil
	}
	vals, _ := p.m.Get(key)
	return slices.Clone(vals)
}

// IsList reports whether key holds more than one value.
func (p *Params) IsList(key string) bool {
	return len(p.Values(key)) > 1
}

// Set replaces key with a single string value.
func (p *Params) Set(key, value string) {
	p.SetValues(key, StringValue(value))
}

// SetNull replaces key with a single null value.
func (p *Params) SetNull(key string) {
	p.SetValues(key, NullValue)
}

// SetList replaces key with the given string values.
func (p *Params) SetList(key string, values ...string) {
	vals := make([]Value, len(values))
	for i, s := range values {
		vals[i] = StringValue(s)
	}
	p.SetValues(key, vals...)
}

// SetValues replaces key with values. A key already present keeps its
// position.
func (p *Params) SetValues(key string, values ...Value) {
	p.entries().Set(key, slices.Clone(values))
}

// Add appends v to key, turning a scalar into a list on the second value.
func (p *Params) Add(key string, v Value) {
	m := p.entries()
	vals, _ := m.Get(key)
	m.Set(key, append(vals, v))
}

// Del removes key.
func (p *Params) Del(key string) {
	if p == nil || p.m == nil {
		return
	}
	p.m.Delete(key)
}

// Range calls fn for each key in insertion order until fn returns false.
// The values slice must not be modified.
func (p *Params) Range(fn func(key string, values []Value) bool) {
	if p == nil || p.m == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy; list values are not shared.
func (p *Params) Clone() *Params {
	out := NewParams()
	p.Range(func(key string, values []Value) bool {
		out.SetValues(key, values...)
		return true
	})
	return out
}

// Map converts p into plain Go values: string, nil for null, or []any for
// lists. Key order is lost.
func (p *Params) Map() map[string]any {
	out := make(map[string]any, p.Len())
	p.Range(func(key string, values []Value) bool {
		out[key] = collapse(values)
		return true
	})
	return out
}

// MarshalJSON encodes p as a JSON object in insertion order, with scalars as
// strings or null and lists as arrays.
func (p *Params) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any](p.Len())
	p.Range(func(key string, values []Value) bool {
		if len(values) == 1 {
			om.Set(key, values[0])
		} else {
			om.Set(key, values)
		}
		return true
	})
	return om.MarshalJSON()
}

// String returns Stringify(p).
func (p *Params) String() string {
	return Stringify(p)
}

func collapse(values []Value) any {
	if len(values) == 1 {
		if values[0].Null {
			return nil
		}
		return values[0].Str
	}
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = collapse([]Value{v})
	}
	return list
}

// ParseQuery parses a search string such as "?a=1&b&a=2".
//
// One leading "?", "#" or "&" is stripped, pieces are split on "&", "+"
// becomes a space, and each piece is split on its first "=". A piece without
// "=" yields a null value. Empty pieces are skipped, so "a=1&&b=2&" has
// only a and b and no "" key. Tokens that fail to percent-decode are kept as
// they appear.
func ParseQuery(search string) *Params {
	p, _ := parseQuery(search, false)
	return p
}

// ParseQueryStrict is ParseQuery but fails with an error wrapping
// urlutil.ErrInvalidEscape on the first token that does not decode.
func ParseQueryStrict(search string) (*Params, error) {
	return parseQuery(search, true)
}

func parseQuery(search string, strict bool) (*Params, error) {
	p := NewParams()

	str := strings.TrimSpace(search)
	if str != "" && strings.ContainsRune("?#&", rune(str[0])) {
		str = str[1:]
	}
	if str == "" {
		return p, nil
	}

	for _, piece := range strings.Split(str, "&") {
		if piece == "" {
			continue
		}
		rawKey, rawVal, hasVal := strings.Cut(strings.ReplaceAll(piece, "+", " "), "=")

		key, err := decodeToken(rawKey, strict)
		if err != nil {
			return nil, err
		}
		if !hasVal {
			p.Add(key, NullValue)
			continue
		}
		val, err := decodeToken(rawVal, strict)
		if err != nil {
			return nil, err
		}
		p.Add(key, StringValue(val))
	}
	return p, nil
}

func decodeToken(token string, strict bool) (string, error) {
	out, err := urlutil.DecodeComponent(token)
	if err == nil {
		return out, nil
	}
	if strict {
		return "", fmt.Errorf("query token %q: %w", token, err)
	}
	recordDecodeFallback()
	log.WithOperation("params").Debug("keeping undecodable query token", "token", token, "error", err)
	return token, nil
}

// Stringify serializes p canonically: keys sorted, list values sorted (null
// first), one key=value pair per value, everything encoded with
// urlutil.EncodeComponent and joined by "&". A null value is written as the
// bare key.
func Stringify(p *Params) string {
	keys := p.Keys()
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		vals := p.Values(key)
		slices.SortStableFunc(vals, compareValues)

		encodedKey := urlutil.EncodeComponent(key)
		for _, v := range vals {
			if v.Null {
				// "a", not "a=null": parsing it back yields null again.
				pairs = append(pairs, encodedKey)
				continue
			}
			pairs = append(pairs, encodedKey+"="+urlutil.EncodeComponent(v.Str))
		}
	}
	return strings.Join(pairs, "&")
}
