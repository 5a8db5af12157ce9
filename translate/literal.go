// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"fmt"
	"strings"
)

// namedEscapes maps bytes with a two-character host-language escape to
// that escape's text, checked before the general \xHH rule so that,
// e.g., a newline is encoded as \n rather than \x0a.
var namedEscapes = map[byte]string{
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Encode returns s as the body of a host-language string literal: the
// text to place between double quotes so a host compiler parsing
// `"`+Encode(s)+`"` reconstructs s byte for byte.
//
// Bytes outside the host's basic source character set (control
// characters, '$', '@', '`', and anything above 0x7E) are hex-escaped;
// everything else passes through unchanged except for the handful of
// bytes with a dedicated two-character escape.
func Encode(s []byte) string {
	var b strings.Builder
	prevHex := false
	for _, c := range s {
		switch {
		case c == '"':
			b.WriteString(`\"`)
			prevHex = false
		case c == '\\':
			b.WriteString(`\\`)
			prevHex = false
		default:
			if esc, ok := namedEscapes[c]; ok {
				b.WriteString(esc)
				prevHex = false
				continue
			}
			if c < 0x20 || c == '$' || c == '@' || c == '`' || c > 0x7E {
				fmt.Fprintf(&b, `\x%02x`, c)
				prevHex = true
				continue
			}
			if prevHex && isHexDigit(c) {
				// The preceding \xHH escape would otherwise greedily
				// consume this byte as one of its own hex digits.
				b.WriteString(`""`)
			}
			b.WriteByte(c)
			prevHex = false
		}
	}
	return b.String()
}
