package lfs2

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import "unicode/utf8"

// decodeName decodes a fixed-width name field as UTF-8, stopping at the
// first NUL. Invalid byte sequences are replaced with the UTF-8
// replacement character rather than rejected outright — this is an
// explorer over potentially damaged media, not a validator.
func decodeName(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}

	data := raw[:end]
	if utf8.Valid(data) {
		return string(data)
	}

	buf := make([]rune, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		buf = append(buf, r)
		data = data[size:]
	}
	return string(buf)
}
