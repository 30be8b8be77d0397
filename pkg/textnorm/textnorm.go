// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied display text.
//
// # Usage
//
// Vietnamese strings may arrive precomposed ("ế") or decomposed
// ("e" + U+0302 + U+0301) depending on the client keyboard. Both render the
// same but compare and count differently, so display names are stored in
// NFC and their length limits are measured in runes after [NFC].
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NFC returns s in Unicode Normalization Form C with surrounding whitespace trimmed.
func NFC(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NFCPtr applies [NFC] to an optional value. nil stays nil.
func NFCPtr(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := NFC(*s)
	return &normalized
}
