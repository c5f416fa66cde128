// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package logging

import (
	"fmt"
	"strings"
)

// maxLoggedValue bounds how much of an untrusted value is written to a log.
const maxLoggedValue = 256

// SanitizeValue escapes control characters (0x00-0x1F, 0x7F) as \xNN and
// truncates s, so request input cannot forge log lines.
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(min(len(s), maxLoggedValue))
	n := 0
	for _, r := range s {
		if n >= maxLoggedValue {
			b.WriteString("...")
			break
		}
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
		n++
	}
	return b.String()
}
