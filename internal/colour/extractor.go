// Package colour extracts hex colour codes from text and derives theme signatures from them.
package colour

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultSignatureSize is the number of sorted colours that make up a signature.
const DefaultSignatureSize = 5

// SignatureSeparator joins colours within a signature.
const SignatureSeparator = ","

// hexPattern matches a '#' followed by six or three hex digits. Six digits are
// tried first, so "#abcd" captures "abc".
var hexPattern = regexp.MustCompile(`#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})`)

// ExtractHex returns the unique hex colours found in content, without the
// leading '#', sorted in ascending byte order. Case is preserved as found,
// so "A1B2C3" and "a1b2c3" are distinct entries.
func ExtractHex(content string) []string {
	matches := hexPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(matches))
	colours := make([]string, 0, len(matches))
	for _, match := range matches {
		hex := match[1]
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		colours = append(colours, hex)
	}

	slices.Sort(colours)
	return colours
}

// Signature joins at most size leading entries of a sorted colour set.
// A size of zero or less selects DefaultSignatureSize. An empty set yields "".
func Signature(colours []string, size int) string {
	if size <= 0 {
		size = DefaultSignatureSize
	}
	if len(colours) > size {
		colours = colours[:size]
	}
	return strings.Join(colours, SignatureSeparator)
}

// SignatureOf is ExtractHex followed by Signature.
func SignatureOf(content string, size int) string {
	return Signature(ExtractHex(content), size)
}

// SplitSignature returns the colours of a signature. The empty signature has no colours.
func SplitSignature(signature string) []string {
	if signature == "" {
		return nil
	}
	return strings.Split(signature, SignatureSeparator)
}
