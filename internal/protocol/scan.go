package protocol

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
)

// The helpers below walk documents that have already passed json.Valid, so
// string and escape structure can be trusted.

// stringEnd returns the index of the quote closing the string opened at start.
func stringEnd(doc []byte, start int) int {
	for i := start + 1; i < len(doc); i++ {
		switch doc[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(doc) - 1
}

func hex4(b []byte) rune {
	n, _ := strconv.ParseUint(string(b), 16, 32)
	return rune(n)
}

// checkSurrogates rejects \u escapes that leave a UTF-16 surrogate unpaired.
func checkSurrogates(doc []byte) error {
	for i := 0; i < len(doc); i++ {
		if doc[i] != '"' {
			continue
		}
		end := stringEnd(doc, i)
		for j := i + 1; j < end; j++ {
			if doc[j] != '\\' {
				continue
			}
			j++
			if doc[j] != 'u' {
				continue
			}
			r := hex4(doc[j+1 : j+5])
			j += 4
			switch {
			case r >= 0xD800 && r <= 0xDBFF:
				if j+6 < end && doc[j+1] == '\\' && doc[j+2] == 'u' {
					if lo := hex4(doc[j+3 : j+7]); lo >= 0xDC00 && lo <= 0xDFFF {
						j += 6
						continue
					}
				}
				return fmt.Errorf("lone leading surrogate \\u%04x", r)
			case r >= 0xDC00 && r <= 0xDFFF:
				return fmt.Errorf("lone trailing surrogate \\u%04x", r)
			}
		}
		i = end
	}
	return nil
}

// scanKeys reports which watched member names appear at the top level of
// obj, and rejects an object that repeats one. Names are compared after
// unescaping.
func scanKeys(obj []byte, watched ...string) (map[string]bool, error) {
	seen := make(map[string]bool, len(watched))
	depth := 0
	expectKey := false

	for i := 0; i < len(obj); i++ {
		switch c := obj[i]; c {
		case '{', '[':
			depth++
			expectKey = depth == 1 && c == '{'
		case '}', ']':
			depth--
		case ',':
			expectKey = depth == 1
		case '"':
			end := stringEnd(obj, i)
			if expectKey {
				var name string
				if err := json.Unmarshal(obj[i:end+1], &name); err != nil {
					return nil, err
				}
				if slices.Contains(watched, name) {
					if seen[name] {
						return nil, fmt.Errorf("duplicate field %q", name)
					}
					seen[name] = true
				}
				expectKey = false
			}
			i = end
		}
	}
	return seen, nil
}
