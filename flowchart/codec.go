package flowchart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnrecognized is returned when no registered entity type claims a record.
	ErrUnrecognized = errors.New("unrecognized record")
	// ErrCorrupt is returned when a record names a known type but its fields
	// cannot be decoded.
	ErrCorrupt = errors.New("corrupt record")

	errWrongType = errors.New("record type mismatch")
)

var (
	fieldEscaper = strings.NewReplacer(
		`\`, `\backslash`,
		",", `\comma`,
		":", `\colon`,
		";", `\semicolon`,
		"\n", `\newline`,
	)
	fieldUnescaper = strings.NewReplacer(
		`\backslash`, `\`,
		`\comma`, ",",
		`\colon`, ":",
		`\semicolon`, ";",
		`\newline`, "\n",
	)
)

func escapeField(s string) string   { return fieldEscaper.Replace(s) }
func unescapeField(s string) string { return fieldUnescaper.Replace(s) }

// formatRecord builds "type:f1,f2,...;". Fields must already be escaped.
func formatRecord(typ string, fields ...string) string {
	return typ + ":" + strings.Join(fields, ",") + ";"
}

// parseRecord splits a record of the given type into its raw fields. It
// returns errWrongType when the record belongs to another type.
func parseRecord(s, typ string, want int) ([]string, error) {
	s = strings.TrimSpace(s)
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return nil, errWrongType
	}
	if s[:colon] != typ {
		return nil, errWrongType
	}
	body := s[colon+1:]
	if !strings.HasSuffix(body, ";") {
		return nil, fmt.Errorf("%w: %s: missing terminator", ErrCorrupt, typ)
	}
	fields := strings.Split(strings.TrimSuffix(body, ";"), ",")
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %s: want %d fields, got %d", ErrCorrupt, typ, want, len(fields))
	}
	return fields, nil
}

// recordType returns the type tag of a record without decoding it.
func recordType(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return ""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloats(typ string, fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, typ, err)
		}
		out[i] = v
	}
	return out, nil
}
