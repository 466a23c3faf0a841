package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Output file naming.
const (
	OutputPrefix    = "CONTRATO_"
	OutputExt       = ".docx"
	TimestampLayout = "20060102_150405"

	// DocxMIMEType identifies filled contracts in delivery payloads.
	DocxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// fallbackStem names files whose locatee sanitizes to nothing.
	fallbackStem = "locatario"
)

// SanitizeFilename makes name safe for use in a file name. Letters, digits,
// spaces and underscores pass through and every other character becomes an
// underscore. Trailing whitespace is trimmed and spaces become underscores.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	s := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	return strings.ReplaceAll(s, " ", "_")
}

// OutputFilename returns "CONTRATO_<sanitized name>_<YYYYMMDD_HHMMSS>.docx".
func OutputFilename(name string, at time.Time) string {
	stem := SanitizeFilename(name)
	if stem == "" {
		stem = fallbackStem
	}
	return OutputPrefix + stem + "_" + at.Format(TimestampLayout) + OutputExt
}

// NumberedFilename returns filename with "_<n>" inserted before the extension.
// It is used when an output name is already taken.
func NumberedFilename(filename string, n int) string {
	base := strings.TrimSuffix(filename, OutputExt)
	return fmt.Sprintf("%s_%d%s", base, n, OutputExt)
}
