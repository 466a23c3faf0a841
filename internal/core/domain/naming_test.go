package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accented name with symbol", "João Silva#1", "João_Silva_1"},
		{"plain", "Maria", "Maria"},
		{"trailing spaces trimmed", "Ana Souza  ", "Ana_Souza"},
		{"leading space kept as underscore", " Ana", "_Ana"},
		{"underscore kept", "a_b", "a_b"},
		{"path separators", "../etc/passwd", "___etc_passwd"},
		{"tab replaced", "a\tb", "a_b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_OnlySafeCharacters(t *testing.T) {
	safe := regexp.MustCompile(`^[\p{L}\p{N}_]*$`)
	for _, input := range []string{"João Silva#1", "x/y\\z", "a b c!", "  ", "<>:\"|?*"} {
		got := SanitizeFilename(input)
		assert.Regexp(t, safe, got, "input %q", input)
	}
}

func TestOutputFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	assert.Equal(t, "CONTRATO_João_Silva_1_20240309_140507.docx", OutputFilename("João Silva#1", at))
	assert.Equal(t, "CONTRATO_locatario_20240309_140507.docx", OutputFilename("   ", at))

	pattern := regexp.MustCompile(`^CONTRATO_.+_\d{8}_\d{6}\.docx$`)
	assert.Regexp(t, pattern, OutputFilename("Maria", at))
}

func TestNumberedFilename(t *testing.T) {
	assert.Equal(t, "CONTRATO_Maria_20240309_140507_2.docx", NumberedFilename("CONTRATO_Maria_20240309_140507.docx", 2))
}
