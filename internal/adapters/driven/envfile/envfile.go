// Package envfile loads deployment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFile is the file read from the working directory at startup.
const DefaultFile = ".env"

// Load reads a .env file and sets any variable not already present with a
// non-empty value. A missing file is not an error. Returns the keys it set.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var set []string
	for _, kv := range vars {
		if os.Getenv(kv.Key) != "" {
			continue
		}
		if err := os.Setenv(kv.Key, kv.Value); err != nil {
			return set, fmt.Errorf("setting %s: %w", kv.Key, err)
		}
		set = append(set, kv.Key)
	}
	return set, nil
}

// Var is one KEY=VALUE assignment.
type Var struct {
	Key   string
	Value string
}

// Parse reads assignments in file order, skipping blank lines, comments and
// malformed lines.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		vars = append(vars, Var{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseEnvLine extracts KEY=VALUE from a line.
// Matching single or double quotes around the value are stripped; an
// unquoted value ends at " #".
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return key, value[1 : len(value)-1], true
		}
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
