package worker

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInputNotFound indicates that the identifier file does not exist.
var ErrInputNotFound = errors.New("input file not found")

const commentPrefix = "#"

// LoadIdentifiers reads one identifier per line. Blank lines and lines
// starting with "#" are skipped; surrounding whitespace is trimmed.
// A missing file returns an empty list together with ErrInputNotFound.
func LoadIdentifiers(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	identifiers := []string{}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		identifiers = append(identifiers, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return identifiers, nil
}
