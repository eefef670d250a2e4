// Package suppression loads the do-not-contact list used to filter
// recipients before dispatch.
package suppression

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// Load reads a newline-separated list of addresses and returns them as a
// normalized set. A missing file is treated as an empty list so a fresh
// install dispatches without one.
func Load(path string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if path == "" {
		return set, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening do-not-contact list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[domain.NormalizeEmail(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading do-not-contact list: %w", err)
	}

	return set, nil
}
