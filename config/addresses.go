package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadAddresses reads one wallet address per line, skipping blank lines.
func LoadAddresses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening address file: %w", err)
	}
	defer f.Close()

	var addresses []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading address file: %w", err)
	}

	if len(addresses) == 0 {
		return nil, errors.New("address file contains no addresses")
	}
	return addresses, nil
}
