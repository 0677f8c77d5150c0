//go:build !rp2040 && !rp2350

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the operator-side connection settings, loadable from a YAML
// file so a bench setup survives restarts. Flags override the file.
type Profile struct {
	Serial struct {
		Port string `yaml:"port"`
		Baud int    `yaml:"baud"`
	} `yaml:"serial"`
}

func defaultProfile() *Profile {
	p := &Profile{}
	p.Serial.Baud = 115200
	return p
}

// loadProfile reads the profile file, falling back to defaults when the file
// does not exist.
func loadProfile(path string) (*Profile, error) {
	p := defaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}
