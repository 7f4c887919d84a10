// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package config

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vespa-engine/jsonwriter/internal/ioutil"
	"gopkg.in/yaml.v3"
)

// Config holds the jw options saved with "jw config set", keyed by flag name. It is safe for concurrent use and
// stored as a flat YAML mapping.
type Config struct {
	values map[string]string
	mu     sync.RWMutex
}

// New creates a new config.
func New() *Config { return &Config{values: make(map[string]string)} }

// Keys returns the names of the options set, sorted.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []string
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value associated with key.
func (c *Config) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Set associates key with value.
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Del removes the value associated with key.
func (c *Config) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// Write writes config in YAML format to writer w.
func (c *Config) Write(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := yaml.NewEncoder(w).Encode(c.values); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// WriteFile replaces filename with the config. The file is written atomically, so a failed write leaves the previous
// options in place.
func (c *Config) WriteFile(filename string) error {
	f, err := ioutil.CreateAtomic(filename)
	if err != nil {
		return err
	}
	if err := c.Write(f); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

// Read reads options in YAML format from r. Options with empty values are treated as unset.
func Read(r io.Reader) (*Config, error) {
	config := New()
	if err := yaml.NewDecoder(r).Decode(config.values); err != nil && err != io.EOF {
		return nil, err
	}
	for k, v := range config.values {
		if v == "" {
			delete(config.values, k)
		}
	}
	return config, nil
}
