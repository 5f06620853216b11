// Package config loads and validates the account-mapping configuration.
//
// The configuration is parsed and validated once at startup; the core
// pipeline always receives an already-validated, immutable Config. Schema:
//
//	currency: AUD
//	accounts:
//	  cba: Assets:Bank:CBA
//	  food: Expenses:Food
//	  amex: Liabilities:CreditCard:AMEX
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beanbot-dev/beanbot/ast"
)

// Config maps short account tags to fully-qualified ledger accounts and
// carries the default currency. It is immutable after Load; concurrent
// lookups require no locking.
type Config struct {
	Currency string            `yaml:"currency"`
	Accounts map[string]string `yaml:"accounts"`

	// accounts holds the validated map with lowercased tags.
	accounts map[string]ast.Account
}

// Load reads and validates a configuration file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration from YAML bytes. It fails fast
// on any schema violation so the pipeline never re-validates per call.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !isAlphabetic(c.Currency) {
		return fmt.Errorf("invalid default currency %q, expected an alphabetic code", c.Currency)
	}
	if len(c.Accounts) == 0 {
		return fmt.Errorf("no accounts configured")
	}

	c.accounts = make(map[string]ast.Account, len(c.Accounts))
	for tag, path := range c.Accounts {
		key := strings.ToLower(tag)
		if !isTag(key) {
			return fmt.Errorf("invalid account tag %q, expected an alphanumeric key", tag)
		}
		if _, ok := c.accounts[key]; ok {
			return fmt.Errorf("duplicate account tag %q", key)
		}

		account, err := ast.ParseAccount(path)
		if err != nil {
			return fmt.Errorf("invalid account for tag %q: %w", tag, err)
		}
		c.accounts[key] = account
	}

	return nil
}

// Lookup resolves a tag to its configured account. Matching is
// case-insensitive.
func (c *Config) Lookup(tag string) (ast.Account, bool) {
	account, ok := c.accounts[strings.ToLower(tag)]
	return account, ok
}

// DefaultCurrency returns the configured default currency code.
func (c *Config) DefaultCurrency() string {
	return c.Currency
}

// Tags returns the number of configured account tags.
func (c *Config) Tags() int {
	return len(c.accounts)
}

func isAlphabetic(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func isTag(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return len(s) > 0
}
