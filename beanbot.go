// Package beanbot converts one-line transaction shorthand into Beancount
// ledger entries.
//
// The pipeline is a linear, stateless transform: the raw line is tokenized,
// assembled into a transaction (resolving account tags through the
// configuration), and rendered as Beancount text. Each call either succeeds
// or fails with one of the typed errors from the parser package. Calls are
// safe to make concurrently; the Config is immutable and shared by
// reference.
package beanbot

import (
	"github.com/beanbot-dev/beanbot/ast"
	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/formatter"
	"github.com/beanbot-dev/beanbot/parser"
)

// Parse builds a structured transaction from a shorthand line.
func Parse(raw string, cfg *config.Config) (*ast.Transaction, error) {
	return parser.New(cfg).Parse(raw)
}

// ParseAndFormat converts a shorthand line into a formatted Beancount entry.
// This is the single entry point used by the CLI, the webhook handler and
// any other caller; all of them get identical behavior.
func ParseAndFormat(raw string, cfg *config.Config) (string, error) {
	tx, err := Parse(raw, cfg)
	if err != nil {
		return "", err
	}
	return formatter.New().FormatString(tx), nil
}
