package lumen

import (
	"errors"

	"github.com/lumendb/lumen-go/config"
	"github.com/lumendb/lumen-go/ecode"
)

// DefaultKeyspace is used when neither the configuration nor the
// Database call names a keyspace.
const DefaultKeyspace = "default_keyspace"

// Client is the entry point of the SDK. It validates its configuration
// once and hands out database handles; it performs no network activity
// of its own.
type Client struct {
	cfg *config.Config
}

// NewClient creates a client from a validated configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New(ecode.FieldIsRequired("config"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Config returns the configuration this client was built from.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Database returns a handle on one keyspace. Called without arguments
// it uses the configured keyspace, falling back to DefaultKeyspace.
func (c *Client) Database(keyspace ...string) *Database {
	ks := c.cfg.Keyspace
	if len(keyspace) > 0 && keyspace[0] != "" {
		ks = keyspace[0]
	}
	if ks == "" {
		ks = DefaultKeyspace
	}
	return &Database{cfg: c.cfg, keyspace: ks}
}
