package lumen

import (
	"fmt"
	"strings"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/config"
)

// Database is a handle on one keyspace of a Data API deployment.
type Database struct {
	cfg      *config.Config
	keyspace string
}

// Keyspace returns the keyspace this handle addresses.
func (d *Database) Keyspace() string {
	return d.keyspace
}

// Collection returns a handle on a collection of this keyspace. The
// collection is not checked for existence; a missing collection
// surfaces as an API error on first use.
func (d *Database) Collection(name string) *Collection {
	return &Collection{
		name:      name,
		keyspace:  d.keyspace,
		commander: d.newCommander(name),
		timeouts:  d.timeouts(),
	}
}

// Table returns a handle on a table of this keyspace.
func (d *Database) Table(name string) *Table {
	return &Table{
		name:      name,
		keyspace:  d.keyspace,
		commander: d.newCommander(name),
		timeouts:  d.timeouts(),
	}
}

func (d *Database) newCommander(name string) api.Commander {
	url := fmt.Sprintf("%s/v1/%s/%s",
		strings.TrimRight(d.cfg.Endpoint, "/"), d.keyspace, name)
	return api.NewHTTPCommanderWithBreaker(url, d.cfg.Token, d.cfg.Breaker)
}

func (d *Database) timeouts() config.Timeouts {
	if d.cfg.Timeouts != nil {
		return *d.cfg.Timeouts
	}
	return config.Timeouts{}
}
