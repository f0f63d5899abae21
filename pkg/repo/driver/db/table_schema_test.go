package db

import (
	"regexp"
	"strings"
	"testing"
)

// The table map runs in randomized iteration order; only order-independent
// CREATE TABLE statements may live there. Anything referencing another
// object, like a secondary index, belongs in the index map.
func TestTableSchemasAreOrderIndependent(t *testing.T) {
	for name, schema := range dbTableSchemas {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS") {
			t.Errorf("schema %q is not a CREATE TABLE statement; move it to dbIndexSchemas", name)
		}
	}

	indexTarget := regexp.MustCompile(`CREATE INDEX IF NOT EXISTS \S+ ON %s\.(\S+)`)
	for name, schema := range dbIndexSchemas {
		match := indexTarget.FindStringSubmatch(schema)
		if match == nil {
			t.Errorf("schema %q is not a CREATE INDEX statement", name)
			continue
		}
		if _, ok := dbTableSchemas[match[1]]; !ok {
			t.Errorf("index %q targets table %q which dbTableSchemas does not create", name, match[1])
		}
	}
}
