package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable by
// creation time, which the inventory listing relies on for newest-first
// ordering, and safe for use as DynamoDB attribute values.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
