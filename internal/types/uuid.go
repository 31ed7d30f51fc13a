package types

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_PLAN         = "plan"
	UUID_PREFIX_PRICE        = "price"
	UUID_PREFIX_PHASE        = "phase"
	UUID_PREFIX_CREDIT_GRANT = "cg"
	UUID_PREFIX_COUPON       = "coupon"
	UUID_PREFIX_TAX_RATE     = "taxrate"
	UUID_PREFIX_TASK         = "task"
	UUID_PREFIX_REQUEST      = "req"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the resource type,
// e.g. "price_01HV...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
