package pain013

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes.
const (
	MessageIDPrefix     = "MSG-"
	PaymentInfoIDPrefix = "PMTINF-"
	EndToEndIDPrefix    = "E2E-"
)

// tokenLength is the number of random characters after each prefix.
const tokenLength = 8

// IDSource returns a fresh random token for every call. Tokens must be
// independent across calls; the generator adds the prefix.
type IDSource func() string

// Clock returns the creation time of a message.
type Clock func() time.Time

// UUIDTokens is the default IDSource: the first eight hex characters of a
// random UUID, upper-cased.
func UUIDTokens() string {
	return strings.ToUpper(uuid.NewString()[:tokenLength])
}
