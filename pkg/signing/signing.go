package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// SignatureVersion prefixes both the signed base string and the
	// signature header value.
	SignatureVersion = "v0"

	// DefaultTolerance is how far a request timestamp may drift from the
	// verifier's clock before the request is treated as a replay.
	DefaultTolerance = 5 * time.Minute
)

var (
	ErrMissingSecret   = errors.New("signing secret is not configured")
	ErrStaleTimestamp  = errors.New("request timestamp outside tolerance")
	ErrBadSignature    = errors.New("signature mismatch")
	ErrMissingHeader   = errors.New("missing signature or timestamp header")
	ErrMalformedHeader = errors.New("malformed timestamp header")
)

// SecretsEqual compares a caller-supplied secret to the configured one in
// constant time. It fails closed: an empty value on either side never
// matches, so an unset config can not disable the check.
func SecretsEqual(supplied, configured string) bool {
	if supplied == "" || configured == "" {
		return false
	}
	return hmac.Equal([]byte(supplied), []byte(configured))
}

// Verifier checks the chat platform's signed-request scheme: an HMAC-SHA256
// of "v0:{timestamp}:{rawBody}" under a shared signing secret, hex-encoded
// with a "v0=" prefix, plus a freshness window on the timestamp.
type Verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance, now: time.Now}
}

// Verify checks signature and timestamp against the exact raw body bytes.
// The body must not have been re-serialized; any whitespace or key-order
// change breaks the MAC.
func (v *Verifier) Verify(signature, timestamp string, rawBody []byte) error {
	if v.secret == "" {
		return ErrMissingSecret
	}
	if signature == "" || timestamp == "" {
		return ErrMissingHeader
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrMalformedHeader
	}

	drift := v.now().Sub(time.Unix(ts, 0))
	if drift > v.tolerance || drift < -v.tolerance {
		return ErrStaleTimestamp
	}

	if !hmac.Equal([]byte(signature), []byte(v.Sign(timestamp, rawBody))) {
		return ErrBadSignature
	}
	return nil
}

// Sign computes the expected signature header value for a timestamp and
// raw body. Exported for tests and for building outbound signed requests.
func (v *Verifier) Sign(timestamp string, rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(v.secret))
	fmt.Fprintf(mac, "%s:%s:", SignatureVersion, timestamp)
	mac.Write(rawBody)
	return SignatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))
}
