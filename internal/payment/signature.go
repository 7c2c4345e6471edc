package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the webhook signature on incoming requests.
const SignatureHeader = "Stripe-Signature"

// Tolerance is the maximum accepted age of a signed webhook payload.
// Older timestamps are treated as replays.
const Tolerance = 5 * time.Minute

var (
	ErrMalformedHeader  = errors.New("malformed signature header")
	ErrInvalidSignature = errors.New("signature verification failed")
	ErrTimestampExpired = errors.New("signature timestamp outside tolerance")
	ErrMalformedEvent   = errors.New("malformed event payload")
)

// ComputeSignature signs a payload the way Stripe does: HMAC-SHA256
// over "<timestamp>.<payload>", hex encoded.
func ComputeSignature(t time.Time, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", t.Unix())
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload builds a complete signature header value for a payload,
// used when constructing test deliveries.
func SignPayload(t time.Time, payload []byte, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), ComputeSignature(t, payload, secret))
}

// VerifyAndParseEvent checks the signature header against the raw body
// and only then parses the event. Verification runs on the exact bytes
// received; parsing first would break the signature.
func VerifyAndParseEvent(body []byte, header string, secret string, now time.Time) (Event, error) {
	ts, sigs, err := parseSignatureHeader(header)
	if err != nil {
		return Event{}, err
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > Tolerance || age < -Tolerance {
		return Event{}, ErrTimestampExpired
	}

	expected := ComputeSignature(time.Unix(ts, 0), body, secret)
	verified := false
	for _, sig := range sigs {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			verified = true
			break
		}
	}
	if !verified {
		return Event{}, ErrInvalidSignature
	}

	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil || ev.Type == "" {
		return Event{}, ErrMalformedEvent
	}
	return ev, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=...]" into the
// timestamp and candidate signatures. Unknown schemes are ignored.
func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		ts    int64
		tsSet bool
		sigs  []string
	)
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, ErrMalformedHeader
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, ErrMalformedHeader
			}
			ts = n
			tsSet = true
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if !tsSet || len(sigs) == 0 {
		return 0, nil, ErrMalformedHeader
	}
	return ts, sigs, nil
}
