package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

const (
	realm         = "Secure Area"
	challenge     = `Basic realm="` + realm + `"`
	challengeBody = "Basic Auth required"
)

var (
	ErrMissingHeader      = errors.New("authorization header missing")
	ErrMalformedToken     = errors.New("malformed basic auth token")
	ErrCredentialMismatch = errors.New("credentials do not match")
	ErrUntrustedContext   = errors.New("untrusted execution context")
)

// Outcome is the result of evaluating a request at the gate.
type Outcome int

const (
	Deny Outcome = iota
	Allow
)

func (o Outcome) String() string {
	if o == Allow {
		return "allow"
	}
	return "deny"
}

// Credentials are decoded from a single Authorization header and never stored.
type Credentials struct {
	Username string
	Password string
}

// Expected holds the only username/password pair the gate accepts.
type Expected struct {
	User     string
	Password string
}

// Gate decides whether a request may continue downstream. It holds no
// mutable state and is safe for concurrent use.
type Gate struct {
	expected Expected
	trusted  bool
}

// NewGate returns a gate for the given credentials. When trusted is false
// every request is denied, whatever credentials it carries.
func NewGate(expected Expected, trusted bool) *Gate {
	return &Gate{expected: expected, trusted: trusted}
}

// Evaluate returns Allow only for trusted gates whose request carries the
// expected credentials.
func (g *Gate) Evaluate(r *http.Request) Outcome {
	if g.Check(r.Header) != nil {
		return Deny
	}
	return Allow
}

// Check returns nil when the headers carry the expected credentials, and
// otherwise the reason for the denial. The reason is for callers and tests
// only; clients always get the same challenge.
func (g *Gate) Check(h http.Header) error {
	creds, err := ParseAuthorization(h.Get("Authorization"))
	if err != nil {
		return err
	}
	if !g.trusted {
		return ErrUntrustedContext
	}
	// Unset secrets never match, not even an empty user:password pair.
	if g.expected.User == "" || g.expected.Password == "" {
		return ErrCredentialMismatch
	}
	userOK := constantTimeCompare(creds.Username, g.expected.User)
	passOK := constantTimeCompare(creds.Password, g.expected.Password)
	if !userOK || !passOK {
		return ErrCredentialMismatch
	}
	return nil
}

// ParseAuthorization decodes "<scheme> <base64(user:password)>". The scheme
// name is not checked. The password is everything after the first colon, and
// a token without a colon yields an empty password.
func ParseAuthorization(value string) (Credentials, error) {
	if value == "" {
		return Credentials{}, ErrMissingHeader
	}
	parts := strings.Split(value, " ")
	if len(parts) < 2 || parts[1] == "" {
		return Credentials{}, ErrMalformedToken
	}
	decoded, err := decodeToken(parts[1])
	if err != nil {
		return Credentials{}, ErrMalformedToken
	}
	user, password, _ := strings.Cut(string(decoded), ":")
	return Credentials{Username: user, Password: password}, nil
}

// decodeToken accepts both padded and unpadded standard base64.
func decodeToken(token string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(token, "="))
}

// WriteChallenge writes the 401 response that every denial produces.
func WriteChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", challenge)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(challengeBody))
}

// Middleware guards the paths selected by m. Requests outside m reach next
// without evaluation.
func Middleware(g *Gate, m *Matcher, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m != nil && !m.Match(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if g.Evaluate(r) != Allow {
			WriteChallenge(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func constantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
