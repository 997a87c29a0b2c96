package envolve

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NoClientIP disables IP binding for a signed command. The literal "none" is
// what the Envolve backend expects in the IP slot when no address is pinned.
const NoClientIP = "none"

// BootstrapURL is the hosted widget loader script. The URL is part of the
// compatibility contract with Envolve's JavaScript; do not change it.
const BootstrapURL = "http://d.envolve.com/env.nocache.js"

// ErrInvalidAPIKey is returned by New when the API key does not contain
// "<site number>-<secret>".
var ErrInvalidAPIKey = errors.New("invalid Envolve API key: expected <digits>-<word characters>")

// Deliberately unanchored: the secret segment may be followed by further
// hyphenated text, which the split below folds into the secret.
var apiKeyPattern = regexp.MustCompile(`\d+-\w+`)

// LoginOptions carries the optional attributes of a login command. Zero
// values are omitted from the signed payload entirely; in particular
// IsAdmin=false never emits an admin parameter.
type LoginOptions struct {
	LastName   string
	PictureURL string
	IsAdmin    bool
}

// Signer produces signed Envolve command strings from a single API key.
//
// The client IP is a per-call argument rather than Signer state, so one
// Signer can serve every user and session concurrently.
type Signer struct {
	SiteID string
	secret string

	now func() time.Time // pinned in tests
}

// New validates an Envolve API key and splits it into site ID and secret.
func New(apiKey string) (*Signer, error) {
	if !apiKeyPattern.MatchString(apiKey) {
		return nil, ErrInvalidAPIKey
	}

	// Split on the first hyphen only; anything after it is secret material.
	parts := strings.SplitN(apiKey, "-", 2)

	return &Signer{
		SiteID: parts[0],
		secret: parts[1],
		now:    time.Now,
	}, nil
}

// param is one key/value pair of a command. Values go on the wire
// base64-encoded unless raw is set (the admin flag is sent as a bare "t").
type param struct {
	key   string
	value string
	raw   bool
}

// BuildLoginCommand signs a login command for the named user. An empty
// firstName is treated as a logout request, which is what the hosted widget
// expects when no user is present.
func (s *Signer) BuildLoginCommand(clientIP, firstName string, opts *LoginOptions) string {
	if firstName == "" {
		return s.BuildLogoutCommand(clientIP)
	}

	// Parameter order is fixed: fn, ln, pic, admin. The backend does not
	// require an order; a deterministic one keeps output reproducible.
	params := []param{{key: "fn", value: firstName}}
	if opts != nil {
		if opts.LastName != "" {
			params = append(params, param{key: "ln", value: opts.LastName})
		}
		if opts.PictureURL != "" {
			params = append(params, param{key: "pic", value: opts.PictureURL})
		}
		if opts.IsAdmin {
			params = append(params, param{key: "admin", value: "t", raw: true})
		}
	}

	return s.sign(s.canonical(clientIP, "login", params))
}

// BuildLogoutCommand signs a logout command. Logout carries no parameters.
func (s *Signer) BuildLogoutCommand(clientIP string) string {
	return s.sign(s.canonical(clientIP, "logout", nil))
}

// canonical builds the unsigned command string:
//
//	{clientIp};{year};{month-1};{day};v=0.1,c={command}[,{key}={base64}==]...
//
// The date comes from the local clock. The month is zero-based (January = 0)
// and the trailing "==" is appended on top of whatever padding the encoder
// already produced. Both are quirks of the wire format the Envolve backend
// parses; they are preserved verbatim.
func (s *Signer) canonical(clientIP, command string, params []param) string {
	now := s.now()

	var b strings.Builder
	fmt.Fprintf(&b, "%s;%d;%d;%d;v=0.1,c=%s",
		clientIP, now.Year(), int(now.Month())-1, now.Day(), command)

	for _, p := range params {
		if p.raw {
			fmt.Fprintf(&b, ",%s=%s", p.key, p.value)
			continue
		}
		fmt.Fprintf(&b, ",%s=%s==", p.key, base64.StdEncoding.EncodeToString([]byte(p.value)))
	}

	return b.String()
}

// sign prefixes the canonical string with its keyed digest: lowercase hex
// SHA-1 over canonical + secret, concatenated with no separator. This is
// Envolve's scheme, not an HMAC; the secret itself never goes on the wire.
func (s *Signer) sign(canonical string) string {
	digest := sha1.Sum([]byte(canonical + s.secret))
	return hex.EncodeToString(digest[:]) + ";" + canonical
}
