package envolve

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSigner pins the clock so canonical strings are reproducible.
func newTestSigner(t *testing.T, apiKey string) *Signer {
	t.Helper()
	s, err := New(apiKey)
	require.NoError(t, err)
	s.now = func() time.Time {
		return time.Date(2011, time.March, 14, 9, 26, 53, 0, time.Local)
	}
	return s
}

func TestNewRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{
		"",
		"123",
		"123-",
		"-secret",
		"abc-def",
		"123_abc",
		"456 789",
	} {
		_, err := New(key)
		assert.ErrorIs(t, err, ErrInvalidAPIKey, "key %q should be rejected", key)
	}
}

func TestNewSplitsKeyOnFirstHyphen(t *testing.T) {
	s, err := New("123-abcSECRETxyz")
	require.NoError(t, err)
	assert.Equal(t, "123", s.SiteID)
	assert.Equal(t, "abcSECRETxyz", s.secret)

	// Hyphens after the first stay inside the secret.
	s, err = New("42-top-secret")
	require.NoError(t, err)
	assert.Equal(t, "42", s.SiteID)
	assert.Equal(t, "top-secret", s.secret)
}

func TestLogoutCommandShape(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")

	signed := s.BuildLogoutCommand("10.0.0.1")

	digest, canonical, found := strings.Cut(signed, ";")
	require.True(t, found)
	assert.Len(t, digest, 40)
	assert.Equal(t, strings.ToLower(digest), digest)

	// March is month index 2 in the zero-based scheme.
	assert.Equal(t, "10.0.0.1;2011;2;14;v=0.1,c=logout", canonical)
}

func TestSignatureMatchesRecomputedDigest(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")

	signed := s.BuildLoginCommand("10.0.0.1", "Joe", &LoginOptions{LastName: "Bloggs"})

	digest, canonical, found := strings.Cut(signed, ";")
	require.True(t, found)

	want := sha1.Sum([]byte(canonical + "abcSECRETxyz"))
	assert.Equal(t, hex.EncodeToString(want[:]), digest)
}

func TestLoginCommandParameters(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")
	joe := base64.StdEncoding.EncodeToString([]byte("Joe"))

	t.Run("first name only", func(t *testing.T) {
		signed := s.BuildLoginCommand("10.0.0.1", "Joe", nil)
		assert.Contains(t, signed, ",c=login,fn="+joe+"==")
		assert.NotContains(t, signed, ",ln=")
		assert.NotContains(t, signed, ",pic=")
		assert.NotContains(t, signed, ",admin=")
	})

	t.Run("all options in fixed order", func(t *testing.T) {
		signed := s.BuildLoginCommand("10.0.0.1", "Joe", &LoginOptions{
			LastName:   "Bloggs",
			PictureURL: "http://example.com/joe.png",
			IsAdmin:    true,
		})

		ln := base64.StdEncoding.EncodeToString([]byte("Bloggs"))
		pic := base64.StdEncoding.EncodeToString([]byte("http://example.com/joe.png"))
		want := ",c=login,fn=" + joe + "==,ln=" + ln + "==,pic=" + pic + "==,admin=t"
		assert.True(t, strings.HasSuffix(signed, want), "got %q", signed)
	})

	t.Run("admin false emits no key", func(t *testing.T) {
		signed := s.BuildLoginCommand("10.0.0.1", "Joe", &LoginOptions{IsAdmin: false})
		assert.NotContains(t, signed, "admin")
	})

	t.Run("admin flag goes on the wire unencoded", func(t *testing.T) {
		signed := s.BuildLoginCommand("10.0.0.1", "Joe", &LoginOptions{IsAdmin: true})
		assert.True(t, strings.HasSuffix(signed, ",admin=t"), "got %q", signed)
	})
}

func TestEmptyFirstNameLogsOut(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")
	assert.Equal(t, s.BuildLogoutCommand("10.0.0.1"), s.BuildLoginCommand("10.0.0.1", "", nil))
}

func TestClientIPPassedThroughVerbatim(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")

	// No validation of the IP slot, including the "none" sentinel.
	assert.True(t, strings.Contains(s.BuildLogoutCommand(NoClientIP), ";none;2011;"))
	assert.True(t, strings.Contains(s.BuildLogoutCommand("not-an-ip"), ";not-an-ip;2011;"))
}

func TestSigningIsDeterministic(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")
	opts := &LoginOptions{LastName: "Bloggs", IsAdmin: true}

	first := s.BuildLoginCommand("10.0.0.1", "Joe", opts)
	second := s.BuildLoginCommand("10.0.0.1", "Joe", opts)
	assert.Equal(t, first, second)

	// A different secret must change the digest but not the canonical part.
	other := newTestSigner(t, "123-differentSecret")
	third := other.BuildLoginCommand("10.0.0.1", "Joe", opts)
	assert.NotEqual(t, first[:40], third[:40])
	assert.Equal(t, first[41:], third[41:])
}

func TestParameterValuesRoundTrip(t *testing.T) {
	s := newTestSigner(t, "123-abcSECRETxyz")

	for _, name := range []string{"Joe", "José", "Åsa", "小林"} {
		signed := s.BuildLoginCommand(NoClientIP, name, nil)

		_, after, found := strings.Cut(signed, ",fn=")
		require.True(t, found)
		encoded := strings.TrimSuffix(after, "==") // the unconditional suffix

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err, "value %q", encoded)
		assert.Equal(t, name, string(decoded))
	}
}
