package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/haedavja/hahahahgo/internal/constants"

	"github.com/gin-gonic/gin"
)

// sessionTTL bounds how long a minted session cookie stays valid.
const sessionTTL = 24 * time.Hour

var errBadSession = errors.New("session token is invalid or expired")

type sessionClaims struct {
	Sub  string `json:"sub"`  // email
	Name string `json:"name"` // display name
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

var devSecret []byte

// hmacSecret returns the signing key, generating an ephemeral in-memory one
// when the env var is unset so development logins still work.
func hmacSecret() ([]byte, error) {
	if s := os.Getenv(constants.EnvSessionSecret); s != "" {
		return []byte(s), nil
	}
	if len(devSecret) == 0 {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			return nil, errors.New("failed to generate dev session secret")
		}
	}
	return devSecret, nil
}

var sessionHeader = func() string {
	h, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	return base64.RawURLEncoding.EncodeToString(h)
}()

func signSegments(unsigned string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// issueSessionCookie mints a signed token for the identity and sets it as
// the session cookie in one step.
func issueSessionCookie(c *gin.Context, email, name string) error {
	secret, err := hmacSecret()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	body, _ := json.Marshal(sessionClaims{Sub: email, Name: name, Iat: now, Exp: now + int64(sessionTTL.Seconds())})
	unsigned := sessionHeader + "." + base64.RawURLEncoding.EncodeToString(body)
	token := unsigned + "." + signSegments(unsigned, secret)

	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(sessionTTL.Seconds()), "/", "", secure, true)
	return nil
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// parseSession checks the signature and expiry of a session token and
// returns its claims.
func parseSession(token string) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errBadSession
	}
	secret, err := hmacSecret()
	if err != nil {
		return nil, err
	}
	if !hmac.Equal([]byte(signSegments(parts[0]+"."+parts[1], secret)), []byte(parts[2])) {
		return nil, errBadSession
	}
	body, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errBadSession
	}
	var claims sessionClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, errBadSession
	}
	if time.Now().Unix() > claims.Exp {
		return nil, errBadSession
	}
	return &claims, nil
}
