package token

import (
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"review-api/internal/data/entity"

	"golang.org/x/crypto/blake2b"
)

// ConfirmationCodes makes and checks codes of the form "<ts base36>-<mac hex>".
// The MAC covers the user's persisted state, including last_login, so stamping
// last_login after a successful exchange kills every outstanding code.
type ConfirmationCodes struct {
	key [32]byte
	ttl time.Duration
	now func() time.Time
}

func NewConfirmationCodes(secret string, ttl time.Duration) *ConfirmationCodes {
	return &ConfirmationCodes{
		key: blake2b.Sum256([]byte(secret)),
		ttl: ttl,
		now: time.Now,
	}
}

// WithClock replaces the time source.
func (c *ConfirmationCodes) WithClock(now func() time.Time) *ConfirmationCodes {
	c.now = now
	return c
}

func (c *ConfirmationCodes) Make(user *entity.User) (string, error) {
	ts := c.now().Unix()
	mac, err := c.mac(user, ts)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(ts, 36) + "-" + mac, nil
}

func (c *ConfirmationCodes) Check(user *entity.User, code string) bool {
	if user == nil || code == "" {
		return false
	}

	tsPart, macPart, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	expected, err := c.mac(user, ts)
	if err != nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(macPart)) != 1 {
		return false
	}

	issued := time.Unix(ts, 0)
	now := c.now()
	if issued.After(now) {
		return false
	}
	return c.ttl <= 0 || now.Sub(issued) <= c.ttl
}

func (c *ConfirmationCodes) mac(user *entity.User, ts int64) (string, error) {
	h, err := blake2b.New256(c.key[:])
	if err != nil {
		return "", err
	}

	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano)
	}
	for _, part := range []string{
		user.ID.String(),
		user.Username,
		user.Email,
		lastLogin,
		strconv.FormatInt(ts, 10),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))[:40], nil
}
