package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var errEmptySecret = errors.New("session secret is empty")

// cookieCodec signs session ids so clients cannot pick another session's id.
type cookieCodec struct {
	secret []byte
}

func newCookieCodec(secret []byte) (cookieCodec, error) {
	if len(secret) == 0 {
		return cookieCodec{}, errEmptySecret
	}

	return cookieCodec{secret: secret}, nil
}

func (c cookieCodec) encode(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(c.sign(id))
}

// decode returns the session id of a well-formed, correctly signed value.
func (c cookieCodec) decode(value string) (string, bool) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 {
		return "", false
	}

	id, rawSig := value[:idx], value[idx+1:]
	sig, err := base64.RawURLEncoding.DecodeString(rawSig)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(sig, c.sign(id)) {
		return "", false
	}

	return id, true
}

func (c cookieCodec) sign(id string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	return mac.Sum(nil)
}
