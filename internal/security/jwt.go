package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the resolved viewer profile, so handlers can snapshot the
// owner of a new post/comment/like without a user lookup.
type Claims struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Avatar  string `json:"avatar"`
	jwt.RegisteredClaims
}

func MakeAccess(secret, uid, name, surname, avatar string, ttl time.Duration) (string, error) {
	c := Claims{
		UID: uid, Name: name, Surname: surname, Avatar: avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Subject:   uid,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseAccess(secret, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
