package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the fixed, normalized shape of a verified credential. Whatever
// claim spelling the issuer used is adapted here, at the boundary.
type Claims struct {
	Phone string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// JWTVerifier validates HS256 tokens issued by the verification flow.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token failed validation")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	return &Claims{Phone: phoneClaim(mapClaims)}, nil
}

// phoneClaim accepts both claim spellings seen across token issuers.
func phoneClaim(claims jwt.MapClaims) string {
	if s, ok := claims["phone_number"].(string); ok {
		return s
	}
	if s, ok := claims["phoneNumber"].(string); ok {
		return s
	}
	return ""
}
