package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/models"
	"github.com/openmart/shop-api/services/cart"
)

// TokenVerifier validates HS256 bearer tokens and yields a Principal. It is
// the Authenticator the cart core consumes, keeping the core free of any
// compile-time dependency on the token format.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(_ context.Context, credential string) (cart.Principal, error) {
	if credential == "" {
		return cart.Principal{}, fmt.Errorf("%w: missing credential", apperr.ErrUnauthenticated)
	}

	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return cart.Principal{}, fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return cart.Principal{}, fmt.Errorf("%w: invalid token claims", apperr.ErrUnauthenticated)
	}

	subject, _ := claims["user_id"].(string)
	if subject == "" {
		return cart.Principal{}, fmt.Errorf("%w: token has no subject", apperr.ErrUnauthenticated)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleCustomer
	}

	return cart.Principal{SubjectID: subject, Role: role}, nil
}
