package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mapleleafu/lanerunner/common"
	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

// ParseToken validates an HS256 access token and returns its claims.
func ParseToken(tokenStr, secret string) (*models.CustomClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}

	claims := &models.CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func JWTValidationMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			authInfo, err := ParseToken(tokenStr, secret)
			if err != nil {
				utils.HandleError(w, responses.UnauthorizedError{Msg: "Your token is invalid or expired. Please log in again."})
				return
			}

			// Store the claims in the context
			ctx := context.WithValue(r.Context(), common.AuthInfoKey, authInfo)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthInfo returns the claims stored by JWTValidationMiddleware.
func AuthInfo(r *http.Request) (*models.CustomClaims, bool) {
	authInfo, ok := r.Context().Value(common.AuthInfoKey).(*models.CustomClaims)
	return authInfo, ok
}
