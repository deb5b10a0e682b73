package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/shared/apperror"
	"go-leavedesk/internal/shared/contextutil"
	"go-leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrInvalidClaims = apperror.New("INVALID_TOKEN", "Token is missing user_id or role", http.StatusUnauthorized)
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware verifies an HS256 token and turns its user_id and role
// claims into the request principal.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		rawRole, _ := claims["role"].(string)
		role, roleErr := domain.ParseRole(rawRole)
		if userID == "" || roleErr != nil {
			abortWith(c, ErrInvalidClaims)
			return
		}

		principal := domain.Principal{UserID: userID, Role: role}
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role.String())
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// IssueToken signs a principal into a token the middleware accepts.
// Used by tests and local tooling; there is no login endpoint.
func IssueToken(secret string, p domain.Principal, claims jwt.MapClaims) (string, error) {
	mc := jwt.MapClaims{
		"user_id": p.UserID,
		"role":    p.Role.String(),
	}
	for k, v := range claims {
		mc[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
}
