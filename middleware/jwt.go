package middleware

import (
	"elearn/config"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateAccessToken generates a short-lived access token for the user
func GenerateAccessToken(userID uint, name, role, email string) (string, error) {
	ttl := time.Duration(config.AppConfig.AccessTokenTTLMin) * time.Minute
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// GenerateRefreshToken generates a long-lived refresh token for the user. The
// token is only usable while it remains in the account's refresh-token list.
func GenerateRefreshToken(userID uint) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.RefreshTokenTTLDay) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"userId": userID,
		"typ":    "refresh",
		"jti":    uuid.NewString(),
		"iat":    time.Now().Unix(),
		"exp":    expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTRefreshKey)

	signed, err := token.SignedString(jwtSecret)
	return signed, expiresAt, err
}

// VerifyRefreshToken validates a refresh token's signature and expiry and
// returns the user ID it was issued to.
func VerifyRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTRefreshKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil || claims["typ"] != "refresh" {
		return 0, fmt.Errorf("invalid refresh token payload")
	}

	userID := claims["userId"].(float64)
	return uint(userID), nil
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "Missing or invalid Authorization header")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "Invalid Authorization header format")
	}

	// Extract the token part
	tokenString := authHeader[len("Bearer "):]

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Check if the token method is valid
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	// If there's an error parsing the token
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "Invalid or expired token")
	}

	// Extract user ID from the token claims
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, ErrUnauthenticated, "Invalid token payload")
	}

	// Set the user ID in the request context
	userID := claims["userId"].(float64) // JWT claims are typically stored as `float64`, so cast it
	c.Locals("userId", uint(userID))     // Store userID in context as uint

	// If valid, continue to the next handler
	return c.Next()
}
