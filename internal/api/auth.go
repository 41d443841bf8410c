package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session is the outcome of a successful sign-in. The token is installed on
// the client; claims are decoded for display only, the backend stays the
// authority on validity.
type Session struct {
	Token     string
	UserRef   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return Session{}, err
	}

	session := Session{
		Token:   resp.Token,
		UserRef: strconv.FormatInt(resp.ID, 10),
		Email:   resp.Email,
		Role:    resp.Role,
	}
	if claims := decodeClaims(resp.Token); claims != nil && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	c.SetToken(resp.Token)
	return session, nil
}

// Logout drops the bearer token; subsequent requests are anonymous.
func (c *Client) Logout() {
	c.SetToken("")
}

func decodeClaims(token string) *jwt.RegisteredClaims {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
