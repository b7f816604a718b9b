package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthConfig selects how callers are identified. DevMode trusts the
// X-User-ID header. Otherwise bearer tokens are accepted when signed with
// Secret (HS256) or by a key from JWKSClient (RS256); at least one is required.
type AuthConfig struct {
	DevMode    bool
	Secret     []byte
	JWKSClient *JWKSClient
	Issuer     string
	Audience   string
}

type Auth struct {
	devMode   bool
	verifiers []tokenVerifier
}

// tokenVerifier checks a token and returns its subject.
type tokenVerifier func(tokenStr string) (string, error)

func NewAuth(cfg AuthConfig) (*Auth, error) {
	a := &Auth{devMode: cfg.DevMode}
	if cfg.DevMode {
		return a, nil
	}

	if len(cfg.Secret) > 0 {
		a.verifiers = append(a.verifiers, hmacVerifier(cfg.Secret))
	}
	if cfg.JWKSClient != nil {
		a.verifiers = append(a.verifiers, jwksVerifier(cfg.JWKSClient, cfg.Issuer, cfg.Audience))
	}
	if len(a.verifiers) == 0 {
		return nil, fmt.Errorf("middleware: a token secret or JWKS client is required when DevMode is false")
	}
	return a, nil
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleanPath := path.Clean(r.URL.Path)
		if cleanPath == "/health" || strings.HasPrefix(cleanPath, "/api/v1/auth/") {
			next.ServeHTTP(w, r)
			return
		}

		userID, status, msg := a.authenticate(r)
		if userID == "" {
			writeError(w, status, "UNAUTHORIZED", msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
	})
}

func (a *Auth) authenticate(r *http.Request) (userID string, status int, msg string) {
	if a.devMode {
		userID = r.Header.Get("X-User-ID")
		if userID == "" {
			return "", http.StatusUnauthorized, "X-User-ID header required in dev mode"
		}
		return userID, http.StatusOK, ""
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", http.StatusUnauthorized, "authorization header required"
	}
	tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenStr == "" {
		return "", http.StatusUnauthorized, "invalid authorization header format"
	}

	for _, verify := range a.verifiers {
		if sub, err := verify(tokenStr); err == nil {
			return sub, http.StatusOK, ""
		}
	}
	return "", http.StatusUnauthorized, "invalid or expired token"
}

func hmacVerifier(secret []byte) tokenVerifier {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	return func(tokenStr string) (string, error) {
		token, err := parser.Parse(tokenStr, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		return subject(token, err)
	}
}

func jwksVerifier(client *JWKSClient, issuer, audience string) tokenVerifier {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	parser := jwt.NewParser(opts...)

	return func(tokenStr string) (string, error) {
		token, err := parser.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			kid, ok := token.Header["kid"].(string)
			if !ok {
				return nil, errors.New("kid header not found")
			}
			return client.GetKey(kid)
		})
		return subject(token, err)
	}
}

func subject(token *jwt.Token, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("sub claim not found")
	}
	return sub, nil
}

func CognitoJWKSURL(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json", region, userPoolID)
}

func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}
