package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/todo-chat-api/internal/cognito"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
)

// AuthService fronts the identity provider and keeps the local user table in
// step with it. The token subject is the user id used everywhere else.
type AuthService struct {
	idp      cognito.Client
	userRepo repository.UserRepository
}

func NewAuthService(idp cognito.Client, userRepo repository.UserRepository) *AuthService {
	return &AuthService{idp: idp, userRepo: userRepo}
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

type SignUpOutput struct {
	UserSub      string `json:"user_sub"`
	Confirmed    bool   `json:"confirmed"`
	CodeDelivery string `json:"code_delivery"`
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenOutput struct {
	UserID       string `json:"user_id,omitempty"`
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error) {
	if err := required("email", input.Email, "password", input.Password); err != nil {
		return SignUpOutput{}, err
	}

	out, err := s.idp.SignUp(ctx, cognito.SignUpInput{
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Name:     strings.TrimSpace(input.Name),
	})
	if err != nil {
		return SignUpOutput{}, err
	}

	return SignUpOutput{
		UserSub:      out.UserSub,
		Confirmed:    out.Confirmed,
		CodeDelivery: out.CodeDelivery,
	}, nil
}

func (s *AuthService) ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error {
	if err := required("email", input.Email, "code", input.Code); err != nil {
		return err
	}

	return s.idp.ConfirmSignUp(ctx, cognito.ConfirmSignUpInput{
		Email: strings.TrimSpace(input.Email),
		Code:  strings.TrimSpace(input.Code),
	})
}

// Login authenticates against the identity provider and upserts the local
// user row keyed by the ID token subject.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (TokenOutput, error) {
	if err := required("email", input.Email, "password", input.Password); err != nil {
		return TokenOutput{}, err
	}
	email := strings.TrimSpace(input.Email)

	tokens, err := s.idp.Login(ctx, cognito.LoginInput{Email: email, Password: input.Password})
	if err != nil {
		return TokenOutput{}, err
	}

	sub, err := subjectOf(tokens.IDToken)
	if err != nil {
		return TokenOutput{}, fmt.Errorf("failed to extract sub from id token: %w", err)
	}
	if _, err := s.userRepo.GetOrCreate(ctx, sub, email); err != nil {
		return TokenOutput{}, fmt.Errorf("failed to get or create user: %w", err)
	}

	out := tokenOutput(tokens)
	out.UserID = sub
	return out, nil
}

func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (TokenOutput, error) {
	if err := required("email", input.Email, "refresh_token", input.RefreshToken); err != nil {
		return TokenOutput{}, err
	}

	tokens, err := s.idp.Refresh(ctx, cognito.RefreshInput{
		Email:        strings.TrimSpace(input.Email),
		RefreshToken: input.RefreshToken,
	})
	if err != nil {
		return TokenOutput{}, err
	}
	return tokenOutput(tokens), nil
}

func tokenOutput(t cognito.Tokens) TokenOutput {
	return TokenOutput{
		IDToken:      t.IDToken,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    t.ExpiresIn,
		TokenType:    t.TokenType,
	}
}

// subjectOf reads the sub claim of a token the identity provider has just
// issued over TLS; the signature is not checked here.
func subjectOf(idToken string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", fmt.Errorf("sub claim not found in token")
	}
	return sub, nil
}

// required takes name/value pairs and reports the first blank value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, pairs[i])
		}
	}
	return nil
}
