package cognito

import "context"

// Client is the subset of the Cognito user pool API the service relies on:
// account registration and password or refresh-token authentication.
type Client interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error
	Login(ctx context.Context, input LoginInput) (Tokens, error)
	Refresh(ctx context.Context, input RefreshInput) (Tokens, error)
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput needs the email only to derive the secret hash.
type RefreshInput struct {
	Email        string
	RefreshToken string
}

// Tokens are issued on login and refresh. RefreshToken is empty after a refresh.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}
