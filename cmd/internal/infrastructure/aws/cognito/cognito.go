package cognitoclient

import (
	"context"
	"errors"
	"fmt"

	"byteapi/cmd/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

var ErrUnauthorized = errors.New("token rejected by cognito")

var (
	notAuthorized *types.NotAuthorizedException
	userNotFound  *types.UserNotFoundException
)

// API is the subset of the Cognito client used to resolve tokens.
type API interface {
	GetUser(ctx context.Context, params *cognito.GetUserInput, optFns ...func(*cognito.Options)) (*cognito.GetUserOutput, error)
}

type Client struct {
	api API
}

func NewClient(api API) *Client {
	return &Client{api: api}
}

func InitCognitoClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewClient(cognito.NewFromConfig(cfg)), nil
}

// ResolveUser exchanges an access token for the account's "sub" and e-mail.
// Cognito validates the token server side, revoked tokens are rejected too.
func (c *Client) ResolveUser(ctx context.Context, token string) (*entity.Identity, error) {
	out, err := c.api.GetUser(ctx, &cognito.GetUserInput{
		AccessToken: aws.String(token),
	})
	if errors.As(err, &notAuthorized) || errors.As(err, &userNotFound) {
		return nil, ErrUnauthorized
	}

	if err != nil {
		return nil, fmt.Errorf("cognito get user: %w", err)
	}

	identity := &entity.Identity{}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			identity.Subject = aws.ToString(attr.Value)
		case "email":
			identity.Email = aws.ToString(attr.Value)
		}
	}

	if identity.Subject == "" {
		identity.Subject = aws.ToString(out.Username)
	}

	if identity.Subject == "" {
		return nil, ErrUnauthorized
	}
	return identity, nil
}
