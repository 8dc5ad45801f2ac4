package mailclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

const charsetUTF8 = "UTF-8"

// sesAPI é o subconjunto do cliente SESv2 usado aqui
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESClient struct {
	api sesAPI
}

// NewSESClient usa a cadeia padrão de credenciais da AWS (variáveis de ambiente, perfil, role)
func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, domain.NewConfigurationError(domain.ErrMissingProviderKey, "AWS: "+err.Error())
	}

	return &SESClient{api: sesv2.NewFromConfig(awsCfg)}, nil
}

func (c *SESClient) Send(ctx context.Context, message *Message) (string, error) {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(message.HTML), Charset: aws.String(charsetUTF8)},
	}
	if message.Text != "" {
		body.Text = &types.Content{Data: aws.String(message.Text), Charset: aws.String(charsetUTF8)}
	}

	output, err := c.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(message.FormatAddress()),
		Destination: &types.Destination{
			ToAddresses: message.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(charsetUTF8)},
				Body:    body,
			},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "ses")
	}

	return aws.ToString(output.MessageId), nil
}

func (c *SESClient) Provider() string {
	return config.EmailProviderSES
}
