package mailclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/vfg2006/sales-dashboard/internal/config"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

type SendGridClient struct {
	apiKey string
	host   string
}

func NewSendGridClient(apiKey string) *SendGridClient {
	return &SendGridClient{
		apiKey: apiKey,
		host:   sendGridHost,
	}
}

func (c *SendGridClient) Send(ctx context.Context, message *Message) (string, error) {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(message.FromName, message.From))
	m.Subject = message.Subject

	personalization := mail.NewPersonalization()
	for _, recipient := range message.To {
		personalization.AddTos(mail.NewEmail("", recipient))
	}
	m.AddPersonalizations(personalization)

	if message.Text != "" {
		m.AddContent(mail.NewContent("text/plain", message.Text))
	}
	m.AddContent(mail.NewContent("text/html", message.HTML))

	request := sendgrid.GetRequest(c.apiKey, sendGridEndpoint, c.host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(m)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "sendgrid")
	}

	if response.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("sendgrid: status %d: %s", response.StatusCode, response.Body)
	}

	return messageIDFromHeaders(response), nil
}

func (c *SendGridClient) Provider() string {
	return config.EmailProviderSendGrid
}

func messageIDFromHeaders(response *rest.Response) string {
	for _, key := range []string{"X-Message-Id", "X-Message-ID"} {
		if values, ok := response.Headers[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
