package mailclient

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

// LogClient não envia nada; apenas registra a mensagem. Usado em desenvolvimento.
type LogClient struct{}

func NewLogClient() *LogClient {
	return &LogClient{}
}

func (c *LogClient) Send(_ context.Context, message *Message) (string, error) {
	id, err := utils.GenerateMessageID()
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"from":       message.FormatAddress(),
		"recipients": message.To,
		"subject":    message.Subject,
		"html_bytes": len(message.HTML),
		"text_bytes": len(message.Text),
	}).Info("E-mail registrado em log (nenhum envio real)")

	logrus.Debug(message.Text)

	return "log-" + id, nil
}

func (c *LogClient) Provider() string {
	return config.EmailProviderLog
}
