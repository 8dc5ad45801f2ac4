package mail

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail/mailclient"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail/mocks"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"go.uber.org/mock/gomock"
)

func TestMailService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().Provider().Return("sendgrid").AnyTimes()

	cfg := &config.Config{
		Email: config.Email{
			From:     "vendas@example.com",
			FromName: "Painel de Vendas",
		},
	}
	service := New(cfg, mockClient)

	tests := []struct {
		name     string
		message  *mailclient.Message
		setup    func()
		validate func(t *testing.T, messageID string, err error)
	}{
		{
			name: "Envio aceito pelo provedor",
			message: &mailclient.Message{
				To:      []string{"gestor@example.com", " "},
				Subject: "Resumo de vendas",
				HTML:    "<p>ok</p>",
			},
			setup: func() {
				mockClient.EXPECT().
					Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message *mailclient.Message) (string, error) {
						assert.Equal(t, []string{"gestor@example.com"}, message.To)
						assert.Equal(t, "vendas@example.com", message.From)
						assert.Equal(t, "Painel de Vendas", message.FromName)
						return "msg-1", nil
					})
			},
			validate: func(t *testing.T, messageID string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "msg-1", messageID)
			},
		},
		{
			name: "Lista de destinatários vazia não chama o transporte",
			message: &mailclient.Message{
				To:      []string{},
				Subject: "Resumo de vendas",
			},
			setup: func() {},
			validate: func(t *testing.T, messageID string, err error) {
				assert.Empty(t, messageID)
				assert.True(t, domain.IsDeliveryError(err))
				assert.ErrorIs(t, err, domain.ErrNoRecipients)
			},
		},
		{
			name: "Transporte rejeita a mensagem",
			message: &mailclient.Message{
				To:      []string{"gestor@example.com"},
				Subject: "Resumo de vendas",
			},
			setup: func() {
				mockClient.EXPECT().
					Send(gomock.Any(), gomock.Any()).
					Return("", errors.New("sendgrid: status 401: unauthorized"))
			},
			validate: func(t *testing.T, messageID string, err error) {
				assert.Empty(t, messageID)
				assert.True(t, domain.IsDeliveryError(err))
				assert.ErrorIs(t, err, domain.ErrTransportRejected)

				var deliveryErr *domain.DeliveryError
				if assert.ErrorAs(t, err, &deliveryErr) {
					assert.Equal(t, "sendgrid", deliveryErr.Provider)
					assert.Equal(t, domain.CodeDelivery, deliveryErr.Code)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			messageID, err := service.Send(context.Background(), tt.message)

			tt.validate(t, messageID, err)
		})
	}
}

func TestMailService_Send_LogComRunID(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	log.SetupTestLogger()

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().Provider().Return("log").AnyTimes()
	mockClient.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)

	service := New(&config.Config{}, mockClient)
	ctx := log.WithRunID(context.Background(), "Xy34Zw56")

	_, err := service.Send(ctx, &mailclient.Message{To: []string{"gestor@example.com"}, Subject: "Resumo"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "run_id=Xy34Zw56")
}
