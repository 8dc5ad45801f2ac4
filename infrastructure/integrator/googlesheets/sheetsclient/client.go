package sheetsclient

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client interface {
	// ListWorksheets retorna os títulos das abas da planilha
	ListWorksheets(ctx context.Context, spreadsheetID string) ([]string, error)
	// GetValues retorna as células do intervalo informado, linha a linha
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

type SheetsClient struct {
	service *sheets.Service
}

// NewClient cria o cliente autorizado da API do Google Sheets
func NewClient(ctx context.Context, creds *google.Credentials, opts ...option.ClientOption) (Client, error) {
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &SheetsClient{service: service}, nil
}

func (c *SheetsClient) ListWorksheets(ctx context.Context, spreadsheetID string) ([]string, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}

	return titles, nil
}

func (c *SheetsClient) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return resp.Values, nil
}

// WorksheetRange monta a notação A1 que seleciona a aba inteira
func WorksheetRange(worksheet string) string {
	return "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
}

// IsNotFound indica se a API respondeu 404 (planilha inexistente ou sem acesso)
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
