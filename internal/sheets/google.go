package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client implements ListStore on the Google Sheets API with service-account
// credentials. All writes use USER_ENTERED so dates and numbers keep the
// formatting the operators expect.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	schema        Schema
}

func NewClient(ctx context.Context, credentialsPath, spreadsheetID string, schema Schema) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}, nil
}

func (c *Client) ListExists(ctx context.Context, list string) (bool, error) {
	names, err := c.ListNames(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == list {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) ListNames(ctx context.Context) ([]string, error) {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}

	names := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			names = append(names, sheet.Properties.Title)
		}
	}
	return names, nil
}

func (c *Client) ReadColumn(ctx context.Context, list string, col Column) ([]string, error) {
	letter := col.Letter()
	rng := fmt.Sprintf("%s!%s:%s", list, letter, letter)

	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read column %s: %w", rng, err)
	}

	values := make([]string, len(vr.Values))
	for i, row := range vr.Values {
		if len(row) > 0 {
			values[i] = fmt.Sprint(row[0])
		}
	}
	return values, nil
}

func (c *Client) WriteCells(ctx context.Context, list string, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}

	data := make([]*sheetsapi.ValueRange, 0, len(cells))
	for _, cell := range cells {
		data = append(data, &sheetsapi.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", list, cell.Column.Letter(), cell.Row),
			Values: [][]interface{}{{cell.Value}},
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch update %s: %w", list, err)
	}
	return nil
}

func (c *Client) ClearRow(ctx context.Context, list string, row int) error {
	last := Column(c.schema.Width - 1)
	rng := fmt.Sprintf("%s!%s%d:%s%d", list, Column(0).Letter(), row, last.Letter(), row)

	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear row %s: %w", rng, err)
	}
	return nil
}

func (c *Client) FindRow(ctx context.Context, list string, col Column, key string) (int, error) {
	values, err := c.ReadColumn(ctx, list, col)
	if err != nil {
		return 0, err
	}

	if row := findInColumn(values, key); row != 0 {
		return row, nil
	}
	return 0, ErrRowNotFound
}
