package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	rowGrowthBuffer    = 100
	columnGrowthBuffer = 10
)

// Client implements SheetsAPI on top of the Google Sheets v4 service
type Client struct {
	service *sheets.Service
}

// NewClient creates a Google Sheets client from a service account credentials file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// UpdateRange writes values into the given range as if typed by a user
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range: %w", err)
	}

	return nil
}

// ClearRange clears all values in the specified sheet range
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	return nil
}

// CreateSheet adds a tab with the specified name
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: sheetName,
			},
		},
	}

	if err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	return nil
}

// SheetExists checks if a tab with the given name exists in the spreadsheet
func (c *Client) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	sheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return false, err
	}
	return sheet != nil, nil
}

// EnsureSheetCapacity grows the tab when it is smaller than required, with
// some headroom so the next few refreshes don't resize again.
func (c *Client) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	target, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("sheet %s not found", sheetName)
	}

	currentRows, currentCols, err := gridSize(target)
	if err != nil {
		return fmt.Errorf("cannot resize %s: %w", sheetName, err)
	}

	newRows, growRows := expandedSize(currentRows, requiredRows, rowGrowthBuffer)
	newCols, growCols := expandedSize(currentCols, requiredCols, columnGrowthBuffer)
	if !growRows && !growCols {
		return nil
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("current_rows", currentRows).
		Int("current_cols", currentCols).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Expanding sheet capacity")

	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: target.Properties.SheetId,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(newRows),
					ColumnCount: int64(newCols),
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount",
		},
	}

	if err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to resize sheet %s: %w", sheetName, err)
	}

	return nil
}

func (c *Client) findSheet(ctx context.Context, spreadsheetID, sheetName string) (*sheets.Sheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return sheet, nil
		}
	}
	return nil, nil
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, requests ...*sheets.Request) error {
	batch := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}
	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batch).
		Context(ctx).
		Do()
	return err
}

// gridSize returns the row and column count of a grid sheet
func gridSize(sheet *sheets.Sheet) (int, int, error) {
	if sheet.Properties == nil || sheet.Properties.GridProperties == nil {
		return 0, 0, fmt.Errorf("sheet is not a grid sheet")
	}
	grid := sheet.Properties.GridProperties
	return int(grid.RowCount), int(grid.ColumnCount), nil
}

// expandedSize returns the new dimension and whether it had to grow
func expandedSize(current, required, buffer int) (int, bool) {
	if required <= current {
		return current, false
	}
	return required + buffer, true
}
