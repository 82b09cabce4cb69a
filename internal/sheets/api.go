package sheets

import (
	"context"
)

// SheetsAPI is the subset of Google Sheets operations the board publisher needs.
//
// Values are [][]interface{} because that is what google.golang.org/api/sheets/v4
// takes; keep that type at this boundary.
type SheetsAPI interface {
	// UpdateRange writes values starting at the top-left of range_
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error

	// ClearRange clears all values in a sheet range
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error

	// CreateSheet adds a tab to the spreadsheet
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error

	// SheetExists checks if a tab with the given name exists
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)

	// EnsureSheetCapacity grows a tab to at least the required rows and columns
	EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error
}
