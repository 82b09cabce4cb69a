package sheets

import (
	"context"
	"fmt"
	"strings"

	"torn_flight_board/internal/config"
	"torn_flight_board/internal/domain/board"

	"github.com/rs/zerolog/log"
)

const boardColumns = 6

var boardHeaders = []interface{}{
	"Player",
	"Flight Log",
	"Destination",
	"Departed",
	"Landing",
	"Lands",
}

// BoardManager mirrors the flight board into a single spreadsheet tab
type BoardManager struct {
	api           SheetsAPI
	spreadsheetID string
	sheetName     string
}

// NewBoardManager creates a manager writing to sheetName in spreadsheetID
func NewBoardManager(api SheetsAPI, spreadsheetID, sheetName string) *BoardManager {
	return &BoardManager{
		api:           api,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// Name identifies the publisher in logs
func (m *BoardManager) Name() string {
	return "sheets"
}

// Publish replaces the tab contents with the board's rows
func (m *BoardManager) Publish(ctx context.Context, b board.Board) error {
	ctx, cancel := context.WithTimeout(ctx, config.SheetWriteTimeout)
	defer cancel()

	if err := m.ensureSheet(ctx); err != nil {
		return err
	}

	sheet := quoteSheetName(m.sheetName)

	if err := m.api.ClearRange(ctx, m.spreadsheetID, sheet+"!A2:F"); err != nil {
		return fmt.Errorf("failed to clear board rows: %w", err)
	}

	rows := ConvertBoardToRows(b)
	if err := m.api.EnsureSheetCapacity(ctx, m.spreadsheetID, m.sheetName, len(rows)+1, boardColumns); err != nil {
		return fmt.Errorf("failed to ensure sheet capacity: %w", err)
	}

	if err := m.api.UpdateRange(ctx, m.spreadsheetID, sheet+"!A1", [][]interface{}{boardHeaders}); err != nil {
		return fmt.Errorf("failed to write board headers: %w", err)
	}

	if len(rows) > 0 {
		if err := m.api.UpdateRange(ctx, m.spreadsheetID, sheet+"!A2", rows); err != nil {
			return fmt.Errorf("failed to write board rows: %w", err)
		}
	}

	log.Debug().
		Str("sheet_name", m.sheetName).
		Int("rows", len(rows)).
		Msg("Updated flight board sheet")

	return nil
}

func (m *BoardManager) ensureSheet(ctx context.Context) error {
	exists, err := m.api.SheetExists(ctx, m.spreadsheetID, m.sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if board sheet exists: %w", err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", m.sheetName).
		Msg("Creating flight board sheet")

	if err := m.api.CreateSheet(ctx, m.spreadsheetID, m.sheetName); err != nil {
		return fmt.Errorf("failed to create board sheet: %w", err)
	}
	return nil
}

// ConvertBoardToRows converts board rows into spreadsheet row format
func ConvertBoardToRows(b board.Board) [][]interface{} {
	rows := make([][]interface{}, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = []interface{}{
			cellText(board.FormatUserLink(row)),
			cellText(row.LogText),
			cellText(row.Destination),
			cellText(row.Departed),
			cellText(row.Landing),
			cellText(row.DisplayText),
		}
	}
	return rows
}

// cellText stops upstream text from being entered as a formula
func cellText(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

// quoteSheetName renders a tab name for A1 notation
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
