package sheets

import (
	"google.golang.org/api/sheets/v4"
)

// formatTab bolds and shades the header row, freezes it, formats money
// columns as currency and sizes the columns to fit.
func formatTab(sheetID int64, tab Tab) []*sheets.Request {
	rows := int64(len(tab.Rows))
	columns := int64(0)
	if len(tab.Rows) > 0 {
		columns = int64(len(tab.Rows[0]))
	}

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
						BackgroundColor: &sheets.Color{
							Red:   0.9,
							Green: 0.9,
							Blue:  0.9,
							Alpha: 1.0,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat,userEnteredFormat.backgroundColor",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	for _, col := range tab.MoneyColumns {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    1,
					EndRowIndex:      rows,
					StartColumnIndex: int64(col),
					EndColumnIndex:   int64(col) + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{Type: "CURRENCY", Pattern: "#,##0.00"},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	if columns > 0 {
		requests = append(requests, &sheets.Request{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   columns,
				},
			},
		})
	}
	return requests
}
