package sheets

import (
	"fmt"
	"strings"
	"time"
)

// sheetRange builds an A1 range on a named sheet, quoting the name since war keys contain '#'
func sheetRange(sheetName, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheetName, "'", "''"), cells)
}

// columnLetter converts a 1-based column number into its A1 letter form
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}

// formatSheetTime renders a timestamp for the sheet, leaving unknown times blank
func formatSheetTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(sheetTimeLayout)
}
