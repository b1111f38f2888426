package user_file

import (
	"path/filepath"
	"strings"
)

const (
	MimeCSV  = "text/csv"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS  = "application/vnd.ms-excel"
)

// IsCSV trusts the extension as well: browsers on some platforms label .csv
// uploads as application/vnd.ms-excel.
func IsCSV(mimeType, fileName string) bool {
	return mimeType == MimeCSV || strings.EqualFold(filepath.Ext(fileName), ".csv")
}

func IsExcel(mimeType string) bool {
	return mimeType == MimeXLSX || mimeType == MimeXLS
}
