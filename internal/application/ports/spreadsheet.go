package ports

import (
	"excel-analytics-api/internal/domain/user_file"
)

type SpreadsheetCodec interface {
	Decode(mimeType, fileName string, data []byte) (user_file.Rows, error)
	ToCSV(data []byte) (string, error)
}
