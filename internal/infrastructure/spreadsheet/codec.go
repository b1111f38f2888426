package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"excel-analytics-api/internal/domain/user_file"
)

const emptyHeader = "__EMPTY"

// legacy BIFF workbooks (.xls) are OLE2 compound files
var ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var ErrNoSheets = errors.New("workbook has no sheets")

type Codec struct{}

func New() *Codec { return &Codec{} }

// Decode turns the first sheet (or the CSV body) into rows keyed by the
// header line.
func (c *Codec) Decode(mimeType, fileName string, data []byte) (user_file.Rows, error) {
	var (
		table [][]string
		err   error
	)
	if user_file.IsCSV(mimeType, fileName) {
		table, err = readCSV(data)
	} else {
		table, err = readFirstSheet(data)
	}
	if err != nil {
		return nil, err
	}

	return toRows(table), nil
}

// ToCSV serialises the first sheet of a workbook.
func (c *Codec) ToCSV(data []byte) (string, error) {
	table, err := readFirstSheet(data)
	if err != nil {
		return "", err
	}

	width := 0
	for _, r := range table {
		width = max(width, len(r))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range table {
		padded := make([]string, width)
		copy(padded, r)
		if err = w.Write(padded); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return table, nil
}

func readFirstSheet(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, ole2Signature) {
		return readFirstXLSSheet(data)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return table, nil
}

// readFirstXLSSheet reads a BIFF workbook. The reader panics on damaged
// input, which is reported as an ordinary error.
func readFirstXLSSheet(data []byte) (table [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			table, err = nil, fmt.Errorf("open xls workbook: malformed file: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, ErrNoSheets
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheets
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		table = append(table, xlsRow(sheet, i))
	}

	return table, nil
}

// xlsRow returns nil for rows the sheet does not store.
func xlsRow(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	// LastCol is one past the last stored cell
	cells = make([]string, row.LastCol())
	for c := row.FirstCol(); c < row.LastCol(); c++ {
		cells[c] = row.Col(c)
	}

	return cells
}

func toRows(table [][]string) user_file.Rows {
	rows := make(user_file.Rows, 0, len(table))
	if len(table) == 0 {
		return rows
	}

	width := 0
	for _, line := range table {
		width = max(width, len(line))
	}
	headers := headerNames(table[0], width)

	for _, line := range table[1:] {
		row := make(user_file.Row, len(line))
		for i, cell := range line {
			if cell == "" {
				continue
			}
			row[headers[i]] = cellValue(cell)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// headerNames names width columns from the header line. Blank or missing
// headers become __EMPTY, __EMPTY_1, ...; repeats get the first free _n
// suffix, so every column keeps its own key.
func headerNames(line []string, width int) []string {
	used := make(map[string]struct{}, width)
	next := make(map[string]int, width)
	take := func(base string) string {
		name := base
		for n := next[base]; ; n++ {
			if n > 0 {
				name = fmt.Sprintf("%s_%d", base, n)
			}
			if _, taken := used[name]; !taken {
				next[base] = n + 1
				used[name] = struct{}{}
				return name
			}
		}
	}

	out := make([]string, max(width, len(line)))
	for i := range out {
		name := emptyHeader
		if i < len(line) {
			if h := strings.TrimSpace(line[i]); h != "" {
				name = h
			}
		}
		out[i] = take(name)
	}

	return out
}

func cellValue(cell string) any {
	n, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return n
	}

	return cell
}
