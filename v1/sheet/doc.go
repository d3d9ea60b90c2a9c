// Package sheet adapts spreadsheet files to the page and row view the decoder
// reads.
//
// A Workbook has pages; a Page has rows of cell text and merged regions.
// ExcelWorkbook reads xlsx files through excelize, Table holds pages in memory
// and backs CSV input.
//
// Header location:
//
// The header is row 0 unless the page carries a single merged region starting
// at row 0, a title block, in which case the header is the row after it. Any
// other merged layout is rejected with an *UnsupportedLayoutError before a
// single data row is read.
//
//	wb, err := sheet.OpenExcelFile("people.xlsx")
//	if err != nil {
//	    return err
//	}
//	defer wb.Close()
//
//	page, err := sheet.PageAt(wb, 0)
//	if err != nil {
//	    return err
//	}
//	idx, headers, err := sheet.Header(page)
//
// Filter applies the upload rules of a deployment (name pattern, type, size)
// before a file is parsed.
package sheet
