// Package xlsxio is a streaming reader for Office Open XML spreadsheet
// containers (.xlsx and its macro-enabled/template variants). Given such a
// file, it locates the worksheets, resolves the shared-string table, and
// produces a worksheet's cells as an ordered stream of (row, column, value)
// records without holding the full sheet in memory.
//
// Quick start, push mode:
//
//	f, err := xlsxio.Open("report.xlsx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	err = f.Process("Sheet1", 0, func(c xlsxio.Cell) bool {
//		fmt.Println(c.Row, c.Col, c.Value)
//		return true
//	})
//
// Quick start, pull mode:
//
//	sheet, err := f.OpenSheet("Sheet1", xlsxio.SkipEmptyRows)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sheet.Close()
//
//	for {
//		row, ok := sheet.NextRow()
//		if !ok {
//			break
//		}
//		for {
//			cell, ok := sheet.NextCell()
//			if !ok {
//				break
//			}
//			fmt.Println(row, cell.Col, cell.Value)
//		}
//	}
//
// Styles, merges, comments, drawings, and formula evaluation are out of
// scope: this package reads cell text, nothing more. Display formatting of
// that text through a number-format pattern is available as an opt-in,
// downstream layer — see the styleindex and numformat packages.
package xlsxio
