package gridsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// buildMultiGridWorkbook раскладывает несколько гридов сверху вниз на одном листе,
// между блоками одна пустая строка. Ячейки шапки не объединяются: подпись пишется
// в одну ячейку области, остальные остаются пустыми, но со стилем.
func buildMultiGridWorkbook(cfg Config, grids []Grid) (*excelize.File, error) {
	w, err := newSheetWriter(cfg)
	if err != nil {
		return nil, err
	}
	headerID, err := w.style(kindMultiHeader, AlignCenter)
	if err != nil {
		w.f.Close()
		return nil, err
	}

	currentRow := cfg.MultiHeaderStartRow
	for gi, grid := range grids {
		layout := PlanHeaders(grid.Header, currentRow)
		starts := groupStartCols(layout.Cells)
		printed := make(map[string]struct{})

		for _, c := range layout.Cells {
			for r := c.Row; r <= c.EndRow(); r++ {
				for col := c.StartCol; col <= c.EndCol; col++ {
					text := multiHeaderText(c, r, col, starts, printed)
					if err := w.setCell(r, col, text, headerID); err != nil {
						w.f.Close()
						return nil, fmt.Errorf("grid %d header %q: %w", gi, c.Label, err)
					}
				}
			}
		}
		if err := w.setColWidths(layout.Leaves, cfg.MultiColWidthDivisor, cfg.MultiDefaultColWidth); err != nil {
			w.f.Close()
			return nil, fmt.Errorf("grid %d column widths: %w", gi, err)
		}

		last, err := w.writeDataRows(layout.Leaves, grid.Data, layout.MaxRow+1)
		if err != nil {
			w.f.Close()
			return nil, fmt.Errorf("grid %d: %w", gi, err)
		}
		if last < layout.MaxRow {
			last = layout.MaxRow
		}
		currentRow = last + 2
	}
	return w.f, nil
}

// multiHeaderText выбирает текст для ячейки (r, col) области c:
//   - уровень 1: подпись один раз, в строке CenterRow;
//   - уровень 2, группа: в первой строке и самой левой колонке среди одноимённых групп;
//   - уровень 2, лист: в своей строке;
//   - уровень 3 и глубже: только листья, в своей строке.
func multiHeaderText(c CellPlacement, r, col int, starts map[groupKey]int, printed map[string]struct{}) string {
	switch {
	case c.Depth == 1:
		if r != c.CenterRow() {
			return ""
		}
		if _, done := printed[c.Label]; done {
			return ""
		}
		printed[c.Label] = struct{}{}
		return c.Label
	case c.Depth == 2 && !c.IsLeaf:
		if r == c.Row && col == starts[groupKey{label: c.Label, row: c.Row}] {
			return c.Label
		}
	case c.Depth == 2:
		if r == c.Row {
			return c.Label
		}
	case c.IsLeaf:
		if r == c.Row {
			return c.Label
		}
	}
	return ""
}
