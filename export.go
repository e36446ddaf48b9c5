package gridsheet

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

type cellKind int

const (
	kindTitle cellKind = iota
	kindHeader
	kindMultiHeader
	kindData
)

type styleKey struct {
	kind  cellKind
	align string
}

// sheetWriter пишет в единственный лист новой книги. Книга создаётся на каждую выгрузку
// и между вызовами не разделяется.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	cfg    Config
	styles map[styleKey]int
}

func newSheetWriter(cfg Config) (*sheetWriter, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if cfg.SheetName != "" && cfg.SheetName != sheet {
		if err := f.SetSheetName(sheet, cfg.SheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = cfg.SheetName
	}
	return &sheetWriter{f: f, sheet: sheet, cfg: cfg, styles: make(map[styleKey]int)}, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// style возвращает id стиля, создавая его при первом обращении.
func (w *sheetWriter) style(kind cellKind, align string) (int, error) {
	key := styleKey{kind: kind, align: align}
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	st := &excelize.Style{
		Border:    thinBorder(),
		Font:      &excelize.Font{Family: w.cfg.FontName, Size: w.cfg.FontSize},
		Alignment: &excelize.Alignment{Horizontal: align, Vertical: "center"},
	}
	switch kind {
	case kindHeader:
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{w.cfg.HeaderFill}, Pattern: 1}
	case kindMultiHeader:
		st.Font.Bold = true
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{w.cfg.MultiHeaderFill}, Pattern: 1}
	}
	id, err := w.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}
	w.styles[key] = id
	return id, nil
}

func (w *sheetWriter) setCell(row, col int, v interface{}, styleID int) error {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, addr, v); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, addr, addr, styleID)
}

// mergeRegion объединяет область и проставляет стиль (в том числе рамку) каждой её ячейке.
func (w *sheetWriter) mergeRegion(r1, c1, r2, c2, styleID int) error {
	top, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	if err := w.f.MergeCell(w.sheet, top, bottom); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, top, bottom, styleID)
}

// setColWidths делит ширину в пикселях на divisor, колонкам без ширины ставит def.
func (w *sheetWriter) setColWidths(leaves []*HeaderNode, divisor int, def float64) error {
	for i, h := range leaves {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := def
		if h.Width > 0 {
			width = math.Floor(float64(h.Width) / float64(divisor))
		}
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// writeDataRows пишет строки данных начиная с startRow и возвращает номер последней
// записанной строки (startRow-1, если данных нет).
func (w *sheetWriter) writeDataRows(leaves []*HeaderNode, rows []Row, startRow int) (int, error) {
	row := startRow - 1
	for _, item := range rows {
		row++
		for i, h := range leaves {
			align := h.Align
			if align == "" {
				align = AlignLeft
			}
			sid, err := w.style(kindData, align)
			if err != nil {
				return row, err
			}
			if err := w.setCell(row, i+1, cellValue(h, item), sid); err != nil {
				return row, fmt.Errorf("data row %d: %w", row, err)
			}
		}
	}
	return row, nil
}

// cellValue вычисляет значение ячейки данных по типу колонки.
func cellValue(h *HeaderNode, item Row) interface{} {
	if item == nil {
		return ""
	}
	v, ok := item.Lookup(h.Key)
	if !ok {
		return ""
	}
	switch h.Type {
	case TypeButton, TypeIcon:
		return ""
	case TypeSelectbox:
		for _, it := range h.List {
			if !equalValues(it.Value, "") && equalValues(it.Value, v) {
				return it.Label
			}
		}
		return ""
	}
	if !truthy(v) {
		return ""
	}
	return valToCell(v)
}

// buildGridWorkbook собирает заголовок, многоуровневую шапку с объединениями и данные.
func buildGridWorkbook(cfg Config, grid Grid, title string, titleIndex int) (*excelize.File, Layout, error) {
	w, err := newSheetWriter(cfg)
	if err != nil {
		return nil, Layout{}, err
	}
	fail := func(err error) (*excelize.File, Layout, error) {
		w.f.Close()
		return nil, Layout{}, err
	}

	// [A] заголовок: две строки, две колонки
	titleStartCol := titleIndex + 1
	titleID, err := w.style(kindTitle, AlignCenter)
	if err != nil {
		return fail(err)
	}
	if err := w.setCell(cfg.TitleStartRow, titleStartCol, title, titleID); err != nil {
		return fail(fmt.Errorf("title: %w", err))
	}
	if err := w.mergeRegion(cfg.TitleStartRow, titleStartCol, cfg.TitleStartRow+1, titleStartCol+1, titleID); err != nil {
		return fail(fmt.Errorf("title merge: %w", err))
	}

	// [B] шапка
	layout := PlanHeaders(grid.Header, cfg.HeaderStartRow)
	headerID, err := w.style(kindHeader, AlignCenter)
	if err != nil {
		return fail(err)
	}
	for _, c := range layout.Cells {
		if err := w.setCell(c.Row, c.StartCol, c.Label, headerID); err != nil {
			return fail(fmt.Errorf("header %q: %w", c.Label, err))
		}
		if c.Merged() {
			if err := w.mergeRegion(c.Row, c.StartCol, c.EndRow(), c.EndCol, headerID); err != nil {
				return fail(fmt.Errorf("header %q merge: %w", c.Label, err))
			}
		}
	}
	if err := w.setColWidths(layout.Leaves, cfg.ColWidthDivisor, cfg.DefaultColWidth); err != nil {
		return fail(fmt.Errorf("column widths: %w", err))
	}

	// [C] данные сразу под шапкой
	if _, err := w.writeDataRows(layout.Leaves, grid.Data, layout.MaxRow+1); err != nil {
		return fail(err)
	}
	return w.f, layout, nil
}
