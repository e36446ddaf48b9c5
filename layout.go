package gridsheet

// CellPlacement задаёт прямоугольную область одного узла заголовка в сетке (адресация с 1).
type CellPlacement struct {
	Label        string
	Row          int
	StartCol     int
	EndCol       int
	RowSpan      int
	Depth        int
	IsLeaf       bool
	IsGroupStart bool
	Width        int
	Align        string
}

// EndRow возвращает последнюю строку области.
func (c CellPlacement) EndRow() int { return c.Row + c.RowSpan - 1 }

// Merged сообщает, занимает ли ячейка больше одной строки или колонки.
func (c CellPlacement) Merged() bool { return c.RowSpan > 1 || c.EndCol > c.StartCol }

// CenterRow возвращает строку подписи при вертикальном центрировании:
// середина при нечётном RowSpan, нижняя строка при чётном.
func (c CellPlacement) CenterRow() int {
	if c.RowSpan%2 == 1 {
		return c.Row + c.RowSpan/2
	}
	return c.EndRow()
}

// Layout хранит результат планирования: ячейки в pre-order и листья слева направо.
type Layout struct {
	Cells  []CellPlacement
	Leaves []*HeaderNode
	MaxRow int
}

// PlanHeaders раскладывает дерево, начиная со строки startRow и первой колонки.
// Нижняя строка заголовка вычисляется из MaxDepth.
func PlanHeaders(headers []*HeaderNode, startRow int) Layout {
	return PlanLayout(headers, startRow, 1, startRow+MaxDepth(headers)-1)
}

// PlanLayout раскладывает дерево заголовков по сетке.
// Листья тянутся вниз до maxRow, группа занимает одну строку, её дети идут ниже.
// Функция чистая: аккумулятор передаётся через возвращаемые значения.
func PlanLayout(headers []*HeaderNode, row, startCol, maxRow int) Layout {
	acc := Layout{MaxRow: maxRow}
	return planLevel(acc, headers, levelPos{row: row, col: startCol, depth: 1}, maxRow)
}

type levelPos struct {
	row       int
	col       int
	depth     int
	hasParent bool
}

func planLevel(acc Layout, headers []*HeaderNode, pos levelPos, maxRow int) Layout {
	cursor := pos.col
	for _, h := range headers {
		if h == nil || h.skippedForExport() {
			continue
		}
		isLeaf := h.IsLeaf()
		leafCount := LeafCount(h)
		if leafCount == 0 {
			// группа без единой видимой колонки не занимает места
			continue
		}
		rowSpan := 1
		if isLeaf {
			rowSpan = maxRow - pos.row + 1
		}
		align := h.Align
		if align == "" {
			align = AlignLeft
		}
		acc.Cells = append(acc.Cells, CellPlacement{
			Label:        h.Label,
			Row:          pos.row,
			StartCol:     cursor,
			EndCol:       cursor + leafCount - 1,
			RowSpan:      rowSpan,
			Depth:        pos.depth,
			IsLeaf:       isLeaf,
			IsGroupStart: !pos.hasParent || cursor == pos.col,
			Width:        h.Width,
			Align:        align,
		})
		if isLeaf {
			acc.Leaves = append(acc.Leaves, h)
		} else {
			acc = planLevel(acc, h.Children, levelPos{row: pos.row + 1, col: cursor, depth: pos.depth + 1, hasParent: true}, maxRow)
		}
		cursor += leafCount
	}
	return acc
}

type groupKey struct {
	label string
	row   int
}

// groupStartCols находит для групп второго уровня минимальную начальную колонку
// среди повторов одной и той же подписи в одной строке.
func groupStartCols(cells []CellPlacement) map[groupKey]int {
	starts := make(map[groupKey]int)
	for _, c := range cells {
		if c.Depth != 2 || c.IsLeaf {
			continue
		}
		k := groupKey{label: c.Label, row: c.Row}
		if cur, ok := starts[k]; !ok || cur > c.StartCol {
			starts[k] = c.StartCol
		}
	}
	return starts
}
