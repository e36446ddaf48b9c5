package gridsheet

// MergeDecision задаёт размер ячейки при построчном объединении.
// (0,0): ячейка покрыта объединением выше и не рисуется,
// (1,1): обычная ячейка, (n>1,1): начало объединения на n строк.
type MergeDecision struct {
	RowSpan int `json:"rowspan"`
	ColSpan int `json:"colspan"`
}

var (
	Covered = MergeDecision{RowSpan: 0, ColSpan: 0}
	Single  = MergeDecision{RowSpan: 1, ColSpan: 1}
)

// CellRef указывает ячейку, о которой спрашивает рендерер грида.
type CellRef struct {
	Row      Row
	Property string
	Type     ColumnType
}

type runState int

const (
	stateIndependent runState = iota
	stateNewRun
	stateContinuation
)

// RowMerge решает, как отрисовать ячейку ref. mergeKey задаёт необязательный вторичный ключ
// группировки. Данные не изменяются, повторный вызов даёт тот же результат.
func RowMerge(grid Grid, ref CellRef, mergeKey string) MergeDecision {
	idx := RealIndex(grid.Data, ref.Row, RowIDKey)
	if idx < 0 {
		return Single
	}
	var col *HeaderNode
	switch ref.Type {
	case TypeDefault:
		col = keylessColumn(grid.Header)
	default:
		col = FindColumn(grid.Header, ref.Property)
	}
	if col == nil || !col.Merge {
		return Single
	}
	m := runScanner{data: grid.Data, idx: idx, prop: ref.Property, parent: col.MergeParent, key: mergeKey}
	var state runState
	var match func(int) bool
	if ref.Type.keyQualified() {
		state, match = m.keyQualifiedState()
	} else {
		state, match = m.valueState()
	}
	return m.decision(state, match)
}

// keylessColumn ищет колонку верхнего уровня без ключа (служебную колонку строки).
func keylessColumn(headers []*HeaderNode) *HeaderNode {
	for _, h := range headers {
		if h != nil && h.Key == "" {
			return h
		}
	}
	return nil
}

type runScanner struct {
	data   []Row
	idx    int
	prop   string
	parent string
	key    string
}

// field читает значение строки i так же, как экспорт: с учётом вложенных ключей.
func (m runScanner) field(i int, key string) interface{} {
	if key == "" || m.data[i] == nil {
		return nil
	}
	v, _ := m.data[i].Lookup(key)
	return v
}

func (m runScanner) sameKey(i, j int) bool {
	return equalValues(m.field(i, m.key), m.field(j, m.key))
}

func (m runScanner) sameValue(i, j int) bool {
	return equalValues(m.field(i, m.prop), m.field(j, m.prop))
}

func (m runScanner) sameParent(i, j int) bool {
	return m.parent == "" || equalValues(m.field(i, m.parent), m.field(j, m.parent))
}

// keyBoundary: первая строка или вторичный ключ сменился относительно предыдущей.
func (m runScanner) keyBoundary() bool { return m.idx == 0 || !m.sameKey(m.idx, m.idx-1) }

// valueBoundary: значение колонки сменилось относительно предыдущей строки.
func (m runScanner) valueBoundary() bool { return m.idx == 0 || !m.sameValue(m.idx, m.idx-1) }

// keyQualifiedState объединяет служебные колонки (кнопки и т.п.) только по ключу.
func (m runScanner) keyQualifiedState() (runState, func(int) bool) {
	if m.keyBoundary() {
		return stateNewRun, func(i int) bool { return m.sameKey(i, m.idx) }
	}
	return stateContinuation, nil
}

func (m runScanner) valueState() (runState, func(int) bool) {
	gated := func(i int) bool {
		return m.sameValue(i, m.idx) && m.sameParent(i, m.idx) && m.sameKey(i, m.idx)
	}
	switch {
	case m.keyBoundary():
		return stateNewRun, gated
	case m.valueBoundary():
		// ключ здесь не проверяется: серия может перейти границу ключа
		return stateNewRun, func(i int) bool {
			return m.sameValue(i, m.idx) && m.sameParent(i, m.idx)
		}
	case m.sameParent(m.idx, m.idx-1):
		return stateContinuation, nil
	default:
		// значение то же, но родитель сменился: новая серия
		return stateNewRun, gated
	}
}

func (m runScanner) decision(state runState, match func(int) bool) MergeDecision {
	switch state {
	case stateContinuation:
		return Covered
	case stateNewRun:
		n := 1
		for i := m.idx + 1; i < len(m.data) && match(i); i++ {
			n++
		}
		if n > 1 {
			return MergeDecision{RowSpan: n, ColSpan: 1}
		}
	}
	return Single
}

type mergeCacheKey struct {
	idx  int
	prop string
	typ  ColumnType
}

// MergePass кэширует решения в пределах одного прохода рендера.
// После изменения данных нужен новый MergePass.
type MergePass struct {
	grid     Grid
	mergeKey string
	cache    map[mergeCacheKey]MergeDecision
}

func NewMergePass(grid Grid, mergeKey string) *MergePass {
	return &MergePass{grid: grid, mergeKey: mergeKey, cache: make(map[mergeCacheKey]MergeDecision)}
}

// Decide вызывает RowMerge с кэшем.
func (p *MergePass) Decide(ref CellRef) MergeDecision {
	idx := RealIndex(p.grid.Data, ref.Row, RowIDKey)
	if idx < 0 {
		return Single
	}
	k := mergeCacheKey{idx: idx, prop: ref.Property, typ: ref.Type}
	if d, ok := p.cache[k]; ok {
		return d
	}
	d := RowMerge(p.grid, ref, p.mergeKey)
	p.cache[k] = d
	return d
}
