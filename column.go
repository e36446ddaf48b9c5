package gridsheet

import (
	"fmt"
	"strings"

	expro "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ColumnType задаёт поведение колонки грида.
type ColumnType string

const (
	TypeText      ColumnType = ""
	TypeDefault   ColumnType = "default"
	TypeButton    ColumnType = "button"
	TypeIcon      ColumnType = "icon"
	TypeSelectbox ColumnType = "selectbox"
	TypeCheckbox  ColumnType = "checkbox"
	TypeNumber    ColumnType = "number"
	TypeTextarea  ColumnType = "textarea"
	TypeSum       ColumnType = "sum"

	TypeYear          ColumnType = "year"
	TypeYears         ColumnType = "years"
	TypeMonth         ColumnType = "month"
	TypeMonths        ColumnType = "months"
	TypeDate          ColumnType = "date"
	TypeDates         ColumnType = "dates"
	TypeDatetime      ColumnType = "datetime"
	TypeWeek          ColumnType = "week"
	TypeDatetimeRange ColumnType = "datetimerange"
	TypeDateRange     ColumnType = "daterange"
	TypeMonthRange    ColumnType = "monthrange"
	TypeYearRange     ColumnType = "yearrange"
)

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

var datePickerTypes = map[ColumnType]struct{}{
	TypeYear: {}, TypeYears: {}, TypeMonth: {}, TypeMonths: {}, TypeDate: {}, TypeDates: {},
	TypeDatetime: {}, TypeWeek: {}, TypeDatetimeRange: {}, TypeDateRange: {}, TypeMonthRange: {}, TypeYearRange: {},
}

// IsDatePicker сообщает, редактируется ли колонка через выбор даты.
func (t ColumnType) IsDatePicker() bool {
	_, ok := datePickerTypes[t]
	return ok
}

// keyQualified сообщает, что у колонки нет собственного значения и она объединяется только по ключу.
func (t ColumnType) keyQualified() bool { return t == TypeDefault || t == TypeButton }

func (t ColumnType) cellDataType() string {
	switch t {
	case TypeYear, TypeYears:
		return "yearOnly"
	case TypeMonth, TypeMonths:
		return "monthOnly"
	case "day", "days":
		return "dayOnly"
	case TypeDatetime, "datetimes":
		return "dateTimeString"
	default:
		return "dateString"
	}
}

func (t ColumnType) cellEditor(inputType string) string {
	switch {
	case t == TypeSelectbox:
		return "agSelectCellEditor"
	case t == TypeNumber:
		return "agNumberCellEditor"
	case t == TypeTextarea || inputType == "textarea":
		return "agLargeTextCellEditor"
	case t.IsDatePicker():
		return "agDateCellEditor"
	default:
		return "agTextCellEditor"
	}
}

// FormatParams передаётся форматтеру значения.
type FormatParams struct {
	Value interface{}
	Row   Row
}

// ValueFormatter превращает значение ячейки в отображаемую строку.
type ValueFormatter func(p FormatParams) string

// SpanParams описывает пару соседних строк, которые грид предлагает объединить.
type SpanParams struct {
	ValueA, ValueB interface{}
	RowA, RowB     Row
}

// SpanFunc решает, объединять ли две соседние строки.
type SpanFunc func(p SpanParams) bool

type CellEditorParams struct {
	Values      []interface{} `json:"values"`
	IncludeTime bool          `json:"includeTime"`
}

// GridColumn описывает колонку в формате рендер-компонента грида.
type GridColumn struct {
	Field                   string           `json:"field"`
	HeaderName              string           `json:"headerName"`
	Filter                  interface{}      `json:"filter"`
	CellDataType            string           `json:"cellDataType,omitempty"`
	Sortable                bool             `json:"sortable"`
	CheckboxSelection       bool             `json:"checkboxSelection"`
	HeaderCheckboxSelection bool             `json:"headerCheckboxSelection"`
	Width                   int              `json:"width,omitempty"`
	Editable                bool             `json:"editable"`
	CellEditor              string           `json:"cellEditor"`
	CellEditorParams        CellEditorParams `json:"cellEditorParams"`
	Hide                    bool             `json:"hide"`
	Pinned                  string           `json:"pinned"`
	SuppressSizeToFit       bool             `json:"suppressSizeToFit"`
	Children                []*GridColumn    `json:"children,omitempty"`
	SpanRows                SpanFunc         `json:"-"`
	ValueFormatter          ValueFormatter   `json:"-"`
}

// Format применяет форматтер колонки, без него отдаёт значение как строку.
func (c *GridColumn) Format(row Row) string {
	var v interface{}
	if row != nil {
		v, _ = row.Lookup(c.Field)
	}
	if c.ValueFormatter == nil {
		return toString(v)
	}
	return c.ValueFormatter(FormatParams{Value: v, Row: row})
}

// ColumnOptions содержит необязательные параметры колонки; незаданные берутся из DefaultColumnOptions.
type ColumnOptions struct {
	Width          int
	Align          string
	Sortable       bool
	Visible        bool
	Edit           bool
	Fixed          bool
	List           []ListItem
	Merge          bool
	Filterable     bool
	SpanKey        string
	ValueFormatter ValueFormatter
	InputType      string
}

// DefaultColumnOptions возвращает значения по умолчанию для MapColumn.
func DefaultColumnOptions() ColumnOptions {
	return ColumnOptions{
		Align:     AlignCenter,
		Visible:   true,
		InputType: "text",
	}
}

type ColumnOption func(*ColumnOptions)

func WithWidth(px int) ColumnOption               { return func(o *ColumnOptions) { o.Width = px } }
func WithAlign(align string) ColumnOption         { return func(o *ColumnOptions) { o.Align = align } }
func WithSortable(v bool) ColumnOption            { return func(o *ColumnOptions) { o.Sortable = v } }
func WithVisible(v bool) ColumnOption             { return func(o *ColumnOptions) { o.Visible = v } }
func WithEdit(v bool) ColumnOption                { return func(o *ColumnOptions) { o.Edit = v } }
func WithFixed(v bool) ColumnOption               { return func(o *ColumnOptions) { o.Fixed = v } }
func WithList(items []ListItem) ColumnOption      { return func(o *ColumnOptions) { o.List = items } }
func WithMerge(v bool) ColumnOption               { return func(o *ColumnOptions) { o.Merge = v } }
func WithFilterable(v bool) ColumnOption          { return func(o *ColumnOptions) { o.Filterable = v } }
func WithSpanKey(key string) ColumnOption         { return func(o *ColumnOptions) { o.SpanKey = key } }
func WithInputType(inputType string) ColumnOption { return func(o *ColumnOptions) { o.InputType = inputType } }

// WithValueFormatter задаёт форматтер; для колонок с выбором даты он игнорируется,
// у них формат задаёт сам грид.
func WithValueFormatter(fn ValueFormatter) ColumnOption {
	return func(o *ColumnOptions) { o.ValueFormatter = fn }
}

// LabelPath склеивает составную подпись колонки.
func LabelPath(parts ...string) string { return strings.Join(parts, "") }

// MapColumn переводит декларативное описание колонки в конфигурацию грида.
func MapColumn(key, label string, typ ColumnType, children []*GridColumn, opts ...ColumnOption) *GridColumn {
	cfg := DefaultColumnOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	values := make([]interface{}, 0, len(cfg.List))
	for _, it := range cfg.List {
		values = append(values, it.Value)
	}

	col := &GridColumn{
		Field:                   key,
		HeaderName:              label,
		Filter:                  cfg.Filterable,
		Sortable:                cfg.Sortable,
		CheckboxSelection:       typ == TypeCheckbox,
		HeaderCheckboxSelection: typ == TypeCheckbox,
		Width:                   cfg.Width,
		Editable:                cfg.Edit,
		CellEditor:              typ.cellEditor(cfg.InputType),
		CellEditorParams: CellEditorParams{
			Values:      values,
			IncludeTime: typ == TypeDatetime,
		},
		Hide:              !cfg.Visible,
		SuppressSizeToFit: true,
		SpanRows:          spanFunc(cfg),
	}
	if typ == TypeCheckbox {
		col.Field = ""
	}
	if cfg.Fixed {
		col.Pinned = AlignLeft
	}
	if len(children) > 0 {
		col.Children = children
	}
	if typ.IsDatePicker() {
		col.Filter = "agDateColumnFilter"
		col.CellDataType = typ.cellDataType()
	} else {
		col.ValueFormatter = cfg.ValueFormatter
	}
	return col
}

func spanFunc(cfg ColumnOptions) SpanFunc {
	if !cfg.Merge {
		return nil
	}
	if cfg.SpanKey == "" {
		return func(p SpanParams) bool { return equalValues(p.ValueA, p.ValueB) }
	}
	key := cfg.SpanKey
	// с ключом объединяются только строки, где ключ задан у обеих и совпадает
	return func(p SpanParams) bool {
		a, okA := p.RowA[key]
		b, okB := p.RowB[key]
		return okA && okB && equalValues(a, b)
	}
}

// formatterEnv задаёт окружение выражений форматтера.
type formatterEnv struct {
	Value interface{}              `expr:"value"`
	Row   map[string]interface{}   `expr:"row"`
	Rate  func(interface{}) string `expr:"rate"`
	Comma func(interface{}) string `expr:"comma"`
	Str   func(interface{}) string `expr:"str"`
}

func newFormatterEnv(p FormatParams) formatterEnv {
	return formatterEnv{
		Value: p.Value,
		Row:   map[string]interface{}(p.Row),
		Rate:  func(v interface{}) string { return FormatRate(v, 2) },
		Comma: formatComma,
		Str:   toString,
	}
}

// CompileFormatter компилирует выражение expr-lang в ValueFormatter.
// Доступны value, row и функции rate(), comma(), str().
func CompileFormatter(src string) (ValueFormatter, error) {
	program, err := expro.Compile(src, expro.Env(formatterEnv{}))
	if err != nil {
		return nil, fmt.Errorf("compile formatter %q: %w", src, err)
	}
	return func(p FormatParams) string {
		out, err := runFormatter(program, p)
		if err != nil {
			logger().Warn().Err(err).Str("expr", src).Msg("⚠️ форматтер не отработал")
			return toString(p.Value)
		}
		return toString(out)
	}, nil
}

func runFormatter(program *vm.Program, p FormatParams) (interface{}, error) {
	return expro.Run(program, newFormatterEnv(p))
}
