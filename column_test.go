package gridsheet_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nikitaxru/gridsheet"
)

// ColumnSuite — описание колонок для грида и форматтеры значений
type ColumnSuite struct {
	suite.Suite
}

func TestColumnSuite(t *testing.T) {
	suite.Run(t, new(ColumnSuite))
}

func (s *ColumnSuite) TestDefaults() {
	col := gridsheet.MapColumn("name", "Имя", gridsheet.TypeText, nil)

	s.Assert().Equal("name", col.Field)
	s.Assert().Equal("Имя", col.HeaderName)
	s.Assert().Equal(false, col.Filter)
	s.Assert().False(col.Hide)
	s.Assert().False(col.Editable)
	s.Assert().Empty(col.Pinned)
	s.Assert().True(col.SuppressSizeToFit)
	s.Assert().Equal("agTextCellEditor", col.CellEditor)
	s.Assert().Nil(col.SpanRows)
	s.Assert().Nil(col.Children)
	s.Assert().Equal(gridsheet.AlignCenter, gridsheet.DefaultColumnOptions().Align)
}

func (s *ColumnSuite) TestOptions() {
	child := gridsheet.MapColumn("c", "C", gridsheet.TypeNumber, nil)
	col := gridsheet.MapColumn("g", "G", gridsheet.TypeText, []*gridsheet.GridColumn{child},
		gridsheet.WithWidth(120),
		gridsheet.WithVisible(false),
		gridsheet.WithEdit(true),
		gridsheet.WithFixed(true),
		gridsheet.WithFilterable(true),
		gridsheet.WithSortable(true),
		gridsheet.WithInputType("textarea"),
	)
	s.Assert().Equal(120, col.Width)
	s.Assert().True(col.Hide)
	s.Assert().True(col.Editable)
	s.Assert().Equal("left", col.Pinned)
	s.Assert().Equal(true, col.Filter)
	s.Assert().True(col.Sortable)
	s.Assert().Equal("agLargeTextCellEditor", col.CellEditor)
	s.Require().Len(col.Children, 1)
	s.Assert().Equal("agNumberCellEditor", col.Children[0].CellEditor)
}

func (s *ColumnSuite) TestCheckbox() {
	col := gridsheet.MapColumn("chk", "", gridsheet.TypeCheckbox, nil)
	s.Assert().Empty(col.Field)
	s.Assert().True(col.CheckboxSelection)
	s.Assert().True(col.HeaderCheckboxSelection)
}

func (s *ColumnSuite) TestDateColumn() {
	called := false
	col := gridsheet.MapColumn("dt", "Дата", gridsheet.TypeDatetime, nil,
		gridsheet.WithFilterable(true),
		gridsheet.WithValueFormatter(func(gridsheet.FormatParams) string { called = true; return "x" }),
	)
	s.Assert().Equal("agDateColumnFilter", col.Filter)
	s.Assert().Equal("dateTimeString", col.CellDataType)
	s.Assert().Equal("agDateCellEditor", col.CellEditor)
	s.Assert().True(col.CellEditorParams.IncludeTime)
	s.Assert().Nil(col.ValueFormatter, "у колонок с датой форматтер не ставится")
	s.Assert().Equal("2024-01-02", col.Format(gridsheet.Row{"dt": "2024-01-02"}))
	s.Assert().False(called)

	s.Assert().Equal("monthOnly", gridsheet.MapColumn("m", "", gridsheet.TypeMonth, nil).CellDataType)
	s.Assert().Equal("yearOnly", gridsheet.MapColumn("y", "", gridsheet.TypeYears, nil).CellDataType)
	s.Assert().Equal("dateString", gridsheet.MapColumn("d", "", gridsheet.TypeDateRange, nil).CellDataType)
	s.Assert().False(gridsheet.TypeSelectbox.IsDatePicker())
}

func (s *ColumnSuite) TestSelectbox() {
	col := gridsheet.MapColumn("st", "Статус", gridsheet.TypeSelectbox, nil,
		gridsheet.WithList([]gridsheet.ListItem{{Value: "Y", Label: "Да"}, {Value: "N", Label: "Нет"}}),
	)
	s.Assert().Equal("agSelectCellEditor", col.CellEditor)
	s.Assert().Equal([]interface{}{"Y", "N"}, col.CellEditorParams.Values)

	b, err := json.Marshal(col)
	s.Require().NoError(err)
	s.Assert().Contains(string(b), `"cellEditorParams":{"values":["Y","N"],"includeTime":false}`)
	s.Assert().NotContains(string(b), "SpanRows")
}

func (s *ColumnSuite) TestSpanRowsByValue() {
	col := gridsheet.MapColumn("g", "G", gridsheet.TypeText, nil, gridsheet.WithMerge(true))
	s.Require().NotNil(col.SpanRows)
	s.Assert().True(col.SpanRows(gridsheet.SpanParams{ValueA: "X", ValueB: "X"}))
	s.Assert().True(col.SpanRows(gridsheet.SpanParams{ValueA: 1, ValueB: 1.0}))
	s.Assert().False(col.SpanRows(gridsheet.SpanParams{ValueA: "X", ValueB: "Y"}))
}

func (s *ColumnSuite) TestSpanRowsByKey() {
	col := gridsheet.MapColumn("g", "G", gridsheet.TypeText, nil, gridsheet.WithMerge(true), gridsheet.WithSpanKey("k"))
	s.Require().NotNil(col.SpanRows)
	s.Assert().True(col.SpanRows(gridsheet.SpanParams{
		ValueA: "a", ValueB: "b",
		RowA: gridsheet.Row{"k": 1}, RowB: gridsheet.Row{"k": 1},
	}), "значения не важны, важен ключ")
	s.Assert().False(col.SpanRows(gridsheet.SpanParams{
		RowA: gridsheet.Row{"k": 1}, RowB: gridsheet.Row{"k": 2},
	}))
	s.Assert().False(col.SpanRows(gridsheet.SpanParams{
		RowA: gridsheet.Row{"k": nil}, RowB: gridsheet.Row{},
	}), "ключ должен быть у обеих строк")
}

func (s *ColumnSuite) TestCompileFormatter() {
	mul, err := gridsheet.CompileFormatter("value * 100")
	s.Require().NoError(err)
	s.Assert().Equal("150", mul(gridsheet.FormatParams{Value: 1.5}))

	rate, err := gridsheet.CompileFormatter("rate(value)")
	s.Require().NoError(err)
	s.Assert().Equal("12.5%", rate(gridsheet.FormatParams{Value: 12.5}))
	s.Assert().Equal(gridsheet.BlankRate, rate(gridsheet.FormatParams{}))

	comma, err := gridsheet.CompileFormatter("comma(value)")
	s.Require().NoError(err)
	s.Assert().Equal("1,234,567", comma(gridsheet.FormatParams{Value: 1234567}))

	greet, err := gridsheet.CompileFormatter(`row.name + "!"`)
	s.Require().NoError(err)
	s.Assert().Equal("Иван!", greet(gridsheet.FormatParams{Row: gridsheet.Row{"name": "Иван"}}))

	total, err := gridsheet.CompileFormatter("row.qty * row.price")
	s.Require().NoError(err)
	s.Assert().Equal("7.5", total(gridsheet.FormatParams{Row: gridsheet.Row{"qty": 3, "price": 2.5}}))

	col := gridsheet.MapColumn("name", "Имя", gridsheet.TypeText, nil, gridsheet.WithValueFormatter(greet))
	s.Assert().Equal("Петр!", col.Format(gridsheet.Row{"name": "Петр"}))
}

func (s *ColumnSuite) TestCompileFormatterErrors() {
	_, err := gridsheet.CompileFormatter("value +")
	s.Assert().Error(err)

	add, err := gridsheet.CompileFormatter("value + 1")
	s.Require().NoError(err)
	s.Assert().Equal("abc", add(gridsheet.FormatParams{Value: "abc"}), "ошибка выполнения — значение как есть")
}

func (s *ColumnSuite) TestFormatNestedField() {
	col := gridsheet.MapColumn("dept.name", "Отдел", gridsheet.TypeText, nil)
	row := gridsheet.Row{"dept": map[string]interface{}{"name": "ИТ"}}
	s.Assert().Equal("ИТ", col.Format(row))
	s.Assert().Equal("", col.Format(nil))
}

func (s *ColumnSuite) TestLabelPath() {
	s.Assert().Equal("2024년 1분기", gridsheet.LabelPath("2024년", " ", "1분기"))
}
