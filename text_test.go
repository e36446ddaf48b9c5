package gridsheet_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nikitaxru/gridsheet"
)

// TextSuite — текстовая выгрузка строк
type TextSuite struct {
	suite.Suite
}

func TestTextSuite(t *testing.T) {
	suite.Run(t, new(TextSuite))
}

func textGrid() gridsheet.Grid {
	return gridsheet.Grid{
		Header: []*gridsheet.HeaderNode{
			{Key: "name", Label: "Имя"},
			{Key: "n", Label: "N"},
			{Key: "hidden", Label: "H", Excel: boolPtr(false)},
		},
		Data: []gridsheet.Row{
			{"name": "가나", "n": 1, "hidden": "x"},
			{"name": "c", "n": 22},
		},
	}
}

func (s *TextSuite) TestPlain() {
	var buf bytes.Buffer
	grid := gridsheet.Grid{
		Header: []*gridsheet.HeaderNode{{Key: "name"}, {Key: "n"}},
		Data:   []gridsheet.Row{{"name": "x", "n": 1}},
	}
	s.Require().NoError(gridsheet.WriteText(&buf, grid, false))
	s.Assert().Equal("x 1", buf.String())
}

func (s *TextSuite) TestAligned() {
	var buf bytes.Buffer
	s.Require().NoError(gridsheet.WriteText(&buf, textGrid(), true))
	s.Assert().Equal("가나 1\nc    22", buf.String())
}

func (s *TextSuite) TestExportText() {
	saved := map[string]string{}
	exp := gridsheet.NewExporter(gridsheet.DefaultConfig(), gridsheet.SaverFunc(
		func(_ context.Context, name string, data []byte) error {
			saved[name] = string(data)
			return nil
		}))

	s.Require().NoError(exp.ExportText(context.Background(), textGrid(), "rows.txt", false))
	s.Assert().Equal("가나 1\nc 22", saved["rows.txt"])

	empty := textGrid()
	empty.Data = nil
	s.Require().NoError(exp.ExportText(context.Background(), empty, "empty.txt", false))
	_, ok := saved["empty.txt"]
	s.Assert().False(ok, "пустой набор не сохраняется")

	err := gridsheet.NewExporter(gridsheet.DefaultConfig(), nil).ExportText(context.Background(), textGrid(), "x.txt", false)
	s.Assert().ErrorIs(err, gridsheet.ErrNilSaver)
}
