package gridsheet_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nikitaxru/gridsheet"
)

// FormatSuite — форматирование показателей, дат и чисел
type FormatSuite struct {
	suite.Suite
}

func TestFormatSuite(t *testing.T) {
	suite.Run(t, new(FormatSuite))
}

func (s *FormatSuite) TestFormatRate() {
	s.Assert().Equal("12.5%", gridsheet.FormatRate(12.5, 2))
	s.Assert().Equal("12.35%", gridsheet.FormatRate(12.345678, 2))
	s.Assert().Equal("100%", gridsheet.FormatRate(100, 2), "нули в целой части остаются")
	s.Assert().Equal("100%", gridsheet.FormatRate(100, 0))
	s.Assert().Equal("0%", gridsheet.FormatRate("0", 1))
	s.Assert().Equal("7.1%", gridsheet.FormatRate("7.1", 3))
	s.Assert().Equal(gridsheet.BlankRate, gridsheet.FormatRate(nil, 2))
	s.Assert().Equal(gridsheet.BlankRate, gridsheet.FormatRate("n/a", 2))
	s.Assert().Equal(gridsheet.BlankRate, gridsheet.FormatRate(math.Inf(1), 2))
}

func (s *FormatSuite) TestFormatTime() {
	t := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)

	s.Assert().Equal("20240305", gridsheet.FormatTime(t, "", "-"))
	s.Assert().Equal("2024-03-05 14:07", gridsheet.FormatTime(t, "YYYY-MM-DD HH:mm", "-"))
	s.Assert().Equal("2024.03.05", gridsheet.FormatTime(&t, "YYYY.MM.DD", "-"))
	s.Assert().Equal("2024-03-05", gridsheet.FormatTime("20240305", "YYYY-MM-DD", "-"))
	s.Assert().Equal("05/03/24", gridsheet.FormatTime("2024-03-05 14:07:09", "DD/MM/YY", "-"))
	s.Assert().Equal("2024-03-05", gridsheet.FormatTime(t.UnixMilli(), "YYYY-MM-DD", "-"))

	s.Assert().Equal("-", gridsheet.FormatTime(nil, "", "-"))
	s.Assert().Equal("-", gridsheet.FormatTime("", "", "-"))
	s.Assert().Equal("-", gridsheet.FormatTime("not a date", "", "-"))
	s.Assert().Equal("-", gridsheet.FormatTime(time.Time{}, "", "-"))
	var nilTime *time.Time
	s.Assert().Equal("-", gridsheet.FormatTime(nilTime, "", "-"))
}

func (s *FormatSuite) TestFormatBizNo() {
	s.Assert().Equal("123-45-67890", gridsheet.FormatBizNo("1234567890"))
	s.Assert().Equal("123-45-67890", gridsheet.FormatBizNo("123-45-67890"))
	s.Assert().Equal("12345", gridsheet.FormatBizNo("12 345"))
	s.Assert().Equal("", gridsheet.FormatBizNo(nil))
}

func (s *FormatSuite) TestExtractNumber() {
	n, ok := gridsheet.ExtractNumber("итого 1234.5 руб")
	s.Require().True(ok)
	s.Assert().Equal(1234.5, n)

	n, ok = gridsheet.ExtractNumber("abc42def7")
	s.Require().True(ok)
	s.Assert().Equal(42.0, n)

	_, ok = gridsheet.ExtractNumber("нет цифр")
	s.Assert().False(ok)
}

func (s *FormatSuite) TestNumToKorean() {
	s.Assert().Equal("일백이십삼억사천오백육십칠만원", gridsheet.NumToKorean(123.4567))
	s.Assert().Equal("십억원", gridsheet.NumToKorean(10))
	s.Assert().Equal("오천사백억원", gridsheet.NumToKorean("5400"))
	s.Assert().Equal("영억오천만원", gridsheet.NumToKorean(0.5))
	s.Assert().Equal("일조이천삼백사십오억원", gridsheet.NumToKorean(12345))
	s.Assert().Equal("일조원", gridsheet.NumToKorean(10000))
	s.Assert().Equal("일경일억원", gridsheet.NumToKorean(100000001))
	s.Assert().Equal("", gridsheet.NumToKorean(1e12), "вне диапазона")
	s.Assert().Equal("", gridsheet.NumToKorean("abc"))
	s.Assert().Equal("", gridsheet.NumToKorean(-1))
	s.Assert().Equal("", gridsheet.NumToKorean(math.NaN()))
}

func (s *FormatSuite) TestIsEmpty() {
	for _, v := range []interface{}{nil, "", "null", "undefined", "NaN", math.NaN()} {
		s.Assert().True(gridsheet.IsEmpty(v), "%#v", v)
	}
	for _, v := range []interface{}{0, "0", false, " ", []interface{}{}} {
		s.Assert().False(gridsheet.IsEmpty(v), "%#v", v)
	}
}

func (s *FormatSuite) TestQuarterAndHalf() {
	cases := []struct {
		month   time.Month
		quarter int
		half    int
	}{
		{time.January, 1, 1},
		{time.March, 1, 1},
		{time.April, 2, 1},
		{time.June, 2, 1},
		{time.July, 3, 2},
		{time.October, 4, 2},
		{time.December, 4, 2},
	}
	for _, c := range cases {
		t := time.Date(2024, c.month, 15, 0, 0, 0, 0, time.UTC)
		s.Assert().Equal(c.quarter, gridsheet.CurrentQuarter(t), c.month.String())
		s.Assert().Equal(c.half, gridsheet.CurrentHalf(t), c.month.String())
	}
}
