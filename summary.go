package gridsheet

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// subTotalID помечает служебные строки промежуточных итогов, они не входят в общий итог.
const subTotalID = "subTotal"

var commaPrinter = message.NewPrinter(language.English)

// Summary строит строку итогов: в первой колонке подпись, в колонках типа sum
// сумма числовых значений с разделителями разрядов, в остальных пусто.
// Колонки берутся с верхнего уровня, группы раскрываются на один уровень.
func Summary(headers []*HeaderNode, rows []Row, label string) []string {
	var cols []*HeaderNode
	for _, h := range headers {
		if h == nil {
			continue
		}
		if !h.IsLeaf() {
			cols = append(cols, h.Children...)
			continue
		}
		cols = append(cols, h)
	}

	sums := make([]string, len(cols))
	for idx, col := range cols {
		if idx == 0 {
			sums[idx] = label
			continue
		}
		if col == nil || col.Type != TypeSum {
			continue
		}
		total, found := 0.0, false
		for _, r := range rows {
			if id, ok := r[RowIDKey]; ok && equalValues(id, subTotalID) {
				continue
			}
			v, ok := r.Lookup(col.Key)
			n, valid := cellNumber(v, ok)
			if !valid {
				continue
			}
			total += n
			found = true
		}
		if found {
			sums[idx] = formatComma(total)
		}
	}
	return sums
}

// cellNumber приводит значение ячейки к числу по правилам грида:
// отсутствующее не считается числом, nil и пустая строка дают 0.
func cellNumber(v interface{}, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	switch vv := v.(type) {
	case nil:
		return 0, true
	case bool:
		if vv {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(vv)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	if f, ok := toFloat(v); ok && !math.IsNaN(f) {
		return f, true
	}
	return 0, false
}

// formatComma форматирует число с разделителями разрядов: 1234567.5 → "1,234,567.5".
func formatComma(v interface{}) string {
	f, ok := cellNumber(v, true)
	if !ok || v == nil {
		return toString(v)
	}
	return commaPrinter.Sprintf("%v", number.Decimal(f))
}
