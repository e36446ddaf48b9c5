package gridsheet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// RowIDKey задаёт синтетический ключ строки, который проставляет IndexRows.
const RowIDKey = "id"

// Row хранит строку данных грида как отображение ключ → значение.
type Row map[string]interface{}

// Lookup возвращает значение колонки. Если плоского ключа нет, а ключ похож на путь
// (dept.name, items[0]), значение ищется во вложенных данных.
func (r Row) Lookup(key string) (interface{}, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	if !strings.ContainsAny(key, ".[") {
		return nil, false
	}
	return drill(r, key)
}

// Grid объединяет дерево заголовков и данные одной таблицы.
type Grid struct {
	Header []*HeaderNode `yaml:"header" json:"header"`
	Data   []Row         `yaml:"data" json:"data"`
}

// IndexRows проставляет каждой строке id с 1. nil превращается в пустой срез.
// Строки меняются на месте: id должен жить столько же, сколько загруженный набор.
func IndexRows(rows []Row) []Row {
	if rows == nil {
		return []Row{}
	}
	for i, r := range rows {
		if r == nil {
			r = Row{}
			rows[i] = r
		}
		r[RowIDKey] = i + 1
	}
	return rows
}

// RealIndex ищет позицию строки с тем же значением key в rows, либо -1.
func RealIndex(rows []Row, row Row, key string) int {
	if row == nil {
		return -1
	}
	want, ok := row[key]
	if !ok {
		return -1
	}
	for i, r := range rows {
		if v, ok := r[key]; ok && equalValues(v, want) {
			return i
		}
	}
	return -1
}

// fenceRx извлекает JSON, обёрнутый в тройные кавычки ``` ... ```.
var fenceRx = regexp.MustCompile("(?s)```[a-zA-Z]*\\n(.*?)```")

func sanitizeJSONBlock(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	m := fenceRx.FindStringSubmatch(s)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return s
}

// DecodeRows разбирает JSON-массив объектов (в том числе внутри ```json ... ```).
// Пустой ввод даёт пустой набор строк.
func DecodeRows(src string) ([]Row, error) {
	src = strings.TrimSpace(sanitizeJSONBlock(src))
	if src == "" {
		return []Row{}, nil
	}
	var rows []Row
	if err := json.Unmarshal([]byte(src), &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}
