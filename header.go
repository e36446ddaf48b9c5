package gridsheet

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// HeaderNode описывает узел дерева заголовков грида.
// Узел с непустым Children считается группой, иначе листом (ровно одна колонка данных).
type HeaderNode struct {
	Key         string        `yaml:"key" json:"key"`
	Label       string        `yaml:"label" json:"label"`
	Type        ColumnType    `yaml:"type" json:"type,omitempty"`
	Children    []*HeaderNode `yaml:"children" json:"children,omitempty"`
	Visible     *bool         `yaml:"visible" json:"visible,omitempty"`
	Excel       *bool         `yaml:"excel" json:"excel,omitempty"`
	Width       int           `yaml:"width" json:"width,omitempty"` // в пикселях, 0 если не задана
	Align       string        `yaml:"align" json:"align,omitempty"`
	Merge       bool          `yaml:"merge" json:"merge,omitempty"`
	MergeParent string        `yaml:"merge_parent" json:"mergeParent,omitempty"`
	SpanKey     string        `yaml:"span_key" json:"spanKey,omitempty"`
	List        []ListItem    `yaml:"list" json:"list,omitempty"`
}

// ListItem связывает value и label для колонок-справочников (selectbox).
type ListItem struct {
	Value interface{} `yaml:"value" json:"value"`
	Label string      `yaml:"label" json:"label"`
}

// IsLeaf: пустой Children трактуется как лист.
func (h *HeaderNode) IsLeaf() bool { return len(h.Children) == 0 }

// IsVisible возвращает false только при явном visible: false.
func (h *HeaderNode) IsVisible() bool { return h.Visible == nil || *h.Visible }

// IsExported возвращает false только при явном excel: false.
func (h *HeaderNode) IsExported() bool { return h.Excel == nil || *h.Excel }

func (h *HeaderNode) skippedForExport() bool { return !h.IsVisible() || !h.IsExported() }

// MaxDepth возвращает максимальную глубину дерева заголовков.
// Пропускаются только узлы с excel: false, видимость на глубину не влияет.
func MaxDepth(headers []*HeaderNode) int {
	return maxDepthFrom(headers, 1)
}

func maxDepthFrom(headers []*HeaderNode, depth int) int {
	max := depth
	for _, h := range headers {
		if h == nil || !h.IsExported() {
			continue
		}
		if !h.IsLeaf() {
			if d := maxDepthFrom(h.Children, depth+1); d > max {
				max = d
			}
		}
	}
	return max
}

// LeafCount считает конечные колонки под узлом.
// Группа, у которой все дети исключены, даёт 0.
func LeafCount(h *HeaderNode) int {
	if h.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range h.Children {
		if child == nil || child.skippedForExport() {
			continue
		}
		count += LeafCount(child)
	}
	return count
}

// VisibleLeaves собирает листья слева направо для живого грида (учитывается только visible).
func VisibleLeaves(headers []*HeaderNode) []*HeaderNode {
	var out []*HeaderNode
	var walk func([]*HeaderNode)
	walk = func(ns []*HeaderNode) {
		for _, h := range ns {
			if h == nil || !h.IsVisible() {
				continue
			}
			if h.IsLeaf() {
				out = append(out, h)
				continue
			}
			walk(h.Children)
		}
	}
	walk(headers)
	return out
}

// FindColumn ищет колонку по ключу: сначала среди листьев верхнего уровня,
// затем в глубину по группам.
func FindColumn(headers []*HeaderNode, key string) *HeaderNode {
	for _, h := range headers {
		if h != nil && h.IsLeaf() && h.Key == key {
			return h
		}
	}
	var walk func([]*HeaderNode) *HeaderNode
	walk = func(ns []*HeaderNode) *HeaderNode {
		for _, h := range ns {
			if h == nil || h.IsLeaf() {
				continue
			}
			for _, child := range h.Children {
				if child != nil && child.Key == key {
					return child
				}
			}
			if found := walk(h.Children); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(headers)
}

// LoadHeaders читает дерево заголовков из YAML, корнем служит список узлов.
func LoadHeaders(r io.Reader) ([]*HeaderNode, error) {
	var headers []*HeaderNode
	if err := yaml.NewDecoder(r).Decode(&headers); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode headers yaml: %w", err)
	}
	return headers, nil
}

// LoadHeadersFile читает заголовки из файла.
func LoadHeadersFile(path string) ([]*HeaderNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open headers file: %w", err)
	}
	defer f.Close()
	return LoadHeaders(f)
}
