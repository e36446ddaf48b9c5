package gridsheet

import (
	"encoding/json"
	"fmt"
)

// DefaultTab открывается по умолчанию.
const DefaultTab = "/guideGrid"

// UIState хранит состояние экрана: текущую вкладку и снимок видимости колонок.
// Передаётся явно тем, кому нужен, глобального экземпляра нет.
type UIState struct {
	CurrentTab        string `json:"curTab"`
	HeaderFilterState string `json:"headerFilterState"` // JSON
}

func NewUIState() *UIState {
	s := &UIState{}
	s.Reset()
	return s
}

// Reset возвращает состояние к начальному.
func (s *UIState) Reset() {
	s.CurrentTab = DefaultTab
	s.HeaderFilterState = ""
}

// SetHeaderFilterState сохраняет состояние фильтра шапки в сериализованном виде.
func (s *UIState) SetHeaderFilterState(state interface{}) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode header filter state: %w", err)
	}
	s.HeaderFilterState = string(b)
	return nil
}

// HeaderFilter разворачивает сохранённое состояние фильтра в out.
// Пустое состояние оставляет out без изменений.
func (s *UIState) HeaderFilter(out interface{}) error {
	if s.HeaderFilterState == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s.HeaderFilterState), out); err != nil {
		return fmt.Errorf("decode header filter state: %w", err)
	}
	return nil
}

// ApplyHeaderFilter проставляет видимость колонок из сохранённого состояния
// (ключ колонки → видима ли она). Колонки, которых нет в состоянии, не трогаются.
func (s *UIState) ApplyHeaderFilter(headers []*HeaderNode) error {
	visibility := map[string]bool{}
	if err := s.HeaderFilter(&visibility); err != nil {
		return err
	}
	var walk func([]*HeaderNode)
	walk = func(ns []*HeaderNode) {
		for _, h := range ns {
			if h == nil {
				continue
			}
			if v, ok := visibility[h.Key]; ok && h.Key != "" {
				v := v
				h.Visible = &v
			}
			walk(h.Children)
		}
	}
	walk(headers)
	return nil
}
