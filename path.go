package gridsheet

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// drill спускается по пути вида a.b[1].c во вложенных данных строки.
func drill(v interface{}, path string) (interface{}, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	rest := path
	for rest != "" {
		seg, tail := nextSeg(rest)
		if strings.HasPrefix(seg, "[") {
			// индекс
			arr, ok := cur.([]interface{})
			if !ok {
				return nil, false
			}
			i, err := strconv.Atoi(strings.Trim(seg, "[]"))
			if err != nil || i < 0 || i >= len(arr) {
				return nil, false
			}
			cur = arr[i]
		} else {
			var m map[string]interface{}
			switch mm := cur.(type) {
			case Row:
				m = mm
			case map[string]interface{}:
				m = mm
			default:
				return nil, false
			}
			nv, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = nv
		}
		rest = tail
	}
	return cur, true
}

func nextSeg(path string) (seg string, tail string) {
	if path == "" {
		return "", ""
	}
	if path[0] == '[' {
		if i := strings.Index(path, "]"); i >= 0 {
			seg = path[:i+1]
			if i+1 < len(path) && path[i+1] == '.' {
				tail = path[i+2:]
			} else {
				tail = path[i+1:]
			}
			return
		}
	}
	i := 0
	for i < len(path) && path[i] != '.' && path[i] != '[' {
		i++
	}
	seg = path[:i]
	if i < len(path) && path[i] == '.' {
		tail = path[i+1:]
	} else {
		tail = path[i:]
	}
	return
}

func toString(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		if vv == float64(int64(vv)) {
			return strconv.FormatInt(int64(vv), 10)
		}
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		if vv {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// truthy повторяет правила «пустых» значений грида: nil, false, 0, "" и NaN ложны.
func truthy(v interface{}) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case string:
		return vv != ""
	case []interface{}:
		return len(vv) > 0
	case map[string]interface{}:
		return len(vv) > 0
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && f == f
	}
	return true
}

// toFloat приводит числовые типы к float64.
func toFloat(v interface{}) (float64, bool) {
	switch vv := v.(type) {
	case float64:
		return vv, true
	case float32:
		return float64(vv), true
	case int:
		return float64(vv), true
	case int8:
		return float64(vv), true
	case int16:
		return float64(vv), true
	case int32:
		return float64(vv), true
	case int64:
		return float64(vv), true
	case uint:
		return float64(vv), true
	case uint8:
		return float64(vv), true
	case uint16:
		return float64(vv), true
	case uint32:
		return float64(vv), true
	case uint64:
		return float64(vv), true
	default:
		return 0, false
	}
}

// equalValues сравнивает значения ячеек; числа разных типов сравниваются как float64.
func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
