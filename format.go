package gridsheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BlankRate подставляется вместо отсутствующего показателя.
const BlankRate = "    "

// FormatRate форматирует показатель в процентах с places знаками после запятой,
// отбрасывая хвостовые нули: 12.50 → "12.5%". nil и нечисловой ввод дают BlankRate.
func FormatRate(rate interface{}, places int) string {
	if rate == nil {
		return BlankRate
	}
	f, ok := cellNumber(rate, true)
	if !ok || math.IsInf(f, 0) {
		return BlankRate
	}
	if places < 0 {
		places = 0
	}
	s := strconv.FormatFloat(f, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s + "%"
}

// dayjs-подобные токены формата → раскладка time.
var layoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
	"HH", "15",
	"hh", "03",
	"h", "3",
	"mm", "04",
	"m", "4",
	"ss", "05",
	"s", "5",
	"SSS", "000",
	"A", "PM",
	"a", "pm",
)

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102150405",
	"20060102",
	"2006-01",
	"200601",
}

// FormatTime переводит дату в строку по шаблону вида "YYYY-MM-DD HH:mm".
// Пустое или неразборчивое значение даёт fallback, пустой шаблон означает "YYYYMMDD".
func FormatTime(data interface{}, form, fallback string) string {
	if form == "" {
		form = "YYYYMMDD"
	}
	var t time.Time
	switch v := data.(type) {
	case nil:
		return fallback
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return fallback
		}
		t = *v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return fallback
		}
		parsed, ok := parseTime(s)
		if !ok {
			return fallback
		}
		t = parsed
	default:
		ms, ok := toFloat(v)
		if !ok || ms == 0 {
			return fallback
		}
		// числа считаются миллисекундами Unix
		t = time.UnixMilli(int64(ms))
	}
	if t.IsZero() {
		return fallback
	}
	return t.Format(layoutReplacer.Replace(form))
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var nonDigitRx = regexp.MustCompile(`\D`)

// FormatBizNo оставляет только цифры и для 10 цифр приводит номер к виду XXX-XX-XXXXX.
func FormatBizNo(val interface{}) string {
	digits := nonDigitRx.ReplaceAllString(toString(val), "")
	if len(digits) != 10 {
		return digits
	}
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

var numberRx = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractNumber находит первое число в строке (целое или с дробной частью).
func ExtractNumber(input string) (float64, bool) {
	m := numberRx.FindString(input)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var (
	korDigits = []string{"영", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}
	korUnits  = []string{"", "십", "백", "천"}
)

// numberToKorean читает целое 0..9999 по-корейски: 5400 → "오천사백".
func numberToKorean(num int64) string {
	s := strconv.FormatInt(num, 10)
	var res string
	for i := 0; i < len(s); i++ {
		d := s[len(s)-1-i] - '0'
		if d == 0 {
			continue
		}
		unit := ""
		if i < len(korUnits) {
			unit = korUnits[i]
		}
		kor := korDigits[d]
		if kor == "일" && unit == "십" {
			res = unit + res
		} else {
			res = kor + unit + res
		}
	}
	if res == "" {
		return korDigits[0]
	}
	return res
}

// korGroupUnits подписывают четырёхзначные группы целой части, которая считается в 억.
var korGroupUnits = []string{"억", "조", "경"}

// NumToKorean читает сумму в 억 (целая часть, группами по четыре знака: 억, 조, 경)
// и 만 (до 4 знаков дробной части): 123.4567 → "일백이십삼억사천오백육십칠만원",
// 12345 → "일조이천삼백사십오억원". Нечисловой, отрицательный ввод и целая часть
// от 10^12 дают "".
func NumToKorean(input interface{}) string {
	var num float64
	switch v := input.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return ""
		}
		num = f
	default:
		f, ok := toFloat(v)
		if !ok {
			return ""
		}
		num = f
	}
	if math.IsNaN(num) || math.IsInf(num, 0) || num < 0 {
		return ""
	}
	eok := math.Floor(num)
	if eok >= 1e12 {
		return ""
	}
	res := eokToKorean(int64(eok))
	if man := int64(math.Round((num - eok) * 10000)); man > 0 {
		res += numberToKorean(man) + "만"
	}
	return res + "원"
}

// eokToKorean разбивает число на группы по четыре знака и подписывает их единицами korGroupUnits.
func eokToKorean(n int64) string {
	if n == 0 {
		return korDigits[0] + korGroupUnits[0]
	}
	var res string
	for i := 0; n > 0; i++ {
		if g := n % 10000; g > 0 {
			res = numberToKorean(g) + korGroupUnits[i] + res
		}
		n /= 10000
	}
	return res
}

// IsEmpty сообщает об отсутствии значения: nil, пустая строка, "null", "undefined", NaN.
func IsEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		switch v {
		case "", "null", "undefined", "NaN":
			return true
		}
		return false
	}
	if f, ok := toFloat(value); ok {
		return math.IsNaN(f)
	}
	return false
}

// CurrentQuarter возвращает квартал (1..4) для момента t.
func CurrentQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// CurrentHalf возвращает полугодие (1 или 2) для момента t.
func CurrentHalf(t time.Time) int {
	if t.Month() <= time.June {
		return 1
	}
	return 2
}
