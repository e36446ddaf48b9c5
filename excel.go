package gridsheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNilSaver возвращается, если у выгрузки нет получателя файла.
var ErrNilSaver = errors.New("gridsheet: saver is nil")

const xlsxExt = ".xlsx"

// Exporter строит книги Excel по гридам и передаёт готовый буфер в Saver.
// Каждый вызов создаёт собственную книгу, поэтому Exporter можно использовать конкурентно.
type Exporter struct {
	cfg   Config
	saver Saver
}

func NewExporter(cfg Config, saver Saver) *Exporter {
	return &Exporter{cfg: cfg, saver: saver}
}

// Config возвращает конфигурацию выгрузки.
func (e *Exporter) Config() Config { return e.cfg }

// BuildGrid строит книгу одиночной выгрузки. Файл закрывает вызывающий.
func (e *Exporter) BuildGrid(grid Grid, title string, titleIndex int) (*excelize.File, error) {
	f, _, err := buildGridWorkbook(e.cfg, grid, title, titleIndex)
	return f, err
}

// BuildMultiGrid строит книгу с несколькими гридами на одном листе.
func (e *Exporter) BuildMultiGrid(grids []Grid) (*excelize.File, error) {
	return buildMultiGridWorkbook(e.cfg, grids)
}

// ExportGrid выгружает один грид: заголовок в строках 2–3 (со сдвигом titleIndex колонок),
// шапка с 5-й строки, данные сразу под ней. Имя файла передаётся как есть.
func (e *Exporter) ExportGrid(ctx context.Context, grid Grid, fileName, title string, titleIndex int) error {
	log := loggerFrom(ctx)
	log.Info().Str("file", fileName).Int("rows", len(grid.Data)).Msg("📊 Начинаем выгрузку грида в Excel...")
	startTime := time.Now()

	f, layout, err := buildGridWorkbook(e.cfg, grid, title, titleIndex)
	if err != nil {
		log.Error().Err(err).Msg("❌ Ошибка построения книги")
		return err
	}
	log.Debug().Int("cells", len(layout.Cells)).Int("columns", len(layout.Leaves)).Int("header_max_row", layout.MaxRow).Msg("шапка разложена")

	if err := e.save(ctx, f, fileName); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(startTime)).Str("file", fileName).Msg("✅ Excel файл создан")
	return nil
}

// ExportMultiGrid выгружает несколько гридов на один лист. Без расширения .xlsx
// оно добавляется к имени файла.
func (e *Exporter) ExportMultiGrid(ctx context.Context, grids []Grid, fileName string) error {
	if !strings.HasSuffix(strings.ToLower(fileName), xlsxExt) {
		fileName += xlsxExt
	}
	log := loggerFrom(ctx)
	log.Info().Str("file", fileName).Int("grids", len(grids)).Msg("📊 Начинаем выгрузку нескольких гридов в Excel...")
	startTime := time.Now()

	f, err := buildMultiGridWorkbook(e.cfg, grids)
	if err != nil {
		log.Error().Err(err).Msg("❌ Ошибка построения книги")
		return err
	}
	if err := e.save(ctx, f, fileName); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(startTime)).Str("file", fileName).Msg("✅ Excel файл создан")
	return nil
}

// save сериализует книгу в буфер и отдаёт его Saver. Книга закрывается в любом случае.
func (e *Exporter) save(ctx context.Context, f *excelize.File, fileName string) error {
	defer f.Close()
	if e.saver == nil {
		return ErrNilSaver
	}
	log := loggerFrom(ctx)
	log.Debug().Msg("💾 Сериализация книги...")
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Msg("❌ Ошибка сериализации")
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := e.saver.Save(ctx, fileName, buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("❌ Ошибка сохранения")
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	return nil
}

// valToCell нормализует значение перед записью в Excel.
// Числа, строки, даты и bool пишутся как есть, коллекции сворачиваются в строку.
func valToCell(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	switch vv := v.(type) {
	case string, bool, time.Time:
		return vv
	case []interface{}:
		allStr := true
		strs := make([]string, len(vv))
		for i, it := range vv {
			if s, ok := it.(string); ok {
				strs[i] = s
			} else {
				allStr = false
				break
			}
		}
		if allStr {
			return strings.Join(strs, ", ")
		}
		b, _ := json.Marshal(vv)
		return string(b)
	case map[string]interface{}:
		b, _ := json.Marshal(vv)
		return string(b)
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return fmt.Sprintf("%v", v)
}
