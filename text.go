package gridsheet

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteText пишет строки грида как текст: одна строка на запись, значения колонок
// в порядке листьев через пробел. При aligned колонки выравниваются по ширине
// отображения (широкие символы занимают две позиции).
func WriteText(w io.Writer, grid Grid, aligned bool) error {
	leaves := PlanHeaders(grid.Header, 1).Leaves
	lines := make([][]string, 0, len(grid.Data))
	for _, item := range grid.Data {
		vals := make([]string, len(leaves))
		for i, h := range leaves {
			vals[i] = toString(cellValue(h, item))
		}
		lines = append(lines, vals)
	}

	var widths []int
	if aligned {
		widths = make([]int, len(leaves))
		for _, vals := range lines {
			for i, v := range vals {
				if n := runewidth.StringWidth(v); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	bw := bufio.NewWriter(w)
	for li, vals := range lines {
		if aligned {
			for i := range vals {
				if i < len(vals)-1 {
					vals[i] = runewidth.FillRight(vals[i], widths[i])
				}
			}
		}
		if li > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(strings.Join(vals, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportText выгружает строки грида текстовым файлом. Пустой набор данных ничего не сохраняет.
func (e *Exporter) ExportText(ctx context.Context, grid Grid, fileName string, aligned bool) error {
	if len(grid.Data) == 0 {
		return nil
	}
	if e.saver == nil {
		return ErrNilSaver
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, grid, aligned); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	if err := e.saver.Save(ctx, fileName, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	loggerFrom(ctx).Info().Str("file", fileName).Int("rows", len(grid.Data)).Msg("📄 Текстовая выгрузка сохранена")
	return nil
}
