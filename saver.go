package gridsheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver принимает готовый файл выгрузки (сохранение на диск, отдача клиенту и т.п.).
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

// SaverFunc адаптирует функцию к Saver.
type SaverFunc func(ctx context.Context, filename string, data []byte) error

func (f SaverFunc) Save(ctx context.Context, filename string, data []byte) error {
	return f(ctx, filename, data)
}

// FileSaver пишет файлы в каталог Dir. Из имени берётся только базовая часть.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Save(ctx context.Context, filename string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFrom(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("файл записан")
	return nil
}
