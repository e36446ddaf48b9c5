package gridsheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config хранит параметры выгрузки. Значения по умолчанию совпадают с принятыми в гриде.
type Config struct {
	SheetName string
	FontName  string
	FontSize  float64

	// Одиночная выгрузка: заголовок в строках 2–3, шапка с 5-й строки.
	TitleStartRow   int
	HeaderStartRow  int
	HeaderFill      string
	DefaultColWidth float64
	ColWidthDivisor int

	// Несколько гридов на одном листе: шапка со 2-й строки, без заголовка.
	MultiHeaderStartRow  int
	MultiHeaderFill      string
	MultiDefaultColWidth float64
	MultiColWidthDivisor int

	SummaryLabel string
	ExportDir    string
	LogLevel     zerolog.Level
}

func DefaultConfig() Config {
	return Config{
		SheetName:            "Sheet1",
		FontName:             "Arial",
		FontSize:             10,
		TitleStartRow:        2,
		HeaderStartRow:       5,
		HeaderFill:           "CCFFFF",
		DefaultColWidth:      30,
		ColWidthDivisor:      10,
		MultiHeaderStartRow:  2,
		MultiHeaderFill:      "C0C0C0",
		MultiDefaultColWidth: 10,
		MultiColWidthDivisor: 14,
		SummaryLabel:         "총 합계",
		ExportDir:            ".",
		LogLevel:             zerolog.InfoLevel,
	}
}

// LoadConfig читает .env файлы (отсутствующие пропускаются) и переопределяет
// значения по умолчанию переменными GRIDSHEET_*.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load env %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	cfg.SheetName = getEnvString("GRIDSHEET_SHEET_NAME", cfg.SheetName)
	cfg.FontName = getEnvString("GRIDSHEET_FONT_NAME", cfg.FontName)
	cfg.FontSize = getEnvFloat("GRIDSHEET_FONT_SIZE", cfg.FontSize)
	cfg.TitleStartRow = getEnvInt("GRIDSHEET_TITLE_START_ROW", cfg.TitleStartRow)
	cfg.HeaderStartRow = getEnvInt("GRIDSHEET_HEADER_START_ROW", cfg.HeaderStartRow)
	cfg.HeaderFill = strings.TrimPrefix(getEnvString("GRIDSHEET_HEADER_FILL", cfg.HeaderFill), "#")
	cfg.DefaultColWidth = getEnvFloat("GRIDSHEET_DEFAULT_COL_WIDTH", cfg.DefaultColWidth)
	cfg.ColWidthDivisor = getEnvInt("GRIDSHEET_COL_WIDTH_DIVISOR", cfg.ColWidthDivisor)
	cfg.MultiHeaderStartRow = getEnvInt("GRIDSHEET_MULTI_HEADER_START_ROW", cfg.MultiHeaderStartRow)
	cfg.MultiHeaderFill = strings.TrimPrefix(getEnvString("GRIDSHEET_MULTI_HEADER_FILL", cfg.MultiHeaderFill), "#")
	cfg.MultiDefaultColWidth = getEnvFloat("GRIDSHEET_MULTI_DEFAULT_COL_WIDTH", cfg.MultiDefaultColWidth)
	cfg.MultiColWidthDivisor = getEnvInt("GRIDSHEET_MULTI_COL_WIDTH_DIVISOR", cfg.MultiColWidthDivisor)
	cfg.SummaryLabel = getEnvString("GRIDSHEET_SUMMARY_LABEL", cfg.SummaryLabel)
	cfg.ExportDir = getEnvString("GRIDSHEET_EXPORT_DIR", cfg.ExportDir)
	if lvl, err := zerolog.ParseLevel(getEnvString("GRIDSHEET_LOG_LEVEL", cfg.LogLevel.String())); err == nil {
		cfg.LogLevel = lvl
	}
	if cfg.ColWidthDivisor <= 0 || cfg.MultiColWidthDivisor <= 0 {
		return Config{}, errors.New("делитель ширины колонок должен быть положительным")
	}
	return cfg, nil
}

// ApplyLogLevel выставляет уровень логгера пакета из конфигурации.
func (c Config) ApplyLogLevel() {
	SetLogger(Logger().Level(c.LogLevel))
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
