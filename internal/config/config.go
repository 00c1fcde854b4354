package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	DataPath    string
	CatalogPath string
	BaseURL     string // REST source; overrides DataPath when set
	Follow      bool
	Demo        bool
	Theme       Theme
	Offline     bool
	ShowVersion bool

	OpenAIModel      string
	OpenAIBase       string
	OpenAITimeoutSec int

	ExportFormat string
	ExportOut    string
}

func Load() (*Config, error) {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("gridlens", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.DataPath, "data", "", "path to dataset file (.jsonl or .csv)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "path to scenario catalog (.yaml)")
	fs.StringVar(&cfg.BaseURL, "url", getenvDefault("GRIDLENS_URL", ""), "REST source base URL (overrides -data)")
	fs.BoolVar(&cfg.Follow, "follow", false, "follow the dataset file (tail -f, JSONL only)")
	fs.BoolVar(&cfg.Demo, "demo", false, "run with a generated demo dataset")
	theme := string(ThemeDark)
	fs.StringVar(&theme, "theme", getenvDefault("GRIDLENS_THEME", string(ThemeDark)), "theme: dark|light")
	fs.BoolVar(&cfg.Offline, "offline", false, "disable OpenAI column refinement")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", getenvDefault("GRIDLENS_OPENAI_MODEL", "gpt-5-mini"), "OpenAI model override")
	fs.StringVar(&cfg.OpenAIBase, "openai-base-url", getenvDefault("GRIDLENS_OPENAI_BASE_URL", ""), "OpenAI base URL override")
	fs.IntVar(&cfg.OpenAITimeoutSec, "openai-timeout-sec", getenvDefaultInt("GRIDLENS_OPENAI_TIMEOUT_SEC", 60), "OpenAI request timeout in seconds")
	fs.StringVar(&cfg.ExportFormat, "export", "", "export the filtered view and exit: csv|json")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for export")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(theme)

	if cfg.ExportFormat != "" && cfg.ExportOut == "" {
		return nil, errors.New("--export requires --out path")
	}
	if cfg.DataPath == "" && cfg.BaseURL == "" {
		cfg.Demo = true
	}
	return cfg, nil
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

func (c *Config) String() string {
	return fmt.Sprintf("data=%s catalog=%s url=%s follow=%v demo=%v theme=%s offline=%v",
		c.DataPath, c.CatalogPath, c.BaseURL, c.Follow, c.Demo, c.Theme, c.Offline)
}
