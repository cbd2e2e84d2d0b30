package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"puissancen/grid"
)

// Config regroupe les réglages du serveur.
type Config struct {
	Port       string
	BoardWidth int
	WinLength  int
	LogLevel   log.Level
	PartyTTL   time.Duration
}

// Load lit, dans l'ordre, le fichier .env (s'il existe), les variables
// d'environnement puis les arguments de la ligne de commande.
func Load(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:       getenv("PORT", "8080"),
		BoardWidth: grid.DefaultWidth,
		WinLength:  4,
		PartyTTL:   2 * time.Hour,
	}
	var err error
	if cfg.BoardWidth, err = atoiEnv("BOARD_WIDTH", cfg.BoardWidth); err != nil {
		return Config{}, err
	}
	if cfg.WinLength, err = atoiEnv("WIN_LENGTH", cfg.WinLength); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("PARTY_TTL"); v != "" {
		if cfg.PartyTTL, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("PARTY_TTL: %w", err)
		}
	}
	level := getenv("LOG_LEVEL", "info")

	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	fset.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	fset.IntVar(&cfg.BoardWidth, "width", cfg.BoardWidth, "board width (and height)")
	fset.IntVar(&cfg.WinLength, "win", cfg.WinLength, "winning run length")
	fset.DurationVar(&cfg.PartyTTL, "party-ttl", cfg.PartyTTL, "idle party lifetime")
	fset.StringVar(&level, "log-level", level, "logrus level")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = log.ParseLevel(level); err != nil {
		return Config{}, err
	}
	if cfg.PartyTTL <= 0 {
		return Config{}, fmt.Errorf("%w: party ttl %s", grid.ErrInvalidConfiguration, cfg.PartyTTL)
	}
	if cfg.BoardWidth < 1 || cfg.BoardWidth > grid.MaxWidth {
		return Config{}, fmt.Errorf("%w: board width %d not in [1,%d]", grid.ErrInvalidConfiguration, cfg.BoardWidth, grid.MaxWidth)
	}
	if cfg.WinLength < 2 || cfg.WinLength > cfg.BoardWidth {
		return Config{}, fmt.Errorf("%w: winning length %d on a board of width %d", grid.ErrInvalidConfiguration, cfg.WinLength, cfg.BoardWidth)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
