package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-ask/typesense"
)

// Supported question backends
const (
	BackendTypesense = "typesense"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

var ErrMissingTypesenseConfig = errors.New("missing Typesense configuration: TYPESENSE_HOST, TYPESENSE_PORT, TYPESENSE_PROTOCOL, TYPESENSE_API_SEARCH_KEY and TYPESENSE_ADMIN_API_KEY are required")

type Config struct {
	Port        int
	Backend     string
	DatabaseURL string
	Typesense   typesense.Config

	// AdminKey locks down adding and deleting questions when set
	AdminKey   string
	PerPage    int
	CallerName string
}

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-ask", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Question backend (typesense, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for the postgres and sqlite backends")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Key required to add or delete questions (prefer env)")

	fs.IntVar(&cfg.PerPage, "per-page", 0, "Maximum search results")
	fs.StringVar(&cfg.CallerName, "caller", "", "Caller name shown on the decoy call screen")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = BackendTypesense
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if cfg.PerPage == 0 {
		if s := os.Getenv("SEARCH_PER_PAGE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid SEARCH_PER_PAGE env variable")
			}
			cfg.PerPage = n
		} else {
			cfg.PerPage = 5
		}
	}
	if cfg.CallerName == "" {
		cfg.CallerName = os.Getenv("CALLER_NAME")
		if cfg.CallerName == "" {
			cfg.CallerName = "Mama"
		}
	}

	switch cfg.Backend {
	case BackendTypesense:
		ts, err := typesenseFromEnv()
		if err != nil {
			return Config{}, err
		}
		cfg.Typesense = ts
	case BackendPostgres, BackendSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown backend %q (use typesense, postgres or sqlite)", cfg.Backend)
	}

	return cfg, nil
}

func typesenseFromEnv() (typesense.Config, error) {
	cfg := typesense.DefaultConfig()

	cfg.Host = os.Getenv("TYPESENSE_HOST")
	cfg.Protocol = os.Getenv("TYPESENSE_PROTOCOL")
	cfg.SearchKey = os.Getenv("TYPESENSE_API_SEARCH_KEY")
	cfg.AdminKey = os.Getenv("TYPESENSE_ADMIN_API_KEY")
	portStr := os.Getenv("TYPESENSE_PORT")

	if cfg.Host == "" || cfg.Protocol == "" || cfg.SearchKey == "" || cfg.AdminKey == "" || portStr == "" {
		return typesense.Config{}, ErrMissingTypesenseConfig
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return typesense.Config{}, errors.New("invalid TYPESENSE_PORT env variable")
	}
	cfg.Port = port

	if cfg.Protocol != "http" && cfg.Protocol != "https" {
		return typesense.Config{}, errors.New("TYPESENSE_PROTOCOL must be http or https")
	}

	return cfg, nil
}
