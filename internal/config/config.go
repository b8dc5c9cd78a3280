package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"time"     // time provides duration types for timeouts
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, durations for timeouts.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	DBInitScript   string        // optional SQL script run after schema sync (may be empty)
	DBConnTimeout  time.Duration // timeout for establishing/pinging DB connections
	DBQueryTimeout time.Duration // per-request timeout for DB statements
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time‑to‑live in minutes
	RefreshTTLDays int           // refresh token time‑to‑live in days
	BcryptCost     int           // bcrypt cost for password hashing
	CookieSecure   bool          // whether auth cookies carry the Secure flag
	MaxUploadBytes int64         // maximum accepted profile picture size
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values fall
// back to the defaults observed in production.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),             // environment (dev/test/prod)
		Port:           must("APP_PORT"),            // port to bind the HTTP server
		DBUser:         must("DB_USER"),             // database user
		DBPass:         os.Getenv("DB_PASS"),        // database password (empty allowed)
		DBHost:         must("DB_HOST"),             // database host
		DBPort:         must("DB_PORT"),             // database port
		DBName:         must("DB_NAME"),             // database name
		DBInitScript:   os.Getenv("DB_INIT_SCRIPT"), // optional setup script path
		DBConnTimeout:  parseDur(getenv("DB_CONN_TIMEOUT", "15s")),  // connect/ping bound
		DBQueryTimeout: parseDur(getenv("DB_QUERY_TIMEOUT", "30s")), // statement bound
		JWTSecret:      must("JWT_SECRET"),          // secret used for signing JWTs
		AccessTTLMin:   atoi(getenv("ACCESS_TOKEN_TTL_MIN", "1440")),  // 24h default
		RefreshTTLDays: atoi(getenv("REFRESH_TOKEN_TTL_DAYS", "7")),   // 7d default
		BcryptCost:     mustInt("BCRYPT_COST"),      // bcrypt cost factor
		CookieSecure:   getenv("COOKIE_SECURE", "false") == "true",    // Secure cookie flag
		MaxUploadBytes: int64(atoi(getenv("MAX_UPLOAD_BYTES", "5242880"))), // 5 MiB
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the value of key or def when the variable is unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoi converts s to an int, returning 0 on failure.
func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// parseDur converts s to a duration, falling back to one second on failure.
func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
