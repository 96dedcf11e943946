package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Storage configures where uploaded receipts are written and how their
// public URLs are built.
type Storage struct {
	Dir     string `envconfig:"DIR" default:"uploads"`
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:3000/uploads"`
	Bucket  string `envconfig:"BUCKET" default:"receipts"`
}

// Reconcile configures the balance recompute backstop.
type Reconcile struct {
	Enabled  bool   `envconfig:"ENABLED" default:"true"`
	Schedule string `envconfig:"SCHEDULE" default:"@daily"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[financeiro]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Storage   *Storage   `envconfig:"STORAGE"`
	Reconcile *Reconcile `envconfig:"RECONCILE"`
}
