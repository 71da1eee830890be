package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"store.db"`

	Auth     Auth     `envPrefix:"AUTH_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
}

type Checkout struct {
	// Compensate switches checkout failures from the legacy leave-partial-
	// state behavior to rejecting submitted payments and canceling the order.
	Compensate bool `env:"COMPENSATE" envDefault:"false"`
}
