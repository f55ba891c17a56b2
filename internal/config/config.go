package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	ClientURL   string `env:"CLIENT_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`

	Mail    Mail    `envPrefix:"MAIL_"`
	Storage Storage `envPrefix:"STORAGE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == "development"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Mail struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"FROM"`
	// Operator inbox for order notifications, with a fallback tried when
	// the first send fails.
	OperatorAddress string `env:"OPERATOR_ADDRESS"`
	FallbackAddress string `env:"FALLBACK_ADDRESS"`
}

type Storage struct {
	Bucket          string `env:"BUCKET"`
	CredentialsJSON string `env:"CREDENTIALS_JSON"`
}
