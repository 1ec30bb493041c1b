package config

type SMTP struct {
	// Host left empty disables email notifications.
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD" json:"-"`
	From     string `env:"SMTP_FROM"`
}
