package config

type Mail struct {
	SMTPHost     string `env:"MAIL_SMTP_HOST,required"`
	SMTPPort     int    `env:"MAIL_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"MAIL_SMTP_USER"`
	SMTPPassword string `env:"MAIL_SMTP_PASSWORD"`

	// From is the sender address used for all kiosk notifications.
	From string `env:"MAIL_FROM" envDefault:"no-reply@cafekiosk.com"`
}
