package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:""`
	DBName      string `envconfig:"DB_NAME" default:"sales_savvy"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:5174"`

	// Razorpay-compatible gateway. Empty key id switches the payment
	// controller into dummy mode (no outbound calls, no signature checks).
	GatewayKeyID     string `envconfig:"RAZORPAY_KEY_ID" default:""`
	GatewayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET" default:""`
	GatewayAPIURL    string `envconfig:"RAZORPAY_API_URL" default:"https://api.razorpay.com/v1"`
	Currency         string `envconfig:"PAYMENT_CURRENCY" default:"INR"`

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY" default:""`
	MailFrom       string `envconfig:"MAIL_FROM" default:"orders@sales-savvy.shop"`

	// Cancelled orders do not return stock unless this is set; refunds and
	// restocking are otherwise an ops task.
	RestockOnCancel bool `envconfig:"RESTOCK_ON_CANCEL" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
