package config

type ServiceConfig struct {
	Name                   string    `yaml:"name" validate:"required"`
	Environment            string    `yaml:"environment"`
	Version                string    `yaml:"version"`
	StripeSecretKey        string    `yaml:"stripe_secret_key" validate:"required"`
	StripeWebhookSecret    string    `yaml:"stripe_webhook_secret" validate:"required"`
	StripePADWebhookSecret string    `yaml:"stripe_pad_webhook_secret" validate:"required"`
	JWTSecret              string    `yaml:"jwt_secret" validate:"required"`
	KYC                    KYCConfig `yaml:"kyc"`
}

type KYCConfig struct {
	// AllowedCIDRs is the provider's published callback address ranges. The
	// KYC provider does not sign deliveries, so this list is the only
	// authenticity check on that endpoint.
	AllowedCIDRs []string `yaml:"allowed_cidrs" validate:"required,min=1"`
}
