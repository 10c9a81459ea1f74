package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"shop.db"`
	Currency     string `env:"CURRENCY" envDefault:"CAD"`

	Session   Session   `envPrefix:"SESSION_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Braintree Braintree `envPrefix:"BRAINTREE_"`
}

type Session struct {
	Secret string `env:"SECRET,required"`
	Name   string `env:"NAME" envDefault:"shop_session"`
}

type JWT struct {
	Secret string `env:"SECRET,required"`
}

type Braintree struct {
	Environment     string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID      string `env:"MERCHANT_ID"`
	PublicKey       string `env:"PUBLIC_KEY"`
	PrivateKey      string `env:"PRIVATE_KEY"`
	TokenizationKey string `env:"TOKENIZATION_KEY"` // handed to the client-side payment form
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
