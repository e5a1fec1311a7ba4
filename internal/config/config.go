package config

type Config struct {
	Telegram         Telegram
	AMQP             AMQP
	PostgresEndpoint string `env:"POSTGRES_ENDPOINT"`
	BudgetConfigPath string `env:"BUDGET_CONFIG" envDefault:"presupuesto_config.csv"`
}

type Telegram struct {
	Timeout int `env:"TIMEOUT" envDefault:"60"`
}

// AMQP is optional: an empty URL disables entry event publishing.
type AMQP struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE" envDefault:"gastobot"`
}
