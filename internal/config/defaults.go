package config

// Default values for optional configuration fields.
const (
	DefaultAddr        = ":8080"
	DefaultAPIToken    = "dev-token"
	DefaultDBHost      = "localhost"
	DefaultDBPort      = 5432
	DefaultDBUser      = "postgres"
	DefaultDBPassword  = "postgres"
	DefaultDBName      = "costbasis"
	DefaultDBSSLMode   = "disable"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultConcurrency = 4
	DefaultChartWidth  = 1000
	DefaultChartHeight = 300
)

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.APIToken == "" {
		c.Server.APIToken = DefaultAPIToken
	}

	if c.Database.Host == "" {
		c.Database.Host = DefaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = DefaultDBUser
	}
	if c.Database.Password == "" {
		c.Database.Password = DefaultDBPassword
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Engine.Concurrency == 0 {
		c.Engine.Concurrency = DefaultConcurrency
	}

	if c.Chart.Width == 0 {
		c.Chart.Width = DefaultChartWidth
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = DefaultChartHeight
	}
}
