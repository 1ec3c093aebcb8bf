package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "SHOP_CONFIG_FILE"
	envPrefix         = "SHOP"
)

var (
	ErrNoCategories     = errors.New("at least one catalog category is required")
	ErrNoSchemaRegistry = errors.New("schema registry urls are required when seed brokers are set")
	ErrNoCartTopic      = errors.New("cart events topic is required when seed brokers are set")
)

type catalog struct {
	BaseURL        string        `mapstructure:"base_url"`
	Categories     []string      `mapstructure:"categories"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
}

type topics struct {
	CartEvents string `mapstructure:"cart_events"`
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	TLS                brokerTLS `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Catalog        catalog    `mapstructure:"catalog"`
	Broker         broker     `mapstructure:"broker"`
}

// BrokerEnabled reports whether cart events are published.
func (c Config) BrokerEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func Load() Config {
	_ = godotenv.Load()

	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML file at path on top of the defaults. Keys may be
// overridden by SHOP_ prefixed environment variables, e.g.
// SHOP_CATALOG_BASE_URL. An empty path only applies defaults and env.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("catalog.base_url", "https://dummyjson.com")
	v.SetDefault("catalog.categories", []string{"mens-shoes", "womens-shoes"})
	v.SetDefault("catalog.request_timeout", 10*time.Second)
	v.SetDefault("catalog.max_attempts", 1)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.cart_events", "cart-events")
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
}

func (c Config) validate() error {
	if len(c.Catalog.Categories) == 0 {
		return ErrNoCategories
	}
	if !c.BrokerEnabled() {
		return nil
	}
	if len(c.Broker.SchemaRegistryURLs) == 0 {
		return ErrNoSchemaRegistry
	}
	if c.Broker.Topics.CartEvents == "" {
		return ErrNoCartTopic
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	CatalogConfig:
	BaseURL=%q
	Categories=%q
	RequestTimeout=%q
	MaxAttempts=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		CartEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.BaseURL,
		c.Catalog.Categories,
		c.Catalog.RequestTimeout,
		c.Catalog.MaxAttempts,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.CAFile != "",
		c.Broker.Topics.CartEvents,
	)
}
