package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	OutputConsole  = "console"
	OutputLocal    = "local"
	OutputS3       = "s3"
	OutputKafka    = "kafka"
	OutputPostgres = "postgres"

	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
	Endpoint   string `mapstructure:"endpoint"` // custom endpoint, e.g. minio
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type Config struct {
	Seed          int64     `mapstructure:"seed"`
	StartDate     time.Time `mapstructure:"start_date"`
	EndDate       time.Time `mapstructure:"end_date"`
	ReferenceDate time.Time `mapstructure:"reference_date"` // anchors the streak week

	Bundles           int `mapstructure:"bundles"`
	Users             int `mapstructure:"users"`
	Vendors           int `mapstructure:"vendors"`
	ProductsPerVendor int `mapstructure:"products_per_vendor"`

	Workers      int  `mapstructure:"workers"`
	FailFast     bool `mapstructure:"fail_fast"`
	ShowProgress bool `mapstructure:"progress"`

	// bundle composition
	BundleBudget         float64 `mapstructure:"bundle_budget"`
	MaxProductQuantity   int     `mapstructure:"max_product_quantity"`
	EarlyStopProbability float64 `mapstructure:"early_stop_probability"`
	MinDiscount          float64 `mapstructure:"min_discount"`
	MaxDiscount          float64 `mapstructure:"max_discount"`
	EmptyBundleDiscount  float64 `mapstructure:"empty_bundle_discount"`

	DisputeProbability         float64 `mapstructure:"dispute_probability"`
	DisputeApprovalProbability float64 `mapstructure:"dispute_approval_probability"`

	CategoryValues map[string]float64 `mapstructure:"category_values"`
	WeatherValues  map[string]float64 `mapstructure:"weather_values"`

	OutputDestination string `mapstructure:"output_destination"`
	OutputFormat      string `mapstructure:"output_format"`
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`

	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix string `mapstructure:"kafka_topic_prefix"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
	Database     DatabaseConfig     `mapstructure:"database"`
}

var DefaultCategoryValues = map[string]float64{
	CategoryBreadBakedGoods:     0.8,
	CategorySweetTreatsDesserts: 0.75,
	CategoryMeatProtein:         0.6,
	CategoryFruitVegetables:     0.65,
	CategoryDairyEggs:           0.55,
	CategoryReadyMealsHotFood:   0.9,
	CategorySnacksSavouryItems:  0.6,
	CategoryBreakfastItems:      0.7,
	CategoryVeganVegetarian:     0.5,
	CategoryDrinksBeverages:     0.4,
}

// DefaultWeatherValues covers the condition texts the weather factory emits.
var DefaultWeatherValues = map[string]float64{
	"Sunny":              0.9,
	"Clear":              0.85,
	"Partly Cloudy":      0.8,
	"Cloudy":             0.7,
	"Overcast":           0.65,
	"Mist":               0.6,
	"Fog":                0.55,
	"Patchy rain nearby": 0.5,
	"Light drizzle":      0.5,
	"Light rain":         0.45,
	"Moderate rain":      0.35,
	"Heavy rain":         0.2,
	"Light snow":         0.25,
	"Thundery outbreaks": 0.15,
}

// SetDefaults registers every config key so that env overrides are picked up
// by Unmarshal even when no config file is present.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("seed", 12)
	v.SetDefault("start_date", "2025-10-01")
	v.SetDefault("end_date", "2026-01-14")
	v.SetDefault("reference_date", "2026-01-15")

	v.SetDefault("bundles", 1000)
	v.SetDefault("users", 250)
	v.SetDefault("vendors", 20)
	v.SetDefault("products_per_vendor", 40)

	v.SetDefault("workers", 4)
	v.SetDefault("fail_fast", false)
	v.SetDefault("progress", true)

	v.SetDefault("bundle_budget", 25.0)
	v.SetDefault("max_product_quantity", 3)
	v.SetDefault("early_stop_probability", 0.3)
	v.SetDefault("min_discount", 0.25)
	v.SetDefault("max_discount", 0.75)
	v.SetDefault("empty_bundle_discount", 0.0)

	v.SetDefault("dispute_probability", 0.375)
	v.SetDefault("dispute_approval_probability", 0.15)

	v.SetDefault("category_values", DefaultCategoryValues)
	v.SetDefault("weather_values", DefaultWeatherValues)

	v.SetDefault("output_destination", OutputConsole)
	v.SetDefault("output_format", FormatJSON)
	v.SetDefault("output_path", "")
	v.SetDefault("output_folder", "surplussim")

	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic_prefix", "")
	v.SetDefault("session_timeout_ms", 45000)

	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.region", "eu-west-2")
	v.SetDefault("cloud_storage.endpoint", "")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	return loadConfig(viper.GetViper(), cfgFile)
}

func loadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// default config location, optional
		v.AddConfigPath("examples")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SURPLUSSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			StringToDateHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// StringToDateHookFunc decodes RFC3339 timestamps as well as plain
// YYYY-MM-DD dates into time.Time.
func StringToDateHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		return ParseDate(reflect.ValueOf(data).String())
	}
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", s)
	}
	return ts, nil
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.EndDate.Before(cfg.StartDate):
		return fmt.Errorf("end_date %s is before start_date %s", DateKey(cfg.EndDate), DateKey(cfg.StartDate))
	case cfg.Bundles < 0:
		return fmt.Errorf("bundles must not be negative, got %d", cfg.Bundles)
	case cfg.Users <= 0:
		return fmt.Errorf("users must be positive, got %d", cfg.Users)
	case cfg.Vendors <= 0:
		return fmt.Errorf("vendors must be positive, got %d", cfg.Vendors)
	case cfg.ProductsPerVendor <= 0:
		return fmt.Errorf("products_per_vendor must be positive, got %d", cfg.ProductsPerVendor)
	case cfg.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	case cfg.BundleBudget <= 0:
		return fmt.Errorf("bundle_budget must be positive, got %v", cfg.BundleBudget)
	case cfg.MaxProductQuantity < 1:
		return fmt.Errorf("max_product_quantity must be at least 1, got %d", cfg.MaxProductQuantity)
	case cfg.MinDiscount < 0 || cfg.MaxDiscount > 1 || cfg.MinDiscount > cfg.MaxDiscount:
		return fmt.Errorf("discount bounds must satisfy 0 <= min <= max <= 1, got [%v, %v]", cfg.MinDiscount, cfg.MaxDiscount)
	case len(cfg.CategoryValues) == 0:
		return fmt.Errorf("category_values must not be empty")
	case len(cfg.WeatherValues) == 0:
		return fmt.Errorf("weather_values must not be empty")
	}

	probabilities := map[string]float64{
		"early_stop_probability":       cfg.EarlyStopProbability,
		"empty_bundle_discount":        cfg.EmptyBundleDiscount,
		"dispute_probability":          cfg.DisputeProbability,
		"dispute_approval_probability": cfg.DisputeApprovalProbability,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	for table, values := range map[string]map[string]float64{"category_values": cfg.CategoryValues, "weather_values": cfg.WeatherValues} {
		for key, value := range values {
			if value < 0 || value > 1 {
				return fmt.Errorf("%s[%s] must be within [0, 1], got %v", table, key, value)
			}
		}
	}

	switch cfg.OutputDestination {
	case OutputConsole, OutputKafka:
	case OutputLocal:
		if cfg.OutputPath == "" {
			return fmt.Errorf("output_path is required for local output")
		}
		switch cfg.OutputFormat {
		case FormatJSON, FormatCSV, FormatParquet:
		default:
			return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	case OutputS3:
		if cfg.CloudStorage.BucketName == "" {
			return fmt.Errorf("cloud_storage.bucket_name is required for s3 output")
		}
	case OutputPostgres:
		if cfg.Database.URL == "" {
			return fmt.Errorf("database.url is required for postgres output")
		}
	default:
		return fmt.Errorf("unsupported output destination: %s", cfg.OutputDestination)
	}
	return nil
}
