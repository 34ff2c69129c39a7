package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ZoneConfig struct {
	City      string   `mapstructure:"city"`
	State     string   `mapstructure:"state"`
	ZipCodes  []string `mapstructure:"zip_codes"`
	CenterLat float64  `mapstructure:"center_lat"`
	CenterLon float64  `mapstructure:"center_lon"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	// Synthetic generator
	Seed            int          `mapstructure:"seed"`
	StartDate       time.Time    `mapstructure:"start_date"`
	EndDate         time.Time    `mapstructure:"end_date"`
	GenerateRecords int          `mapstructure:"generate_records"`
	StartRequestID  int64        `mapstructure:"start_request_id"`
	Zones           []ZoneConfig `mapstructure:"zones"`
	TruckIDMin      int          `mapstructure:"truck_id_min"`
	TruckIDMax      int          `mapstructure:"truck_id_max"`

	// Generator output
	PostgresEnabled   bool               `mapstructure:"postgres_enabled"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
	KafkaEnabled      bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	KafkaTopic        string             `mapstructure:"kafka_topic"`

	// Clustering
	ClusterEpsKm      float64 `mapstructure:"cluster_eps_km"`
	ClusterMinSamples int     `mapstructure:"cluster_min_samples"`
	HotspotEpsKm      float64 `mapstructure:"hotspot_eps_km"`
	HotspotMinSamples int     `mapstructure:"hotspot_min_samples"`
	HotspotWriteMode  string  `mapstructure:"hotspot_write_mode"`

	// Forecasting and staffing
	ForecastHorizonHours int     `mapstructure:"forecast_horizon_hours"`
	CallsPerTruckPerHour float64 `mapstructure:"calls_per_truck_per_hour"`
	TargetServiceLevel   float64 `mapstructure:"target_service_level"`

	Database DatabaseConfig `mapstructure:"database"`
}

// LoadConfig initializes and reads the configuration using Viper. Every
// tunable has a declared default; file values override defaults and
// environment variables (DATABASE_HOST, KAFKA_BROKER_LIST, ...) override
// both. The resulting struct is handed to each component at construction,
// so nothing else in the codebase consults the environment.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(config.Zones) == 0 {
		config.Zones = DefaultZones
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("seed", 42)
	viper.SetDefault("generate_records", 5000)
	viper.SetDefault("start_request_id", 1)
	viper.SetDefault("start_date", "2024-01-01T00:00:00Z")
	viper.SetDefault("end_date", "2024-03-31T23:59:59Z")
	viper.SetDefault("truck_id_min", 100)
	viper.SetDefault("truck_id_max", 149)

	viper.SetDefault("output_format", "csv")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic", "roadside_requests")

	viper.SetDefault("cluster_eps_km", 2.0)
	viper.SetDefault("cluster_min_samples", 3)
	viper.SetDefault("hotspot_eps_km", 2.0)
	viper.SetDefault("hotspot_min_samples", 3)
	viper.SetDefault("hotspot_write_mode", HotspotWriteAppend)

	viper.SetDefault("forecast_horizon_hours", 48)
	viper.SetDefault("calls_per_truck_per_hour", 2.0)
	viper.SetDefault("target_service_level", 0.90)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "aaa_roadside")
	viper.SetDefault("database.sslmode", "disable")
}
