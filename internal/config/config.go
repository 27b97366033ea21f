package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type RefundConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	MetricsServer  `yaml:"metrics_server"`
	RefundDB       `yaml:"refund_db"`
	LogConfig      `yaml:"log_config"`
	PaymentGateway `yaml:"payment-gateway"`
	KafkaService   `yaml:"kafka-service"`
	Workflow       `yaml:"workflow"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RefundDB struct {
	Dsn           string `yaml:"dsn"`
	MigrationPath string `yaml:"migration_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type PaymentGateway struct {
	Address        string `yaml:"address"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"10"`
	APIKey         string `yaml:"api_key" env:"GATEWAY_API_KEY"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Workflow struct {
	// OverdueSweepSeconds drives the ticker that marks and auto-escalates
	// overdue approval steps.
	OverdueSweepSeconds int `yaml:"overdue_sweep_seconds" env-default:"60"`
}

func MustLoad() *RefundConfig {

	// Processing env config variable and file
	configPath := os.Getenv("REFUND_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("REFUND_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg RefundConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
