package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"60"` // 流程里有排序推理和邮件投递这种慢调用，写超时放宽一点
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Store struct {
		Driver       string `env:"DRIVER" envDefault:"firestore"` // firestore 或 postgres
		QueryTimeout int    `env:"QUERY_TIMEOUT" envDefault:"10"`
	} `envPrefix:"STORE_"`
	Firestore struct {
		ProjectID          string `env:"PROJECT_ID"` // STORE_DRIVER 为 firestore 时必填
		ShiftCollection    string `env:"SHIFT_COLLECTION" envDefault:"shift"`
		EmployeeCollection string `env:"EMPLOYEE_COLLECTION" envDefault:"EmployeeData"`
	} `envPrefix:"FIRESTORE_"`
	Database struct {
		DSN            string `env:"DSN"` // STORE_DRIVER 为 postgres 时必填
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Gemini struct {
		APIKey  string `env:"API_KEY"`
		Model   string `env:"MODEL" envDefault:"gemini-2.0-flash"`
		Timeout int    `env:"TIMEOUT" envDefault:"30"`
	} `envPrefix:"GEMINI_"`
	Selection struct {
		CandidatePoolSize int    `env:"CANDIDATE_POOL_SIZE" envDefault:"5"`
		SelectCount       int    `env:"SELECT_COUNT" envDefault:"3"`
		CallbackBaseURL   string `env:"CALLBACK_BASE_URL,required"` // 邮件里接受 / 拒绝链接的前缀
	} `envPrefix:"SELECTION_"`
	Mailer struct {
		Driver      string `env:"DRIVER" envDefault:"queue"` // queue 或 smtp
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
	} `envPrefix:"MAILER_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // MAILER_DRIVER 为 queue 时必填
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST"` // 留空表示不启用触发去重
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
		DedupeExpiration int    `env:"DEDUPE_EXPIRATION" envDefault:"86400"` // 去重标记保留一天
	} `envPrefix:"REDIS_"`
	Seed struct {
		EmployeeCount   int    `env:"EMPLOYEE_COUNT" envDefault:"100"`
		EmailDomain     string `env:"EMAIL_DOMAIN" envDefault:"example.com"`
		CreateDemoShift bool   `env:"CREATE_DEMO_SHIFT" envDefault:"false"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
