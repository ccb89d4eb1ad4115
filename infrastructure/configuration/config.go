package configuration

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	YouTube     YouTube     `json:"youtube"`
	Sync        Sync        `json:"sync"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type YouTube struct {
	APIKey       string   `json:"apiKey"`
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret"`
	RedirectURI  string   `json:"redirectURI"`
	ChannelID    string   `json:"channelId"`
	Scopes       []string `json:"scopes"`
}

// Sync configures the cron-triggered bulk re-sync.
type Sync struct {
	CronSecret     string `json:"cronSecret"`
	StalenessHours int    `json:"stalenessHours"`
	ItemDelayMs    int    `json:"itemDelayMs"`
}

// Staleness returns the age after which a video's counters are re-fetched.
func (s Sync) Staleness() time.Duration {
	hours := s.StalenessHours
	if hours <= 0 {
		hours = 6
	}
	return time.Duration(hours) * time.Hour
}

// ItemDelay returns the fixed pause between outbound calls during a bulk
// re-sync, to stay under the provider's rate limits.
func (s Sync) ItemDelay() time.Duration {
	ms := s.ItemDelayMs
	if ms <= 0 {
		ms = 100
	}
	return time.Duration(ms) * time.Millisecond
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initDatabase(&C)
	initSync(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = "localhost"
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}
}

func initSync(C *Config) {
	if v := os.Getenv("CRON_SECRET"); v != "" {
		C.Sync.CronSecret = v
	}
	if C.Sync.CronSecret == "" {
		logger.GetLogger().Warn("Sync.CronSecret not set; the bulk re-sync endpoint will reject all requests. Provide CRON_SECRET via environment.")
	}
	if v := os.Getenv("SYNC_STALENESS_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			C.Sync.StalenessHours = h
		}
	}
}
