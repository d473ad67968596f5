package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

type UploadsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type JobTrackingConfig struct {
	// Statuses is the ordered, open vocabulary of status labels offered by
	// the UI. The store does not enforce membership.
	Statuses   []string `mapstructure:"statuses" validate:"min=1"`
	WeeklyGoal int      `mapstructure:"weekly_goal" validate:"gte=0"`
}

type StudyTrackingConfig struct {
	// DailyTargetMinutes is a manual override. Zero disables it and the
	// daily target is derived from the remaining hours and the test date.
	DailyTargetMinutes int    `mapstructure:"daily_target_minutes" validate:"gte=0"`
	TotalTargetHours   int    `mapstructure:"total_target_hours" validate:"gt=0"`
	TestDate           string `mapstructure:"test_date" validate:"omitempty,datetime=2006-01-02"`
}

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Uploads       UploadsConfig       `mapstructure:"uploads"`
	JobTracking   JobTrackingConfig   `mapstructure:"job_tracking"`
	StudyTracking StudyTrackingConfig `mapstructure:"study_tracking"`
}

// TestDay returns the configured exam date, reporting false when none is set.
func (c StudyTrackingConfig) TestDay() (time.Time, bool) {
	if c.TestDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", c.TestDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DefaultStatuses is the ordered status vocabulary used when none is configured.
var DefaultStatuses = []string{
	"Applied",
	"No Response",
	"Rejected",
	"Screening Call",
	"Interview",
	"Second Interview",
	"Final Interview",
	"Offer",
	"Accepted",
	"Declined",
}

type Loader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewLoader(configFile string) (*Loader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/huntboard")
	}

	return &Loader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (l *Loader) Load() (*Config, error) {
	v := l.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "huntboard.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("uploads.path", "uploads")
	v.SetDefault("job_tracking.statuses", DefaultStatuses)
	v.SetDefault("job_tracking.weekly_goal", 5)
	v.SetDefault("study_tracking.daily_target_minutes", 0)
	v.SetDefault("study_tracking.total_target_hours", 300)
	v.SetDefault("study_tracking.test_date", "")

	v.SetEnvPrefix("HUNTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := l.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, e.Translate(l.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}

	return &cfg, nil
}
