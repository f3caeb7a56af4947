package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/younsl/logsweep/pkg/utils"
)

// Secret sources for the notification webhook URL.
const (
	SecretSourceSSM            = "ssm"
	SecretSourceSecretsManager = "secretsmanager"
)

// Bounds of the EventBridge Scheduler flexible time window.
const (
	minWindowMinutes = 1
	maxWindowMinutes = 1440
)

// Config is the full logsweep configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Filter    FilterConfig    `mapstructure:"-"`
	Deletion  DeletionConfig  `mapstructure:"deletion"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
}

// AppConfig names the deployment in notifications and alarm lookups.
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// FilterConfig selects which log groups are managed.
type FilterConfig struct {
	Prefixes []string          `mapstructure:"prefixes"`
	Tags     map[string]string `mapstructure:"tags"`
}

// DeletionConfig holds the grace period added after retention.
type DeletionConfig struct {
	DelayDays int `mapstructure:"delay_days"`
}

// SchedulerConfig describes where deletion schedules deliver their message.
type SchedulerConfig struct {
	QueueARN      string `mapstructure:"queue_arn"`
	RoleARN       string `mapstructure:"role_arn"`
	GroupName     string `mapstructure:"group_name"`
	WindowMinutes int32  `mapstructure:"window_minutes"`
}

// NotifierConfig controls alarm notification delivery.
type NotifierConfig struct {
	WebhookParameter string        `mapstructure:"webhook_parameter"`
	SecretSource     string        `mapstructure:"secret_source"`
	CacheSeconds     int           `mapstructure:"cache_seconds"`
	MaxRetries       int           `mapstructure:"max_retries"`
	InitialBackoff   time.Duration `mapstructure:"initial_backoff"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional file and LOGSWEEP_* environment
// variables. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("logsweep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	filter, err := loadFilter(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Filter = filter

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "logsweep")
	v.SetDefault("log.level", "info")
	v.SetDefault("filter.prefixes", []string{})
	v.SetDefault("filter.tags", map[string]string{})
	v.SetDefault("deletion.delay_days", 0)
	v.SetDefault("scheduler.queue_arn", "")
	v.SetDefault("scheduler.role_arn", "")
	v.SetDefault("scheduler.group_name", "")
	v.SetDefault("scheduler.window_minutes", 5)
	v.SetDefault("notifier.webhook_parameter", "")
	v.SetDefault("notifier.secret_source", SecretSourceSSM)
	v.SetDefault("notifier.cache_seconds", 300)
	v.SetDefault("notifier.max_retries", 3)
	v.SetDefault("notifier.initial_backoff", time.Second)
	v.SetDefault("notifier.timeout", 10*time.Second)
}

// Validate checks settings shared by every component.
func (c Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Deletion.DelayDays < 0 {
		return fmt.Errorf("deletion.delay_days must be >= 0, got %d", c.Deletion.DelayDays)
	}
	if c.Scheduler.WindowMinutes < minWindowMinutes || c.Scheduler.WindowMinutes > maxWindowMinutes {
		return fmt.Errorf("scheduler.window_minutes must be between %d and %d, got %d",
			minWindowMinutes, maxWindowMinutes, c.Scheduler.WindowMinutes)
	}
	switch c.Notifier.SecretSource {
	case SecretSourceSSM, SecretSourceSecretsManager:
	default:
		return fmt.Errorf("notifier.secret_source must be %q or %q, got %q", SecretSourceSSM, SecretSourceSecretsManager, c.Notifier.SecretSource)
	}
	if c.Notifier.MaxRetries < 0 {
		return fmt.Errorf("notifier.max_retries must be >= 0, got %d", c.Notifier.MaxRetries)
	}
	return nil
}

// ValidateScheduling checks the settings needed to create deletion schedules.
func (c Config) ValidateScheduling() error {
	var errs []error
	if c.Scheduler.QueueARN == "" {
		errs = append(errs, fmt.Errorf("scheduler.queue_arn is required"))
	}
	if c.Scheduler.RoleARN == "" {
		errs = append(errs, fmt.Errorf("scheduler.role_arn is required"))
	}
	return errors.Join(errs...)
}

// ValidateNotifier checks the settings needed by the alert notifier.
func (c Config) ValidateNotifier() error {
	if c.Notifier.WebhookParameter == "" {
		return fmt.Errorf("notifier.webhook_parameter is required")
	}
	return nil
}

// CacheTTL is how long the webhook URL is reused before it is fetched again.
func (n NotifierConfig) CacheTTL() time.Duration {
	return time.Duration(n.CacheSeconds) * time.Second
}

// loadFilter accepts both file-style lists/maps and comma separated environment values.
func loadFilter(v *viper.Viper) (FilterConfig, error) {
	filter := FilterConfig{
		Prefixes: splitList(v.GetStringSlice("filter.prefixes")),
		Tags:     map[string]string{},
	}

	switch raw := v.Get("filter.tags").(type) {
	case string:
		tags, err := utils.ParseTagPairs(splitList([]string{raw}))
		if err != nil {
			return FilterConfig{}, fmt.Errorf("filter.tags: %w", err)
		}
		filter.Tags = tags
	case nil:
	default:
		for k, val := range v.GetStringMapString("filter.tags") {
			filter.Tags[k] = val
		}
	}
	return filter, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
