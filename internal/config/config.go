// Package config 负责读取 gitloc 的运行参数。
//
// 优先级：默认值 < 配置文件 < GITLOC_* 环境变量 < 命令行参数。
// 排除规则不属于可配置项。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"gitloc/internal/repo"
	"gitloc/internal/report"
)

const (
	KeyWorkers  = "workers"
	KeyBackend  = "backend"
	KeyLogLevel = "log_level"
	KeyMode     = "mode"

	envPrefix = "GITLOC"
)

// Settings 是解析完成的运行参数。
type Settings struct {
	Workers  int    `mapstructure:"workers"`
	Backend  string `mapstructure:"backend"`
	LogLevel string `mapstructure:"log_level"`
	Mode     string `mapstructure:"mode"`
}

// New 创建带默认值和环境变量绑定的 viper 实例。
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyBackend, repo.BackendGoGit)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyMode, report.Verbose.String())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load 读取配置文件（如果有）并解析为 Settings。
// configFile 为空时在 $HOME/.config/gitloc 查找 config.{toml,yaml}，找不到时忽略。
func Load(v *viper.Viper, configFile string) (Settings, error) {
	var settings Settings

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return settings, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gitloc"))
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return settings, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("decode config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// Validate 检查参数取值是否合法。
func (s Settings) Validate() error {
	if s.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if _, err := repo.New(s.Backend); err != nil {
		return err
	}
	if _, err := report.ParseMode(s.Mode); err != nil {
		return err
	}
	return nil
}
