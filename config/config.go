package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Game struct {
		Rounds      int
		Seed        int64
		HandSize    int
		MaxAttempts int
		Player1     string
		Player2     string
		ColorOrder  []string
	}
	Log struct {
		Level string
	}
}

var C Config

const DefaultPath = "config/config.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("game.rounds", 3)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.handSize", 8)
	v.SetDefault("game.maxAttempts", 1000)
	v.SetDefault("game.player1", "ai")
	v.SetDefault("game.player2", "test")
	v.SetDefault("game.colorOrder", []string{})
	v.SetDefault("log.level", "info")
}

// Flags 命令行参数，键名与配置文件一致
func Flags() *pflag.FlagSet {
	set := pflag.NewFlagSet("expedition", pflag.ContinueOnError)
	set.String("config", DefaultPath, "path to the config file")
	set.Int("game.rounds", 3, "number of rounds")
	set.Int64("game.seed", 0, "random seed (0 picks one from the clock)")
	set.String("game.player1", "ai", "agent kind for player 1 (ai, test, random)")
	set.String("game.player2", "test", "agent kind for player 2 (ai, test, random)")
	set.String("log.level", "info", "log level")
	set.String("server.port", ":8080", "listen address")
	return set
}

// Load 读取配置：默认值 < 配置文件 < 环境变量 EXPEDITION_* < 已设置的命令行参数。
// 配置文件不存在时只使用默认值。
func Load(path string, flags *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("expedition")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" || !f.Changed {
				return
			}
			_ = v.BindPFlag(f.Name, f)
		})
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return err
	}
	C = c
	return nil
}
