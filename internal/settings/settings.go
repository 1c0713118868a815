// Package settings layers the teleporter configuration: defaults, an
// optional YAML file, a .env file, TELEPORTER_* environment variables and
// finally command line flags.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/devries/synacor/search"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TELEPORTER"

const (
	keyX            = "x"
	keyY            = "y"
	keyTarget       = "target"
	keyKMin         = "k-min"
	keyKMax         = "k-max"
	keyWorkers      = "workers"
	keyMaxDepth     = "max-depth"
	keyMaxEntries   = "max-entries"
	keyOnExhaustion = "on-exhaustion"
	keyMemo         = "memo"
	keyLogLevel     = "log-level"
	keyConfig       = "config"
	keyEnvFile      = "env-file"
)

type Settings struct {
	Search   search.Config
	LogLevel string
}

// Flags returns a flag set describing every setting, defaulted from
// search.DefaultConfig.
func Flags(name string) *pflag.FlagSet {
	d := search.DefaultConfig()
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)

	flags.Int(keyX, d.X, "outer first argument")
	flags.Int(keyY, d.Y, "outer second argument")
	flags.Int(keyTarget, d.Target, "result to search for")
	flags.Int(keyKMin, d.KMin, "first k to try")
	flags.Int(keyKMax, d.KMax, "last k to try")
	flags.IntP(keyWorkers, "w", d.Workers, "k values evaluated concurrently")
	flags.Int(keyMaxDepth, d.Limits.MaxDepth, "frame stack limit per evaluation")
	flags.Int(keyMaxEntries, d.Limits.MaxEntries, "memo slot limit per evaluation; dense rows count as 32768 slots")
	flags.String(keyOnExhaustion, string(d.OnExhaustion), "abort or skip a k that exceeds its limits")
	flags.String(keyMemo, string(d.Memo), "memo table: dense or map")
	flags.String(keyLogLevel, "info", "debug, info, warn or error")
	flags.StringP(keyConfig, "c", "", "YAML config file")
	flags.String(keyEnvFile, ".env", "dotenv file loaded into the environment if present")

	return flags
}

// Load parses args into flags and resolves every setting.
func Load(flags *pflag.FlagSet, args []string) (Settings, error) {
	if err := flags.Parse(args); err != nil {
		return Settings{}, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return Settings{}, err
	}

	if envFile := v.GetString(keyEnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	s := Settings{
		Search: search.Config{
			X:            v.GetInt(keyX),
			Y:            v.GetInt(keyY),
			Target:       v.GetInt(keyTarget),
			KMin:         v.GetInt(keyKMin),
			KMax:         v.GetInt(keyKMax),
			Workers:      v.GetInt(keyWorkers),
			OnExhaustion: search.ExhaustionPolicy(v.GetString(keyOnExhaustion)),
			Memo:         search.MemoKind(v.GetString(keyMemo)),
		},
		LogLevel: v.GetString(keyLogLevel),
	}
	s.Search.Limits.MaxDepth = v.GetInt(keyMaxDepth)
	s.Search.Limits.MaxEntries = v.GetInt(keyMaxEntries)

	return s, s.Search.Validate()
}
