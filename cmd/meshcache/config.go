package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/meigma/meshcache"
)

// envPrefix scopes environment overrides, e.g. MESHCACHE_CACHE_DIR.
const envPrefix = "MESHCACHE"

// settings is the decoded CLI configuration.
type settings struct {
	meshcache.Config `mapstructure:",squash"`

	// LogFile, when set, sends logs to a rotating file.
	LogFile string `mapstructure:"log_file"`
}

// globalFlags holds the parsed global flags. Only flags set on the command
// line override the config file and environment.
type globalFlags struct {
	configPath string
	set        map[string]string
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"cache-dir":   "cache_dir",
	"buffering":   "buffering",
	"strategy":    "strategy",
	"compression": "compression",
	"method":      "method",
	"workers":     "workers",
	"debug":       "debug",
	"log-file":    "log_file",
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	fs := flag.NewFlagSet("meshcache", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts globalFlags
	fs.StringVar(&opts.configPath, "config", "", "config file")
	fs.String("cache-dir", "", "package directory")
	fs.String("buffering", "", "memory | disk")
	fs.String("strategy", "", "parallel | sequential")
	fs.String("compression", "", "better | faster")
	fs.String("method", "", "deflate | zstd")
	fs.Int("workers", 0, "parallel restore workers")
	fs.Bool("debug", false, "debug logging")
	fs.String("log-file", "", "rotating log file")

	if err := fs.Parse(args); err != nil {
		return globalFlags{}, nil, err
	}

	opts.set = make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			opts.set[key] = f.Value.String()
		}
	})
	if opts.configPath == "" {
		opts.configPath = os.Getenv(envPrefix + "_CONFIG")
	}
	return opts, fs.Args(), nil
}

func setDefaults(v *viper.Viper) {
	def := meshcache.DefaultConfig()
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("ext", def.Ext)
	v.SetDefault("buffering", def.Buffering.String())
	v.SetDefault("strategy", def.Strategy.String())
	v.SetDefault("compression", def.Compression.String())
	v.SetDefault("method", def.Method.String())
	v.SetDefault("workers", def.Workers)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_file", "")
}

// loadSettings merges defaults, the config file, MESHCACHE_* variables and
// explicitly set flags, in increasing priority.
func loadSettings(opts globalFlags) (settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.configPath != "" {
		v.SetConfigFile(opts.configPath)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read %s: %w", opts.configPath, err)
		}
	}
	for key, val := range opts.set {
		v.Set(key, val)
	}

	var s settings
	if err := v.Unmarshal(&s, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())); err != nil {
		return settings{}, fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(s.CacheDir) == "" {
		s.CacheDir = meshcache.DefaultConfig().CacheDir
	}
	if s.Workers < 0 {
		return settings{}, fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	return s, nil
}
