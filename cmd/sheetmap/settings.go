package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/sheetmap/v1/logger"
	"github.com/Aleph-Alpha/sheetmap/v1/minio"
)

const envPrefix = "SHEETMAP"

// settings is the merged view of flags, environment and the optional
// settings file.
type settings struct {
	ConfigDir    string `mapstructure:"config-dir"`
	ConfigFile   string `mapstructure:"config-file"`
	ConfigObject string `mapstructure:"config-object"`
	HotReload    bool   `mapstructure:"hot-reload"`
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
	MetricsAddr  string `mapstructure:"metrics-addr"`
	TraceExport  bool   `mapstructure:"trace-export"`

	Minio minio.ConnectionConfig `mapstructure:"-"`
}

func bindPersistentFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()
	f.String("settings", "", "settings file (yaml) with defaults for every flag")
	f.String("config-dir", "", "directory holding the configuration document (default: next to the binary)")
	f.String("config-file", "", "configuration document name (default: msio.json)")
	f.String("config-object", "", "read the configuration document from this object storage key")
	f.Bool("hot-reload", false, "re-read the configuration document on every lookup")
	f.String("log-level", logger.Warning, "log level: debug, info, warning, error")
	f.String("log-format", logger.EncodingJSON, "log encoding: json or console")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	f.Bool("trace-export", false, "export OpenTelemetry traces over OTLP HTTP")

	f.String("minio-endpoint", "", "object storage endpoint, e.g. localhost:9000")
	f.String("minio-access-key", "", "object storage access key")
	f.String("minio-secret-key", "", "object storage secret key")
	f.String("minio-bucket", "", "object storage bucket")
	f.Bool("minio-ssl", false, "use TLS for object storage")

	_ = v.BindPFlags(f)
}

func loadSettings(v *viper.Viper) (settings, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("settings"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, err
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, err
	}
	s.Minio = minio.ConnectionConfig{
		Endpoint:        v.GetString("minio-endpoint"),
		AccessKeyID:     v.GetString("minio-access-key"),
		SecretAccessKey: v.GetString("minio-secret-key"),
		BucketName:      v.GetString("minio-bucket"),
		UseSSL:          v.GetBool("minio-ssl"),
	}
	return s, nil
}
