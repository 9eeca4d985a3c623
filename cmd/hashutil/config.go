package main

import (
	"encoding/hex"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/b/multibackend"
)

// sumConfig is resolved from flags, HASHUTIL_* environment variables and the config file, in that order.
type sumConfig struct {
	Backend  hashsession.Backend
	Algo     hashsession.Algorithm
	Length   int
	Offset   uint64
	Encoding hashsession.Encoding
	Jobs     int
	Key      []byte
}

func loadConfig() {
	if configPath == "" {
		return
	}
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("reading config %s: %v", configPath, err)
	}
	log.Debugf("loaded config from %s", v.ConfigFileUsed())
}

func sumConfigFromViper(v *viper.Viper) (sumConfig, error) {
	var cfg sumConfig
	b, err := multibackend.ByName(v.GetString("backend"))
	if err != nil {
		return cfg, err
	}
	cfg.Backend = b
	if cfg.Algo, err = hashsession.ParseAlgorithm(v.GetString("algo")); err != nil {
		return cfg, err
	}
	if cfg.Encoding, err = hashsession.ParseEncoding(v.GetString("encoding")); err != nil {
		return cfg, err
	}
	if cfg.Length = v.GetInt("length"); cfg.Length < 0 {
		return cfg, errors.Errorf("length must be >= 0, got %d", cfg.Length)
	}
	cfg.Offset = v.GetUint64("offset")
	if cfg.Jobs = v.GetInt("jobs"); cfg.Jobs < 1 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if keyHex := v.GetString("key"); keyHex != "" {
		if cfg.Key, err = hex.DecodeString(keyHex); err != nil {
			return cfg, errors.Wrap(err, "parsing key")
		}
		if len(cfg.Key) != hashsession.KeySize {
			return cfg, hashsession.ErrInvalidKeyLength{Length: len(cfg.Key)}
		}
		if cfg.Algo != hashsession.BLAKE3 {
			return cfg, errors.Errorf("keyed hashing requires blake3, got %v", cfg.Algo)
		}
	}
	return cfg, nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
