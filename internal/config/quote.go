package config

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// QuoteDefaults seeds newly created packages and line items.
type QuoteDefaults struct {
	DefaultMarkup float64         `mapstructure:"defaultMarkup"`
	NewLine       NewLineDefaults `mapstructure:"newLine"`
	NewSubLine    NewLineDefaults `mapstructure:"newSubLine"`
	NewPackage    PackageDefaults `mapstructure:"newPackage"`
}

type NewLineDefaults struct {
	Quantity  float64 `mapstructure:"qty"`
	Shorthand string  `mapstructure:"shorthand"`
}

type PackageDefaults struct {
	DefaultMarkup float64 `mapstructure:"defaultMarkup"`
}

func DefaultQuoteDefaults() QuoteDefaults {
	return QuoteDefaults{
		DefaultMarkup: 1.35,
		NewLine:       NewLineDefaults{Quantity: 1, Shorthand: "New Item"},
		NewSubLine:    NewLineDefaults{Quantity: 1, Shorthand: "New Sub Item"},
		NewPackage:    PackageDefaults{DefaultMarkup: 1.35},
	}
}

type QuoteDefaultsHolder struct {
	current atomic.Value // holds QuoteDefaults
}

// NewQuoteDefaultsHolder reads quote.yml and keeps it reloaded while the
// process runs. A missing file falls back to DefaultQuoteDefaults.
func NewQuoteDefaultsHolder(log *zap.Logger) (*QuoteDefaultsHolder, error) {
	log = log.Named("quote.config")

	v := viper.New()
	v.SetConfigName("quote")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/quote-builder")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setQuoteDefaults(v, DefaultQuoteDefaults())

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	cfg, err := readQuoteDefaults(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticQuoteDefaults(cfg)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := readQuoteDefaults(v)
		if err != nil {
			log.Warn("quote defaults reload rejected", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("quote defaults reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticQuoteDefaults returns a holder that never reloads.
func NewStaticQuoteDefaults(cfg QuoteDefaults) *QuoteDefaultsHolder {
	holder := &QuoteDefaultsHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *QuoteDefaultsHolder) Get() QuoteDefaults {
	return h.current.Load().(QuoteDefaults)
}

func setQuoteDefaults(v *viper.Viper, d QuoteDefaults) {
	v.SetDefault("quote.defaultMarkup", d.DefaultMarkup)
	v.SetDefault("quote.newLine.qty", d.NewLine.Quantity)
	v.SetDefault("quote.newLine.shorthand", d.NewLine.Shorthand)
	v.SetDefault("quote.newSubLine.qty", d.NewSubLine.Quantity)
	v.SetDefault("quote.newSubLine.shorthand", d.NewSubLine.Shorthand)
	v.SetDefault("quote.newPackage.defaultMarkup", d.NewPackage.DefaultMarkup)
}

func readQuoteDefaults(v *viper.Viper) (QuoteDefaults, error) {
	// Unmarshal merges file values over defaults leaf by leaf.
	var file struct {
		Quote QuoteDefaults `mapstructure:"quote"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return QuoteDefaults{}, err
	}
	if err := validateQuoteDefaults(file.Quote); err != nil {
		return QuoteDefaults{}, err
	}
	return file.Quote, nil
}

func validateQuoteDefaults(cfg QuoteDefaults) error {
	if !positive(cfg.DefaultMarkup) {
		return errors.New("quote.defaultMarkup must be a positive number")
	}
	if !positive(cfg.NewPackage.DefaultMarkup) {
		return errors.New("quote.newPackage.defaultMarkup must be a positive number")
	}
	if !positive(cfg.NewLine.Quantity) || !positive(cfg.NewSubLine.Quantity) {
		return errors.New("quote new line quantity must be a positive number")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
