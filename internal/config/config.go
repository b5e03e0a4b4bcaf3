package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v8"
)

type Config interface {
	ServerAddress() string
	BillingAddress() string
	ScheduleAddress() string
	PollInterval() time.Duration
	CachePath() string
	CacheTTL() time.Duration
}

type Builder struct {
	parameters *parameters
	arguments  []string
	err        error
}

type parameters struct {
	ServerAddress   string        `env:"RUN_ADDRESS"`
	BillingAddress  string        `env:"BILLING_ADDRESS"`
	ScheduleAddress string        `env:"SCHEDULE_ADDRESS"`
	PollInterval    time.Duration `env:"POLL_INTERVAL"`
	CachePath       string        `env:"CACHE_PATH"`
	CacheTTL        time.Duration `env:"CACHE_TTL"`
}

const (
	defaultServerAddress = "localhost:8080"
	defaultPollInterval  = 3 * time.Second
	defaultCachePath     = "clubhost.db"
	defaultCacheTTL      = 10 * time.Minute
)

func NewBuilder(arguments []string) *Builder {
	return &Builder{
		parameters: &parameters{
			ServerAddress: defaultServerAddress,
			PollInterval:  defaultPollInterval,
			CachePath:     defaultCachePath,
			CacheTTL:      defaultCacheTTL,
		},
		arguments: arguments,
	}
}

func (b *Builder) LoadEnv() *Builder {
	if err := env.Parse(b.parameters); err != nil {
		b.err = err
	}

	return b
}

func (b *Builder) LoadFlags() *Builder {
	flags := flag.NewFlagSet("clubhost", flag.ContinueOnError)
	flags.StringVar(&b.parameters.ServerAddress, "a", b.parameters.ServerAddress, "адрес и порт запуска HTTP-сервера")
	flags.StringVar(&b.parameters.BillingAddress, "b", b.parameters.BillingAddress, "адрес биллингового API")
	flags.StringVar(&b.parameters.ScheduleAddress, "s", b.parameters.ScheduleAddress, "адрес API расписания")
	flags.DurationVar(&b.parameters.PollInterval, "i", b.parameters.PollInterval, "интервал опроса статуса заказа")
	flags.StringVar(&b.parameters.CachePath, "c", b.parameters.CachePath, "путь к файлу локального кеша")
	flags.DurationVar(&b.parameters.CacheTTL, "t", b.parameters.CacheTTL, "время жизни записей локального кеша")
	if err := flags.Parse(b.arguments); err != nil {
		b.err = err
	}

	return b
}

func (b *Builder) Build() (Config, error) {
	return b, b.err
}

func (b *Builder) ServerAddress() string {
	return b.parameters.ServerAddress
}

func (b *Builder) BillingAddress() string {
	return b.parameters.BillingAddress
}

func (b *Builder) ScheduleAddress() string {
	return b.parameters.ScheduleAddress
}

func (b *Builder) PollInterval() time.Duration {
	return b.parameters.PollInterval
}

func (b *Builder) CachePath() string {
	return b.parameters.CachePath
}

func (b *Builder) CacheTTL() time.Duration {
	return b.parameters.CacheTTL
}
