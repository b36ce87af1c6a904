package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the binary needs: secrets from the environment
// and the chat/spreadsheet surface from a YAML file.
type Config struct {
	TelegramToken   string
	SpreadsheetID   string
	CredentialsPath string
	KafkaBrokers    []string
	KafkaTopic      string
	MetricsAddr     string

	Bot Bot
}

// Bot is the operator-editable part of the configuration: hashtags, status
// labels, list names and reply pools.
type Bot struct {
	Timezone         string `yaml:"timezone"`
	PaymentsListName string `yaml:"payments_list_name"`
	SummaryListName  string `yaml:"summary_list_name"`

	OrderedStatus string `yaml:"ordered_status"`
	PaidStatus    string `yaml:"paid_status"`

	EmptyPlaceholder string `yaml:"empty_placeholder"`
	HandlePrefix     string `yaml:"handle_prefix"`

	HashtagMarker    string `yaml:"hashtag_marker"`
	RequestHashtag   string `yaml:"request_hashtag"`
	PaymentHashtag   string `yaml:"payment_hashtag"`
	PaidHashtag      string `yaml:"paid_hashtag"`
	FeedbackHashtag  string `yaml:"feedback_hashtag"`
	RejectionHashtag string `yaml:"rejection_hashtag"`
	GreetingTrigger  string `yaml:"greeting_trigger"`

	GreetingReplies  []string `yaml:"greeting_replies"`
	RequestReplies   []string `yaml:"request_replies"`
	PaymentReplies   []string `yaml:"payment_replies"`
	PaidReplies      []string `yaml:"paid_replies"`
	FeedbackReplies  []string `yaml:"feedback_replies"`
	RejectionReplies []string `yaml:"rejection_replies"`

	WrongHashtagText   string `yaml:"wrong_hashtag_text"`
	MissingReplyText   string `yaml:"missing_reply_text"`
	MediaReplyText     string `yaml:"media_reply_text"`
	IncorrectReplyText string `yaml:"incorrect_reply_text"`
	ListNotFoundText   string `yaml:"list_not_found_text"`

	RateLimitDelaySeconds int `yaml:"rate_limit_delay_seconds"`
}

func (b Bot) RateLimitDelay() time.Duration {
	return time.Duration(b.RateLimitDelaySeconds) * time.Second
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal("Error getting working directory:", err)
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}
}

// Load reads secrets from the environment (a .env file is picked up when
// present) and the bot surface from the YAML file at botConfigPath.
func Load(botConfigPath string) (*Config, error) {
	loadEnv()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "order_events"),
		MetricsAddr:     getEnv("METRICS_ADDR", ":9000"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	bot, err := loadBot(botConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Bot = *bot

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("SPREADSHEET_ID is not set")
	}
	if cfg.CredentialsPath == "" {
		return nil, errors.New("GOOGLE_CREDENTIALS_PATH is not set")
	}

	return cfg, nil
}

func loadBot(path string) (*Bot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bot config: %w", err)
	}

	bot := &Bot{
		Timezone:              "Europe/Moscow",
		HandlePrefix:          "@",
		HashtagMarker:         "#",
		RateLimitDelaySeconds: 5,
	}
	if err := yaml.Unmarshal(raw, bot); err != nil {
		return nil, fmt.Errorf("parse bot config: %w", err)
	}

	if err := bot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bot config %s: %w", path, err)
	}
	return bot, nil
}

func (b *Bot) Validate() error {
	required := map[string]string{
		"payments_list_name": b.PaymentsListName,
		"summary_list_name":  b.SummaryListName,
		"ordered_status":     b.OrderedStatus,
		"paid_status":        b.PaidStatus,
		"empty_placeholder":  b.EmptyPlaceholder,
		"hashtag_marker":     b.HashtagMarker,
		"request_hashtag":    b.RequestHashtag,
		"payment_hashtag":    b.PaymentHashtag,
		"paid_hashtag":       b.PaidHashtag,
		"feedback_hashtag":   b.FeedbackHashtag,
		"rejection_hashtag":  b.RejectionHashtag,
		"greeting_trigger":   b.GreetingTrigger,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	pools := map[string][]string{
		"greeting_replies":  b.GreetingReplies,
		"request_replies":   b.RequestReplies,
		"payment_replies":   b.PaymentReplies,
		"paid_replies":      b.PaidReplies,
		"feedback_replies":  b.FeedbackReplies,
		"rejection_replies": b.RejectionReplies,
	}
	for name, pool := range pools {
		if len(pool) == 0 {
			return fmt.Errorf("%s must contain at least one reply", name)
		}
	}

	if !strings.HasPrefix(b.RequestHashtag, b.HashtagMarker) {
		return fmt.Errorf("request_hashtag %q must start with the hashtag marker %q", b.RequestHashtag, b.HashtagMarker)
	}

	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", b.Timezone, err)
	}

	if b.RateLimitDelaySeconds < 0 {
		return errors.New("rate_limit_delay_seconds must not be negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
