package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ViviCity-App/internal/domain/model"
)

// Config はアプリケーション全体の設定
// 接続情報や秘密情報は環境変数、チューニング値はYAMLから読み込む
type Config struct {
	Port string

	FirestoreProjectID string
	GoogleCredentials  string

	SupabaseURL string
	SupabaseKey string
	DatabaseURL string

	JWTSecret      string
	CORSOrigin     string
	OperatorEmails []string

	MQTT     MQTTConfig
	Tunables Tunables
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// Tunables は CONFIG_PATH のYAMLで上書きできる値
type Tunables struct {
	OutOfRangePolicy  string             `yaml:"out_of_range_policy"`
	ReviewRadiusKm    float64            `yaml:"review_radius_km"`
	ActionRadiusKm    float64            `yaml:"action_radius_km"`
	DatasetTTL        time.Duration      `yaml:"dataset_ttl"`
	TokenTTL          time.Duration      `yaml:"token_ttl"`
	AuditRanges       []model.FieldRange `yaml:"audit_ranges"`
	AuthRatePerSecond float64            `yaml:"auth_rate_per_second"`
	AuthBurst         int                `yaml:"auth_burst"`
}

// DefaultTunables は既定のチューニング値
func DefaultTunables() Tunables {
	return Tunables{
		OutOfRangePolicy:  "clamp",
		ReviewRadiusKm:    5,
		ActionRadiusKm:    10,
		DatasetTTL:        60 * time.Second,
		TokenTTL:          7 * 24 * time.Hour,
		AuditRanges:       model.DefaultAuditRanges(),
		AuthRatePerSecond: 1,
		AuthBurst:         5,
	}
}

// Load は .env と環境変数、CONFIG_PATH のYAMLから設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		GoogleCredentials:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseKey:        os.Getenv("SUPABASE_ANON_KEY"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
		OperatorEmails:     splitList(os.Getenv("OPERATOR_EMAILS")),
		MQTT: MQTTConfig{
			Broker:   os.Getenv("MQTT_BROKER"),
			ClientID: os.Getenv("MQTT_CLIENT_ID"),
			Username: os.Getenv("MQTT_USERNAME"),
			Password: os.Getenv("MQTT_PASSWORD"),
			Topic:    getEnv("MQTT_TOPIC", "vivicity/anomalies"),
		},
		Tunables: DefaultTunables(),
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		tunables, err := LoadTunables(path)
		if err != nil {
			return nil, err
		}
		cfg.Tunables = tunables
	}

	if v := os.Getenv("DATASET_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DATASET_TTL_SECONDS が整数ではありません: %w", err)
		}
		cfg.Tunables.DatasetTTL = time.Duration(secs) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTunables はYAMLファイルを読み込み、未指定の項目は既定値のままにする
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}

	// YAMLで指定された場合のみ置き換えるため一旦退避
	defaults := t.AuditRanges
	t.AuditRanges = nil
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("設定ファイルのYAMLパース失敗: %w", err)
	}
	if len(t.AuditRanges) == 0 {
		t.AuditRanges = defaults
	}
	return t, nil
}

// Validate は必須項目と値の妥当性をチェックする
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET環境変数が設定されていません")
	}
	if c.Tunables.ReviewRadiusKm <= 0 || c.Tunables.ActionRadiusKm <= 0 {
		return fmt.Errorf("近傍検索の半径は正の値である必要があります")
	}
	for _, fr := range c.Tunables.AuditRanges {
		if fr.Min > fr.Max {
			return fmt.Errorf("監査範囲 %s の min が max を超えています", fr.Field)
		}
	}
	return nil
}

// splitList はカンマ区切りの値を空要素を除いて分割する
func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
