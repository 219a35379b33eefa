package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"ViviCity-App/internal/domain/model"
	"ViviCity-App/internal/domain/repository"
)

// Config MQTT接続設定
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// AnomalyPublisher は監査レポートをMQTTトピックへ配信する
type AnomalyPublisher struct {
	client      mqtt.Client
	topic       string
	isConnected bool
	mu          sync.RWMutex
}

// NewAnomalyPublisher はMQTTパブリッシャーを作成する
// Broker が空の場合はMQTTを無効として nil を返す
func NewAnomalyPublisher(cfg Config) repository.AnomalyPublisher {
	if cfg.Broker == "" {
		log.Println("MQTT disabled: MQTT_BROKER not set")
		return nil
	}

	p := &AnomalyPublisher{topic: cfg.Topic}
	if p.topic == "" {
		p.topic = "vivicity/anomalies"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "vivicity-backend"
	}
	opts.SetClientID(clientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Println("✅ MQTT connected")
		p.setConnected(true)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("⚠️ MQTT connection lost (%v), auto-reconnect will retry", err)
		p.setConnected(false)
	})

	p.client = mqtt.NewClient(opts)
	// 接続はバックグラウンドで行い、起動をブロックしない
	go p.client.Connect()

	return p
}

func (p *AnomalyPublisher) setConnected(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isConnected = v
}

// IsConnected はブローカーに接続済みか
func (p *AnomalyPublisher) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isConnected
}

// Publish はレポートをJSONで配信する
func (p *AnomalyPublisher) Publish(ctx context.Context, reports []model.AnomalyReport) error {
	if len(reports) == 0 {
		return nil
	}
	if !p.IsConnected() {
		return fmt.Errorf("MQTTブローカーに未接続のため配信できません")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"generated_at": time.Now().UTC(),
		"reports":      reports,
	})
	if err != nil {
		return fmt.Errorf("異常レポートのJSONマーシャル失敗: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("MQTT配信がタイムアウトしました: %s", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("MQTT配信に失敗: %w", err)
	}

	log.Printf("📡 %d件の異常レポートを配信しました (topic: %s)", len(reports), p.topic)
	return nil
}
