// Command seed loads the game configuration and anti-cheating messages from a
// JSON file into the store selected by STORAGE_DRIVER.
//
//	{
//	  "game_config": { "game_anagrams": [...], "tutorial_anagrams": {...}, "time_settings": {...}, "rewards": {...} },
//	  "anti_cheating_messages": [ {"id": 1, "text": "..."}, "..." ]
//	}
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/config"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/storage"
)

func main() {
	file := flag.String("file", "seed.json", "path to the seed JSON file")
	migrate := flag.Bool("migrate", true, "apply migrations / create indexes before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.JSONLogs())

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("read seed file", "file", *file, "error", err)
	}
	gameCfg, messages, err := parseSeed(raw)
	if err != nil {
		logger.Fatal("parse seed file", "file", *file, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, *migrate)
	if err != nil {
		logger.Fatal("open storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer backend.Close()

	if err := seed(ctx, backend, gameCfg, messages); err != nil {
		backend.Close()
		logger.Fatal("seed failed", "error", err)
	}
	logger.Info("seed complete",
		"driver", backend.Driver,
		"anagrams", len(gameCfg.GameAnagrams),
		"messages", len(messages),
	)
}

func seed(ctx context.Context, b *storage.Backend, cfg *domain.GameConfig, messages []domain.AntiCheatingMessage) error {
	if cfg != nil {
		if err := b.Config.Replace(ctx, cfg); err != nil {
			return fmt.Errorf("replace game config: %w", err)
		}
	}
	for _, m := range messages {
		if err := b.Messages.Upsert(ctx, m); err != nil {
			return fmt.Errorf("upsert message %d: %w", m.ID, err)
		}
	}
	return nil
}

// parseSeed разбирает файл сида. Сообщение может быть объектом {id, text}
// или строкой, тогда id - номер в списке с 1
func parseSeed(raw []byte) (*domain.GameConfig, []domain.AntiCheatingMessage, error) {
	if !gjson.ValidBytes(raw) {
		return nil, nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(raw)

	var cfg *domain.GameConfig
	if c := doc.Get("game_config"); c.Exists() {
		cfg = &domain.GameConfig{}
		if err := json.Unmarshal([]byte(c.Raw), cfg); err != nil {
			return nil, nil, fmt.Errorf("game_config: %w", err)
		}
		if len(cfg.GameAnagrams) == 0 {
			return nil, nil, errors.New("game_config: game_anagrams is empty")
		}
	}

	var messages []domain.AntiCheatingMessage
	var parseErr error
	doc.Get("anti_cheating_messages").ForEach(func(key, v gjson.Result) bool {
		n := int(key.Int()) + 1
		switch {
		case v.Type == gjson.String:
			messages = append(messages, domain.AntiCheatingMessage{ID: n, Text: v.String()})
		case v.IsObject() && v.Get("text").Exists():
			id := n
			if v.Get("id").Exists() {
				id = int(v.Get("id").Int())
			}
			messages = append(messages, domain.AntiCheatingMessage{ID: id, Text: v.Get("text").String()})
		default:
			parseErr = fmt.Errorf("anti_cheating_messages[%d]: expected string or {id, text}", n-1)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, nil, parseErr
	}

	if cfg == nil && len(messages) == 0 {
		return nil, nil, errors.New("nothing to seed: game_config and anti_cheating_messages are both missing")
	}
	return cfg, messages, nil
}
