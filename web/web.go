// Package web provides the webhook HTTP server for the bot.
//
// The server exposes the Telegram webhook endpoint and a health endpoint.
// Parse failures are reported back to the sender as a reply message with a
// 200 status; Telegram retries non-2xx responses, which would spam the chat.
//
// The account configuration is loaded once at startup and can be hot-reloaded
// from disk; reloads atomically swap the whole Config reference so in-flight
// requests observe either the old or the new map in full, never a partially
// updated one.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/beanbot-dev/beanbot"
	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/formatter"
	"github.com/beanbot-dev/beanbot/repository"
	"github.com/beanbot-dev/beanbot/telegram"
	"github.com/beanbot-dev/beanbot/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	WatchEnabled bool

	configPath string
	store      repository.Store

	mu  sync.RWMutex
	cfg *config.Config
}

// New creates a server reading its account map from configPath and saving
// accepted entries through store.
func New(port int, configPath string, store repository.Store) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		configPath: configPath,
		store:      store,
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.configPath == "" {
		return fmt.Errorf("config file is required")
	}

	loadTimer := timer.Child("web.load_config")
	if err := s.reloadConfig(); err != nil {
		loadTimer.End()
		return fmt.Errorf("failed to load config: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start config watcher: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, s.Router())
}

// Router builds the request multiplexer. Exposed for tests.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return mux
}

// Config returns the current configuration snapshot. Handlers capture it
// once per request so a concurrent reload cannot split a call.
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig installs a configuration, replacing any previous one. Used by
// tests to skip the file loading path.
func (s *Server) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// reloadConfig loads or reloads the configuration from disk. A reload that
// fails validation keeps the previous configuration in place.
func (s *Server) reloadConfig() error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}

	s.SetConfig(cfg)
	return nil
}

// handleWebhook processes one Telegram update through the pipeline and
// answers with a sendMessage body.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := telegram.DecodeUpdate(r.Body)
	if err != nil {
		log.Printf("Rejected webhook payload: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg := update.Msg()
	cfg := s.Config()

	tx, err := beanbot.Parse(msg.Text, cfg)
	if err != nil {
		log.Printf("Failed to parse input %q: %v", msg.Text, err)
		s.reply(w, telegram.NewReply(msg, telegram.FailureText(err)))
		return
	}

	entry := formatter.New().FormatString(tx)

	if err := s.store.Save(r.Context(), tx, entry); err != nil {
		log.Printf("Failed to save entry: %v", err)
		http.Error(w, "failed to save entry", http.StatusInternalServerError)
		return
	}

	s.reply(w, telegram.NewReply(msg, telegram.SuccessText(entry)))
}

func (s *Server) reply(w http.ResponseWriter, reply *telegram.Reply) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		log.Printf("Failed to encode reply: %v", err)
	}
}

// handleHealthz reports the server status and the active configuration.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"version":  s.Version,
		"currency": cfg.DefaultCurrency(),
		"accounts": cfg.Tags(),
	})
}

// startWatcher watches the config file and hot-reloads it on change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.configPath); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.configPath, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				if err := s.reloadConfig(); err != nil {
					log.Printf("Failed to reload config, keeping previous: %v", err)
					return
				}
				log.Printf("Reloaded config from %s", s.configPath)

				// Re-add in case the file was replaced atomically.
				_ = watcher.Add(s.configPath)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}
