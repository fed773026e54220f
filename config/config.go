// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads the jotpad TOML configuration file.
//
// Example:
//
//	[ai]
//	local_host = "http://gpu-box:11434"
//	local_model = "qwen2.5:3b"
//	probe_timeout = "3s"
//
//	[server]
//	addr = ":8080"
//	database = "/var/lib/jotpad/jotpad.db"
//
//	[client]
//	server_url = "http://localhost:8080"
//	data_dir = "~/.local/share/jotpad"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/poiesic/jotpad/ai"
)

// ErrUnknownKeys is returned when the file contains keys no section defines.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// File is the parsed configuration file.
type File struct {
	AI     AI     `toml:"ai"`
	Server Server `toml:"server"`
	Client Client `toml:"client"`
}

// AI overrides ai.Config defaults. Zero values keep the default.
type AI struct {
	LocalHost           string        `toml:"local_host"`
	LocalModel          string        `toml:"local_model"`
	OpenAIModel         string        `toml:"openai_model"`
	OpenAIBaseURL       string        `toml:"openai_base_url"`
	AnthropicModel      string        `toml:"anthropic_model"`
	AnthropicBaseURL    string        `toml:"anthropic_base_url"`
	AnthropicMaxTokens  int64         `toml:"anthropic_max_tokens"`
	AnthropicMaxRetries *int          `toml:"anthropic_max_retries"`
	GeminiModel         string        `toml:"gemini_model"`
	GeminiEndpoint      string        `toml:"gemini_endpoint"`
	Temperature         *float64      `toml:"temperature"`
	ProbeTimeout        time.Duration `toml:"probe_timeout"`
	MaxInputChars       *int          `toml:"max_input_chars"`
}

// Server configures `jotpad serve`.
type Server struct {
	Addr         string `toml:"addr"`
	Database     string `toml:"database"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Client configures the local workspace and its connection to a server.
type Client struct {
	ServerURL      string        `toml:"server_url"`
	UserID         string        `toml:"user_id"`
	DataDir        string        `toml:"data_dir"`
	RetryAttempts  int           `toml:"retry_attempts"`
	RetryBaseDelay time.Duration `toml:"retry_base_delay"`
	MigrateUIState bool          `toml:"migrate_ui_state"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Server: Server{
			Addr:     ":8080",
			Database: "jotpad.db",
		},
		Client: Client{
			DataDir:        DefaultDataDir(),
			RetryAttempts:  3,
			RetryBaseDelay: 200 * time.Millisecond,
		},
	}
}

// DefaultDataDir returns the per-user directory for the local store.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jotpad")
	}
	return ".jotpad"
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*File, error) {
	f := Default()
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := f.parse(string(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (*File, error) {
	f := Default()
	if err := f.parse(text); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) parse(text string) error {
	md, err := toml.Decode(text, f)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	f.Client.DataDir = expandHome(f.Client.DataDir)
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// AIOptions converts the [ai] section into ai.Config options.
func (f *File) AIOptions() []ai.ConfigOption {
	a := f.AI
	var opts []ai.ConfigOption
	if a.LocalHost != "" {
		opts = append(opts, ai.WithLocalHost(a.LocalHost))
	}
	if a.LocalModel != "" {
		opts = append(opts, ai.WithLocalModel(a.LocalModel))
	}
	if a.OpenAIModel != "" {
		opts = append(opts, ai.WithOpenAIModel(a.OpenAIModel))
	}
	if a.OpenAIBaseURL != "" {
		opts = append(opts, ai.WithOpenAIBaseURL(a.OpenAIBaseURL))
	}
	if a.AnthropicModel != "" {
		opts = append(opts, ai.WithAnthropicModel(a.AnthropicModel))
	}
	if a.AnthropicBaseURL != "" {
		opts = append(opts, ai.WithAnthropicBaseURL(a.AnthropicBaseURL))
	}
	if a.AnthropicMaxTokens > 0 {
		opts = append(opts, ai.WithAnthropicMaxTokens(a.AnthropicMaxTokens))
	}
	if a.AnthropicMaxRetries != nil {
		opts = append(opts, ai.WithAnthropicMaxRetries(*a.AnthropicMaxRetries))
	}
	if a.GeminiModel != "" {
		opts = append(opts, ai.WithGeminiModel(a.GeminiModel))
	}
	if a.GeminiEndpoint != "" {
		opts = append(opts, ai.WithGeminiEndpoint(a.GeminiEndpoint))
	}
	if a.Temperature != nil {
		opts = append(opts, ai.WithTemperature(*a.Temperature))
	}
	if a.ProbeTimeout > 0 {
		opts = append(opts, ai.WithProbeTimeout(a.ProbeTimeout))
	}
	if a.MaxInputChars != nil {
		opts = append(opts, ai.WithMaxInputChars(*a.MaxInputChars))
	}
	return opts
}
