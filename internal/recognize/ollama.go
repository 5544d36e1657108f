package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Ollama recognizes cover text with a locally hosted vision model.
// Like Gemini it returns plain text only, no block geometry.
type Ollama struct {
	host   string
	model  string
	client *http.Client
}

// NewOllama creates an Ollama provider. Empty host/model fall back to the
// OLLAMA_URL/OLLAMA_HOST and OLLAMA_MODEL environment variables.
func NewOllama(host, model string) *Ollama {
	if host == "" {
		host = os.Getenv("OLLAMA_URL")
	}
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = os.Getenv("OLLAMA_MODEL")
	}
	if model == "" {
		model = "llava:13b"
	}
	return &Ollama{
		host:   host,
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *Ollama) Name() string { return "ollama/" + o.model }

func (o *Ollama) Recognize(ctx context.Context, img []byte) (*Result, error) {
	requestBody := map[string]any{
		"model":  o.model,
		"prompt": visionPrompt,
		"images": []string{base64.StdEncoding.EncodeToString(img)},
		"stream": false,
		"options": map[string]any{
			"temperature": 0.0,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return FromText(ollamaResp.Response), nil
}
