package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrUpstream = errors.New("generative service request failed")

// SystemPrompt confines the assistant to store topics. It is prepended to
// every customer message.
const SystemPrompt = `Eres un asistente virtual para la tienda de moda MUTE. ` +
	`Tu objetivo es ayudar a los clientes con información sobre ropa, accesorios, tendencias de moda y compras en línea. ` +
	`Solo responderás preguntas relacionadas con estos temas y no discutirás sobre otros asuntos. ` +
	`Si alguien pregunta sobre otro tema, responde educadamente que solo puedes ayudar con moda y productos de MUTE.`

// Generator produces a reply to a customer message. Implementations other
// than the HTTP client exist only in tests.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Client against the given base URL. The API key is
// loaded once at startup and injected here.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the system prompt plus the customer message upstream and
// returns the generated text.
func (c *Client) Generate(ctx context.Context, message string) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: SystemPrompt + "\n\nCliente: " + message}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, raw)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
