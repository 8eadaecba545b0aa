package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
	"github.com/kirillkom/outfit-assistant/internal/infrastructure/resilience"
)

type Client struct {
	baseURL     string
	apiKey      string
	visionModel string
	genModel    string
	httpClient  *http.Client
}

func New(baseURL, apiKey, visionModel, genModel string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		visionModel: visionModel,
		genModel:    genModel,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Tagger implements the vision collaborator: it reads the stored image,
// sends it to the vision model and parses the suggested tag set. Calls run
// through the resilience executor since tagging retries are safe.
type Tagger struct {
	client   *Client
	store    ports.ImageStore
	executor *resilience.Executor
}

func NewTagger(client *Client, store ports.ImageStore, executor *resilience.Executor) *Tagger {
	return &Tagger{client: client, store: store, executor: executor}
}

func (t *Tagger) TagImage(ctx context.Context, item *domain.ClothingItem) (domain.TagSet, error) {
	image, err := t.store.Open(ctx, item.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("open stored image: %w", err)
	}
	defer image.Close()

	raw, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("read stored image: %w", err)
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", item.MimeType, base64.StdEncoding.EncodeToString(raw))

	messages := []chatMessage{{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: buildTaggingPrompt()},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		},
	}}

	var respText string
	call := func(callCtx context.Context) error {
		text, callErr := t.client.chat(callCtx, t.client.visionModel, messages, "tag")
		if callErr != nil {
			return callErr
		}
		respText = text
		return nil
	}
	if t.executor != nil {
		err = t.executor.Execute(ctx, "openai.tag", call, classifyOpenAIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded("tag image", err)
	}

	return parseTagSet(respText)
}

// Selector implements the reasoning collaborator. One call per composition,
// never retried: repeating a generative call silently would change the
// result behind the caller's back.
type Selector struct {
	client *Client
}

func NewSelector(client *Client) *Selector {
	return &Selector{client: client}
}

func (s *Selector) SelectOutfit(ctx context.Context, occasion, preferences string, snapshot []domain.ClothingItem) ([]string, error) {
	messages := []chatMessage{{
		Role:    "user",
		Content: buildSelectionPrompt(occasion, preferences, snapshot),
	}}

	respText, err := s.client.chat(ctx, s.client.genModel, messages, "select")
	if err != nil {
		return nil, err
	}

	var selection struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &selection); err != nil {
		return nil, fmt.Errorf("parse selection json: %w", err)
	}
	return selection.Items, nil
}

func parseTagSet(respText string) (domain.TagSet, error) {
	var raw map[string][]string
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &raw); err != nil {
		return nil, fmt.Errorf("parse tag json: %w", err)
	}

	tags := domain.TagSet{}
	for dimension, values := range raw {
		dimension = strings.ToLower(strings.TrimSpace(dimension))
		if !domain.ValidDimension(dimension) {
			continue
		}
		for _, value := range values {
			value = strings.TrimSpace(value)
			if value != "" {
				tags[dimension] = append(tags[dimension], value)
			}
		}
	}
	return tags, nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
