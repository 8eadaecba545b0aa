package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

type imageStoreFake struct {
	content string
	openErr error
}

func (f *imageStoreFake) Save(context.Context, string, io.Reader) error {
	return fmt.Errorf("not implemented")
}

func (f *imageStoreFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *imageStoreFake) Remove(context.Context, string) error {
	return fmt.Errorf("not implemented")
}

func chatResponse(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestTagImageParsesAndFiltersTags(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse(`{"type":[" Shirt "],"color":["blue"],"fabric":["cotton"],"style":[""]}`)))
	}))
	defer server.Close()

	client := New(server.URL, "secret", "vision-model", "gen-model")
	tagger := NewTagger(client, &imageStoreFake{content: "png-bytes"}, nil)

	tags, err := tagger.TagImage(context.Background(), &domain.ClothingItem{
		ID:        "item-1",
		ImagePath: "item-1.png",
		MimeType:  "image/png",
	})
	if err != nil {
		t.Fatalf("TagImage() error = %v", err)
	}

	if gotPath != "/v1/chat/completions" {
		t.Fatalf("expected chat completions path, got %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"model":"vision-model"`) {
		t.Fatalf("expected vision model in request, got %s", gotBody)
	}
	if !strings.Contains(gotBody, "data:image/png;base64,") {
		t.Fatalf("expected base64 image data url in request")
	}

	if len(tags["type"]) != 1 || tags["type"][0] != "Shirt" {
		t.Fatalf("expected trimmed type tag, got %+v", tags["type"])
	}
	if len(tags["color"]) != 1 {
		t.Fatalf("expected color tag, got %+v", tags)
	}
	if _, ok := tags["fabric"]; ok {
		t.Fatalf("unknown dimension must be dropped, got %+v", tags)
	}
	if _, ok := tags["style"]; ok {
		t.Fatalf("empty values must be dropped, got %+v", tags)
	}
}

func TestTagImageServerErrorIsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "", "vision-model", "gen-model")
	tagger := NewTagger(client, &imageStoreFake{content: "png"}, nil)

	_, err := tagger.TagImage(context.Background(), &domain.ClothingItem{ImagePath: "x.png", MimeType: "image/png"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream exploded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestRateLimitCarriesRetryHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "2")
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	selector := NewSelector(New(server.URL, "", "v", "g"))
	_, err := selector.SelectOutfit(context.Background(), "walk", "", []domain.ClothingItem{{ID: "a"}})
	if err == nil {
		t.Fatalf("expected error")
	}

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.RetryAfter != 2*time.Second {
		t.Fatalf("expected 2s retry hint, got %s", statusErr.RetryAfter)
	}

	class := classifyOpenAIError(err)
	if !class.Retryable || class.RetryAfter != 2*time.Second {
		t.Fatalf("expected retryable classification with 2s hint, got %+v", class)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("seconds form: expected 3s, got %s", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("empty header: expected 0, got %s", got)
	}
	if got := parseRetryAfter("-1"); got != 0 {
		t.Fatalf("negative seconds: expected 0, got %s", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Fatalf("garbage: expected 0, got %s", got)
	}

	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got < 80*time.Second || got > 90*time.Second {
		t.Fatalf("date form: expected ~90s, got %s", got)
	}

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(past); got != 0 {
		t.Fatalf("past date: expected 0, got %s", got)
	}
}

func TestTagImageRejectsUnparsableAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatResponse("I cannot help with that.")))
	}))
	defer server.Close()

	client := New(server.URL, "", "vision-model", "gen-model")
	tagger := NewTagger(client, &imageStoreFake{content: "png"}, nil)

	_, err := tagger.TagImage(context.Background(), &domain.ClothingItem{ImagePath: "x.png", MimeType: "image/png"})
	if err == nil || !strings.Contains(err.Error(), "parse tag json") {
		t.Fatalf("expected tag parse error, got %v", err)
	}
}

func TestSelectOutfitParsesSelection(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(chatResponse("Here you go:\n{\"items\": [\"a\", \"b\"]}\nEnjoy!")))
	}))
	defer server.Close()

	client := New(server.URL, "", "vision-model", "gen-model")
	selector := NewSelector(client)

	snapshot := []domain.ClothingItem{
		{ID: "a", Name: "white shirt", Tags: domain.TagSet{"type": {"shirt"}, "color": {"white"}}},
		{ID: "b", Tags: domain.TagSet{"type": {"jeans"}}},
	}
	ids, err := selector.SelectOutfit(context.Background(), "picnic", "bright colors", snapshot)
	if err != nil {
		t.Fatalf("SelectOutfit() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("expected [a b], got %+v", ids)
	}

	if !strings.Contains(gotBody, `"model":"gen-model"`) {
		t.Fatalf("expected generative model in request, got %s", gotBody)
	}
	for _, fragment := range []string{"id=a", "id=b", "type=shirt", "picnic", "bright colors"} {
		if !strings.Contains(gotBody, fragment) {
			t.Fatalf("expected %q in selection prompt, got %s", fragment, gotBody)
		}
	}
}

func TestSelectOutfitNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	selector := NewSelector(New(server.URL, "", "v", "g"))
	_, err := selector.SelectOutfit(context.Background(), "walk", "", []domain.ClothingItem{{ID: "a"}})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no choices error, got %v", err)
	}
}

func TestSelectOutfitMalformedSelection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatResponse(`{"items": "not-a-list"}`)))
	}))
	defer server.Close()

	selector := NewSelector(New(server.URL, "", "v", "g"))
	_, err := selector.SelectOutfit(context.Background(), "walk", "", []domain.ClothingItem{{ID: "a"}})
	if err == nil || !strings.Contains(err.Error(), "parse selection json") {
		t.Fatalf("expected selection parse error, got %v", err)
	}
}
