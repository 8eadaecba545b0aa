package openai

import (
	"fmt"
	"strings"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

func buildTaggingPrompt() string {
	return `You are a clothing tagger.
Look at the image and return a strict JSON object with keys:
type, color, category, occasion, style. Every key maps to an array of short
lowercase strings. No markdown, no extra keys.

Example:
{"type":["shirt"],"color":["blue","white"],"category":["casual"],"occasion":["everyday","work"],"style":["modern"]}`
}

func buildSelectionPrompt(occasion, preferences string, snapshot []domain.ClothingItem) string {
	var catalog strings.Builder
	for _, item := range snapshot {
		catalog.WriteString("id=" + item.ID)
		if item.Name != "" {
			catalog.WriteString(fmt.Sprintf(" name=%q", item.Name))
		}
		for _, dimension := range []string{
			domain.DimensionType,
			domain.DimensionColor,
			domain.DimensionCategory,
			domain.DimensionOccasion,
			domain.DimensionStyle,
		} {
			if values := item.Tags[dimension]; len(values) > 0 {
				catalog.WriteString(fmt.Sprintf(" %s=%s", dimension, strings.Join(values, ",")))
			}
		}
		catalog.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are an outfit stylist working with a fixed wardrobe.
Pick a coherent outfit for the occasion below, in wearing order
(top, bottom, footwear, then accessories).
Use ONLY the ids listed in the wardrobe. Refer to items by id, never by
description. Return a strict JSON object: {"items": ["<id>", ...]}.
No markdown, no extra keys.

Occasion:
%s
`, occasion)
	if preferences != "" {
		prompt += fmt.Sprintf(`
Preferences:
%s
`, preferences)
	}
	prompt += fmt.Sprintf(`
Wardrobe:
%s`, catalog.String())
	return prompt
}
