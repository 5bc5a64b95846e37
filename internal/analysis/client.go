// Package analysis sends photos to a generative model for progress
// comparison. Photos leave the vault only through this package, and only when
// the user explicitly asks for a comparison.
package analysis

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyInput is returned when a comparison is requested without photos
	// on one of the sides.
	ErrEmptyInput = errors.New("analysis: no photos to analyze")

	// ErrServiceUnavailable wraps transport and upstream failures.
	ErrServiceUnavailable = errors.New("analysis: service unavailable")

	// ErrNoContent is returned when the model answers without any text.
	ErrNoContent = errors.New("analysis: empty model response")
)

const comparisonPrompt = `You are a supportive fitness progress analyst. The first set of photos ` +
	`was taken earlier, the second set more recently. Compare them and describe visible changes ` +
	`in physique, posture and overall condition. Be specific, honest and encouraging. ` +
	`Do not give medical advice. Answer in plain prose, no markdown.`

const sessionPrompt = `You are a supportive fitness progress analyst. These photos are from a ` +
	`single check-in. Describe posture and physique observations worth tracking over time. ` +
	`Be specific and encouraging. Do not give medical advice. Answer in plain prose, no markdown.`

// Client talks to a Gemini-style generateContent endpoint.
type Client struct {
	http  *resty.Client
	model string
	log   zerolog.Logger
}

// NewClient builds a client for the given endpoint. The key travels in the
// x-goog-api-key header on every request.
func NewClient(baseURL, apiKey, model string, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)

	return &Client{http: httpClient, model: model, log: log}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Compare sends two photo sets to the model and returns its progress
// assessment as plain text.
func (c *Client) Compare(ctx context.Context, before, after [][]byte) (string, error) {
	if len(before) == 0 || len(after) == 0 {
		return "", ErrEmptyInput
	}

	parts := []part{{Text: comparisonPrompt}, {Text: "Earlier photos:"}}
	parts = appendImages(parts, before)
	parts = append(parts, part{Text: "Recent photos:"})
	parts = appendImages(parts, after)

	return c.generate(ctx, parts)
}

// AnalyzeSession sends one session's photos for a standalone assessment.
func (c *Client) AnalyzeSession(ctx context.Context, photos [][]byte) (string, error) {
	if len(photos) == 0 {
		return "", ErrEmptyInput
	}

	parts := []part{{Text: sessionPrompt}}
	parts = appendImages(parts, photos)

	return c.generate(ctx, parts)
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	var result generateResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Contents: []content{{Parts: parts}}}).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Msg("model request rejected")
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode())
	}

	for _, candidate := range result.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", ErrNoContent
}

func appendImages(parts []part, photos [][]byte) []part {
	for _, photo := range photos {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(photo),
		}})
	}
	return parts
}
