package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/intent"
	"ai-portgate-be/pkg/llm"
)

const (
	DefaultClassifyTimeout     = 6 * time.Second
	DefaultConfidenceThreshold = 0.45

	// confidence assigned when the model's output had to be rescued by
	// keyword matching over the raw text
	fallbackConfidence = 0.3
)

// Classifier wraps one LLM completion call into the classification
// contract: hard timeout, closed-vocabulary validation, malformed-output
// rescue and a confidence threshold. It never blocks past its deadline.
type Classifier struct {
	provider  llm.LLMProvider
	timeout   time.Duration
	threshold float64
	log       logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, timeout time.Duration, threshold float64, log logger.ILogger) *Classifier {
	if timeout <= 0 {
		timeout = DefaultClassifyTimeout
	}
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Classifier{provider: provider, timeout: timeout, threshold: threshold, log: log}
}

// llmVerdict is the JSON contract the prompt demands from the model.
type llmVerdict struct {
	Intent     string         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Confidence float64        `json:"confidence"`
}

// Classify issues exactly one completion call. Timeouts surface as
// ErrClassifyTimeout and transport errors as wrapped errors; the caller
// owns the fallback decision. Malformed model output is rescued locally
// and is not an error.
func (c *Classifier) Classify(ctx context.Context, message string, history []intent.Turn, traceID string) (intent.Result, intent.Entities, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildClassifyPrompt(message, history)
	raw, err := c.provider.Generate(callCtx, prompt, llm.WithTemperature(0.0), llm.WithMaxTokens(300))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			c.log.Warn("assistant.classifier", "llm call timed out", map[string]interface{}{
				"trace_id": traceID,
				"timeout":  c.timeout.String(),
			})
			return intent.Result{}, nil, ErrClassifyTimeout
		}
		return intent.Result{}, nil, fmt.Errorf("llm classification: %w", err)
	}

	verdict, parseErr := parseVerdict(raw)
	if parseErr != nil {
		c.log.Warn("assistant.classifier", "malformed llm output, keyword fallback", map[string]interface{}{
			"trace_id": traceID,
			"error":    parseErr.Error(),
		})
		return keywordFallback(message), nil, nil
	}

	res := intent.Result{
		Intent:     verdict.Intent,
		Confidence: clamp01(verdict.Confidence),
		Reasoning:  []string{"llm_classification"},
	}
	if !intent.Known(res.Intent) {
		res.Intent = intent.Unknown
		res.Reasoning = append(res.Reasoning, "out_of_vocabulary")
	}
	if res.Confidence < c.threshold && res.Intent != intent.Unknown {
		// a low-confidence guess is worse than admitting ignorance;
		// the reported confidence is kept for the trace
		res.Intent = intent.Unknown
		res.Reasoning = append(res.Reasoning, "below_threshold")
	}
	res.EntitiesHint = intent.HintsFor(res.Intent)

	return res, normalizeEntities(verdict.Entities), nil
}

func parseVerdict(raw string) (*llmVerdict, error) {
	cleaned := stripCodeFences(raw)
	jsonContent := extractJSON(cleaned)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}
	var v llmVerdict
	if err := json.Unmarshal([]byte(jsonContent), &v); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if v.Intent == "" {
		return nil, fmt.Errorf("verdict is missing the intent field")
	}
	return &v, nil
}

// keywordFallback rescues a malformed completion by running the same
// keyword families the pattern table uses, at a fixed low confidence.
func keywordFallback(message string) intent.Result {
	res := intent.Classify(message)
	return intent.Result{
		Intent:       res.Intent,
		Confidence:   fallbackConfidence,
		Reasoning:    append([]string{"llm_output_malformed"}, res.Reasoning...),
		EntitiesHint: res.EntitiesHint,
	}
}

// normalizeEntities keeps only string-valued entities the prompt asked
// for, so a creative model cannot smuggle arbitrary structure downstream.
func normalizeEntities(raw map[string]any) intent.Entities {
	if len(raw) == 0 {
		return nil
	}
	out := intent.Entities{}
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			if val != "" {
				out[k] = val
			}
		case bool:
			if strings.HasPrefix(k, "date_") {
				out[k] = val
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
