package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/intent"
	"ai-portgate-be/pkg/llm"
)

// scriptedProvider returns a canned completion, an error, or blocks until
// the context is cancelled.
type scriptedProvider struct {
	output string
	err    error
	hang   bool
	calls  int
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	if s.hang {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.output, s.err
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, "", options...)
}

func newTestClassifier(p llm.LLMProvider) *Classifier {
	return NewClassifier(p, time.Second, 0.45, logger.NopLogger{})
}

func TestClassifyParsesVerdict(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "booking_status", "entities": {"booking_ref": "REF123"}, "confidence": 0.92}`}
	res, ents, err := newTestClassifier(p).Classify(context.Background(), "status of REF123", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != intent.BookingStatus || res.Confidence != 0.92 {
		t.Fatalf("got %s/%.2f", res.Intent, res.Confidence)
	}
	if ents["booking_ref"] != "REF123" {
		t.Errorf("entities = %v", ents)
	}
}

func TestClassifyStripsMarkdownFences(t *testing.T) {
	p := &scriptedProvider{output: "```json\n{\"intent\": \"help\", \"confidence\": 0.9}\n```"}
	res, _, err := newTestClassifier(p).Classify(context.Background(), "help", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != intent.Help {
		t.Fatalf("got %s", res.Intent)
	}
}

func TestClassifyMalformedFallsBackToKeywords(t *testing.T) {
	p := &scriptedProvider{output: "I think the user wants to check availability."}
	res, ents, err := newTestClassifier(p).Classify(context.Background(), "available slots at terminal A", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != intent.SlotAvailability {
		t.Fatalf("got %s, want keyword-derived %s", res.Intent, intent.SlotAvailability)
	}
	if res.Confidence != 0.3 {
		t.Fatalf("confidence = %.2f, want fixed 0.30", res.Confidence)
	}
	if res.Reasoning[0] != "llm_output_malformed" {
		t.Errorf("reasoning = %v", res.Reasoning)
	}
	if ents != nil {
		t.Errorf("entities = %v, want none from malformed output", ents)
	}
}

func TestClassifyCoercesOutOfVocabulary(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "order_pizza", "confidence": 0.99}`}
	res, _, err := newTestClassifier(p).Classify(context.Background(), "whatever", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != intent.Unknown {
		t.Fatalf("got %s, want %s", res.Intent, intent.Unknown)
	}
}

func TestClassifyThresholdDowngrade(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "booking_status", "confidence": 0.30}`}
	res, _, err := newTestClassifier(p).Classify(context.Background(), "hmm", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != intent.Unknown {
		t.Fatalf("got %s, want %s", res.Intent, intent.Unknown)
	}
	if res.Confidence != 0.30 {
		t.Fatalf("confidence = %.2f, want reported 0.30 preserved", res.Confidence)
	}
}

func TestClassifyTimeout(t *testing.T) {
	p := &scriptedProvider{hang: true}
	c := NewClassifier(p, 50*time.Millisecond, 0.45, logger.NopLogger{})
	_, _, err := c.Classify(context.Background(), "slow", nil, "t1")
	if !errors.Is(err, ErrClassifyTimeout) {
		t.Fatalf("err = %v, want ErrClassifyTimeout", err)
	}
}

func TestClassifyTransportError(t *testing.T) {
	p := &scriptedProvider{err: errors.New("connection refused")}
	_, _, err := newTestClassifier(p).Classify(context.Background(), "hi", nil, "t1")
	if err == nil || errors.Is(err, ErrClassifyTimeout) {
		t.Fatalf("err = %v, want wrapped transport error", err)
	}
}

func TestClassifyNormalizesEntities(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "booking_create", "confidence": 0.9,
		"entities": {"terminal": "A", "date_tomorrow": true, "nested": {"bad": 1}, "count": 3}}`}
	_, ents, err := newTestClassifier(p).Classify(context.Background(), "book terminal A", nil, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if ents["terminal"] != "A" || ents["date_tomorrow"] != true {
		t.Fatalf("entities = %v", ents)
	}
	if _, bad := ents["nested"]; bad {
		t.Error("nested structure should have been dropped")
	}
	if _, bad := ents["count"]; bad {
		t.Error("non-string scalar should have been dropped")
	}
}
