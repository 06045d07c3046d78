// Audit tail: follows the assistant event stream on NATS and prints each
// event as it arrives. Useful for watching classifications and denials live
// during local development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"ai-portgate-be/pkg/events"
	pktNats "ai-portgate-be/pkg/nats"
)

func main() {
	_ = godotenv.Load()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", natsURL, err)
	}
	defer sub.Close()

	color.Cyan("=== Assistant Audit Tail (%s) ===", natsURL)

	err = sub.Subscribe("events.>", "audit-tail", func(_ context.Context, event events.Event) error {
		printEvent(event)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	color.Cyan("\n=== Audit Tail stopped ===")
}

func printEvent(event events.Event) {
	subject := event.EventType()
	switch subject {
	case "events." + events.TypeIntentDenied:
		color.Red("\n%s %s", event.Timestamp().Format("15:04:05"), subject)
	case "events." + events.TypeAgentFailed:
		color.Magenta("\n%s %s", event.Timestamp().Format("15:04:05"), subject)
	default:
		color.Green("\n%s %s", event.Timestamp().Format("15:04:05"), subject)
	}

	b, err := json.MarshalIndent(event.Payload(), "", "  ")
	if err != nil {
		fmt.Printf("%v\n", event.Payload())
		return
	}
	fmt.Println(string(b))
}
