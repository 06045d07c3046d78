// Offline conversation simulator. Runs the full classify -> authorize ->
// dispatch pipeline in-process against canned backends, so the intent table
// can be exercised without any services running.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/assistant"
	"ai-portgate-be/pkg/intent"
)

type turn struct {
	role    string
	message string
}

var script = []turn{
	{"CARRIER", "hello"},
	{"CARRIER", "what can you do?"},
	{"CARRIER", "are there free slots at terminal A tomorrow?"},
	{"CARRIER", "book an available slot"},
	{"CARRIER", "and for tomorrow?"},
	{"CARRIER", "where is my booking REF-12345?"},
	{"CARRIER", "prove booking REF-12345 on the blockchain"},
	{"ADMIN", "prove booking REF-12345 on the blockchain"},
	{"OPERATOR", "give me an overview of terminal activity"},
	{"OPERATOR", "quels camions sont passés hier au terminal B ?"},
	{"CARRIER", "je voudrais réserver un créneau demain"},
	{"CARRIER", "qwertyuiop"},
}

func main() {
	color.Cyan("=== PortGate Assistant Simulation (pattern classifier only) ===")

	orchestrator := assistant.NewOrchestrator(nil, buildRegistry(), logger.NopLogger{})

	var history []intent.Turn
	for i, t := range script {
		color.Yellow("\n[%d] %s: %s", i+1, t.role, t.message)

		resp := orchestrator.Handle(context.Background(), assistant.Request{
			Message:   t.message,
			History:   history,
			Role:      t.role,
			UserID:    "sim-user",
			AuthToken: "sim-token",
		})

		status, _ := resp.Data["status"].(string)
		switch status {
		case agent.StatusOK:
			color.Green("-> %s (%.2f) status=%s", resp.Proofs["intent"], resp.Proofs["confidence"], status)
		case agent.StatusForbidden:
			color.Red("-> %s (%.2f) status=%s", resp.Proofs["intent"], resp.Proofs["confidence"], status)
		default:
			color.Magenta("-> %s (%.2f) status=%s", resp.Proofs["intent"], resp.Proofs["confidence"], status)
		}
		fmt.Printf("   %s\n", resp.Message)
		if len(resp.Data) > 2 {
			prettyPrint(resp.Data)
		}

		resolvedIntent, _ := resp.Proofs["intent"].(string)
		history = append(history,
			intent.Turn{Role: "user", Content: t.message, Intent: resolvedIntent},
			intent.Turn{Role: "assistant", Content: resp.Message, Intent: resolvedIntent},
		)
	}

	color.Cyan("\n=== Simulation Complete ===")
}

func buildRegistry() *agent.Registry {
	r := agent.NewRegistry(logger.NopLogger{})
	r.MustRegister(intent.Help, agent.HelpAgent{})
	r.MustRegister(intent.Smalltalk, agent.SmalltalkAgent{})
	r.MustRegister(intent.Unknown, agent.UnknownAgent{})
	r.MustRegister(intent.BookingStatus, agent.NewBookingStatusAgent(cannedBookings{}))
	r.MustRegister(intent.BookingCreate, agent.NewBookingCreateAgent(cannedBookings{}, cannedSlots{}))
	r.MustRegister(intent.SlotAvailability, agent.NewSlotAvailabilityAgent(cannedSlots{}))
	r.MustRegister(intent.SlotRecommend, agent.NewSlotRecommendAgent(cannedSlots{}))
	r.MustRegister(intent.PassageHistory, agent.NewPassageHistoryAgent(cannedPassages{}))
	r.MustRegister(intent.BlockchainAudit, agent.NewBlockchainAuditAgent(cannedAudit{}))
	r.MustRegister(intent.OperatorAnalytics, agent.NewOperatorAnalyticsAgent(cannedAnalytics{}))
	return r
}

// Canned backends returning plausible port data.

type cannedBookings struct{}

func (cannedBookings) Status(_ context.Context, ref, _ string) (map[string]any, error) {
	return map[string]any{"ref": ref, "state": "CONFIRMED", "terminal": "A", "slot_id": "SLOT-101"}, nil
}

func (cannedBookings) Create(_ context.Context, req agent.BookingCreateRequest, _ string) (map[string]any, error) {
	return map[string]any{"ref": "REF-90001", "state": "PENDING", "slot_id": req.SlotID, "terminal": req.Terminal, "date": req.Date}, nil
}

type cannedSlots struct{}

func (cannedSlots) Available(_ context.Context, q agent.SlotQuery, _ string) ([]map[string]any, error) {
	return []map[string]any{
		{"slot_id": "SLOT-101", "terminal": q.Terminal, "date": q.Date, "start_time": "08:00", "occupancy": 0.7},
		{"slot_id": "SLOT-102", "terminal": q.Terminal, "date": q.Date, "start_time": "10:00", "occupancy": 0.2},
	}, nil
}

type cannedPassages struct{}

func (cannedPassages) History(_ context.Context, q agent.PassageQuery, _ string) ([]map[string]any, error) {
	return []map[string]any{
		{"truck": "TRK-7", "gate": "G1", "terminal": q.Terminal, "date": q.Date, "time": "06:42"},
	}, nil
}

type cannedAudit struct{}

func (cannedAudit) Verify(_ context.Context, ref, _ string) (map[string]any, error) {
	return map[string]any{"ref": ref, "verified": true, "tx_hash": "0xabc123", "block": 48122}, nil
}

type cannedAnalytics struct{}

func (cannedAnalytics) Overview(_ context.Context, q agent.AnalyticsQuery, _ string) (map[string]any, error) {
	return map[string]any{"range_days": q.RangeDays, "total_passages": 412, "avg_wait_minutes": 11.5}, nil
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "   ", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println("   " + string(b))
}
