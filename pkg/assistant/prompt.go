package assistant

import (
	"fmt"
	"strings"

	"ai-portgate-be/pkg/intent"
)

// historyWindow is how many prior turns the classification prompt carries.
// More than a few adds tokens without improving the guess.
const historyWindow = 3

func buildClassifyPrompt(message string, history []intent.Turn) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You classify messages sent to a port logistics assistant.\n")
	prompt.WriteString("You do NOT answer the user. You only pick ONE intent from the closed list below.\n")
	prompt.WriteString("Messages may mix French and English and may be voice transcriptions with typos.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<intents>\n")
	for _, name := range intent.Vocabulary() {
		prompt.WriteString(fmt.Sprintf("- %s\n", name))
	}
	prompt.WriteString("Use \"unknown\" when none of the others clearly applies.\n")
	prompt.WriteString("</intents>\n\n")

	if len(history) > 0 {
		start := len(history) - historyWindow
		if start < 0 {
			start = 0
		}
		prompt.WriteString("<recent_turns>\n")
		for _, turn := range history[start:] {
			prompt.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
		prompt.WriteString("</recent_turns>\n\n")
	}

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"one of the listed intents\",\n")
	prompt.WriteString("  \"entities\": {\"terminal\": \"A\", \"booking_ref\": \"REF123\"},\n")
	prompt.WriteString("  \"confidence\": 0.95\n")
	prompt.WriteString("}\n")
	prompt.WriteString("Omit entities you did not see. No markdown, no prose.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
