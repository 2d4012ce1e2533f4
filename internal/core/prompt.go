package core

import (
	"fmt"
	"strings"
)

const summaryPromptFormat = `Summarize the following email received TODAY in 1-2 sentences. Focus on the key points and any action items:

From: %s
Subject: %s

Content: %s

Time received: %s`

// SummaryPrompt renders the instruction sent to every model. content is the
// preview after size limiting.
func SummaryPrompt(msg *MessageRecord, content string) string {
	return fmt.Sprintf(summaryPromptFormat, msg.Sender, msg.Subject, content, msg.TimeText)
}

// CleanSummary trims model output and drops a leading "Summary:" label
func CleanSummary(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 8 && strings.EqualFold(text[:8], "summary:") {
		text = strings.TrimSpace(text[8:])
	}
	return text
}

// DefaultReply stands in when a model answers with nothing
const DefaultReply = "Thank you for your email."

const replyPromptFormat = `Read the following email and generate a professional, concise reply to it. Keep the reply brief and appropriate:

%s

Reply:`

// ReplyPrompt renders the instruction for drafting an answer to body
func ReplyPrompt(body string) string {
	return fmt.Sprintf(replyPromptFormat, body)
}
