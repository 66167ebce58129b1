package service

import "strings"

// AssistantService is the keyword-matched support responder behind the
// site's chat widget. First matching rule wins; unmatched input gets a
// clarification prompt.
type AssistantService struct {
	rules []assistantRule
}

type assistantRule struct {
	keywords []string
	reply    string
}

// Canned replies carried over from the legacy widget.
const (
	replyPayment = "For payment issues, please check if your payment method is valid. " +
		"If you're still having trouble, I can connect you with our payment support team."
	replyBooking = "To book a service, please use our booking form in the dashboard. " +
		"Make sure you're logged in first. Need help with the booking process?"
	replyService = "We offer various bike washing services including pickup & drop. " +
		"Would you like to know more about our service packages?"
	replyContact = "You can reach our support team at support@bikewash.com or call us at " +
		"+1 (555) 123-4567 during business hours."
	replyDefault = "I understand you need help. Could you please specify if it's about " +
		"booking, payments, or service issues?"
)

// NewAssistantService creates the responder with the default rule set.
func NewAssistantService() *AssistantService {
	return &AssistantService{
		rules: []assistantRule{
			{keywords: []string{"payment", "pay"}, reply: replyPayment},
			{keywords: []string{"book", "scheduling"}, reply: replyBooking},
			{keywords: []string{"service", "wash"}, reply: replyService},
			{keywords: []string{"contact", "support"}, reply: replyContact},
		},
	}
}

// Reply returns the response for a user message.
func (s *AssistantService) Reply(message string) string {
	input := strings.ToLower(message)
	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(input, kw) {
				return rule.reply
			}
		}
	}
	return replyDefault
}
