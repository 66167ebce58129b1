package service

import (
	"strings"
	"testing"
)

func TestAssistantReply_Keywords(t *testing.T) {
	s := NewAssistantService()

	cases := []struct {
		message string
		want    string
	}{
		{"I have a payment problem", replyPayment},
		{"How do I PAY for this?", replyPayment},
		{"help me book a wash", replyBooking},
		{"what services do you offer", replyService},
		{"how to contact you", replyContact},
		{"hello there", replyDefault},
	}
	for _, c := range cases {
		if got := s.Reply(c.message); got != c.want {
			t.Errorf("Reply(%q) = %q, want %q", c.message, got, c.want)
		}
	}
}

// Rule order matters: "pay" outranks "book" when both appear, matching
// the legacy widget's if/else chain.
func TestAssistantReply_FirstRuleWins(t *testing.T) {
	s := NewAssistantService()
	got := s.Reply("I want to pay for my booking")
	if got != replyPayment {
		t.Errorf("Reply = %q, want the payment reply", got)
	}
}

func TestAssistantReply_CaseInsensitive(t *testing.T) {
	s := NewAssistantService()
	if got := s.Reply("CONTACT SUPPORT"); !strings.Contains(got, "support@bikewash.com") {
		t.Errorf("Reply = %q", got)
	}
}
