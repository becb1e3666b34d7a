package notify

import (
	"fmt"
	"log"
)

// Sender delivers a confirmation message to a member's phone. Send reports
// whether delivery was attempted. It never returns an error: order
// submission must not depend on the messaging path.
type Sender interface {
	Send(phone, message string) bool
}

// SMSLog is the club's current dispatcher: it writes the message to the
// server log where the kitchen console picks it up. Swapping in a real SMS
// gateway means implementing Sender, nothing else.
type SMSLog struct{}

func NewSMSLog() *SMSLog {
	return &SMSLog{}
}

func (s *SMSLog) Send(phone, message string) bool {
	if phone == "" {
		log.Printf("[sms] skipped: no phone on file :: %s", message)
		return false
	}
	log.Printf("[sms] to=%s :: %s", phone, message)
	return true
}

// Confirmation formats the standard pickup confirmation text.
func Confirmation(firstName, pizzaName, date, clock string) string {
	return fmt.Sprintf("Pizza Club: %s, your %s is in for %s at %s. See you then!",
		firstName, pizzaName, date, clock)
}
