package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/venturelink/backend/internal/ledger"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Reference string    `json:"reference"`
	Subject   string    `json:"subject"`
	Amount    string    `json:"amount,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details"`
}

type Logger struct {
	out *log.Logger
}

func NewLogger() *Logger {
	return &Logger{out: log.Default()}
}

// NewLoggerTo writes audit lines to a dedicated logger.
func NewLoggerTo(out *log.Logger) *Logger {
	return &Logger{out: out}
}

func (a *Logger) LogTransaction(tx ledger.Transaction) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: "LEDGER_" + string(tx.Type),
		Reference: tx.ID,
		Subject:   string(tx.Sender),
		Amount:    tx.Amount.String(),
		Status:    tx.Status,
		Details: map[string]string{
			"sender":   string(tx.Sender),
			"receiver": string(tx.Receiver),
		},
	})
}

func (a *Logger) LogError(reference, subject string, err error) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: "ERROR",
		Reference: reference,
		Subject:   subject,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) LogOperation(reference, subject, operation, details string) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: operation,
		Reference: reference,
		Subject:   subject,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *Logger) log(event Event) {
	data, _ := json.Marshal(event)
	a.out.Printf("AUDIT: %s", string(data))
}
