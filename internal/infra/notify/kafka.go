package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"luxestay/internal/tilt"
)

// BookingEventHandler turns published booking events back into user-facing
// notifications. It consumes the CloudEvents envelopes the outbox worker
// emits.
type BookingEventHandler struct {
	Center *Center
}

type cloudEvent struct {
	Type string `json:"type"`
	Data struct {
		BookingID string `json:"BookingID"`
		UserID    string `json:"UserID"`
	} `json:"data"`
}

func (h BookingEventHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	if h.Center == nil {
		return nil
	}
	var evt cloudEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return fmt.Errorf("notify: decode event: %w", err)
	}
	if evt.Data.UserID == "" {
		return nil
	}
	switch evt.Type {
	case "booking.created.v1":
		h.Center.Push(evt.Data.UserID, "Your booking is confirmed", tilt.KindSuccess, 0)
	case "booking.cancelled.v1":
		h.Center.Push(evt.Data.UserID, "Your booking was cancelled", tilt.KindInfo, 0)
	}
	return nil
}
