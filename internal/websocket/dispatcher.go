package websocket

import (
	"context"
	"encoding/json"

	"chatsync-be/internal/pkg/logger"
	"chatsync-be/pkg/eventbus"
	"chatsync-be/pkg/events"
)

// Dispatcher drains the realtime bus and fans each delta out through the hub
// according to its audience. It is the only component that touches both the
// bus and the hub.
type Dispatcher struct {
	bus    *eventbus.Bus
	hub    *Hub
	logger logger.ILogger
}

func NewDispatcher(bus *eventbus.Bus, hub *Hub, log logger.ILogger) *Dispatcher {
	return &Dispatcher{bus: bus, hub: hub, logger: log}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	deltas, err := d.bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case delta, ok := <-deltas:
			if !ok {
				return nil
			}
			d.dispatch(delta)
		}
	}
}

func (d *Dispatcher) dispatch(delta events.Delta) {
	payload, err := json.Marshal(outboundFrame{
		Type:       delta.Type,
		Data:       delta.Data,
		OccurredAt: delta.OccurredAt,
	})
	if err != nil {
		d.logger.Error("dispatcher", "failed to marshal frame", map[string]interface{}{"error": err.Error()})
		return
	}

	switch {
	case delta.Audience.SessionID != nil:
		d.hub.SendToSession(*delta.Audience.SessionID, payload)
		// A directed force-logout also tears the connection down once the
		// frame has been queued.
		if delta.Type == events.ForceLogout {
			d.hub.CloseSession(*delta.Audience.SessionID)
		}
	case delta.Audience.UserID != nil:
		d.hub.SendToUser(*delta.Audience.UserID, payload)
	case delta.Audience.All:
		d.hub.Broadcast(payload)
	default:
		d.logger.Warn("dispatcher", "delta without audience dropped", map[string]interface{}{"type": delta.Type})
	}
}
