package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"chatsync-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const outboundTopic = "realtime.outbound"

// Bus carries outbound realtime deltas from the domain services to the
// fan-out dispatcher over an in-process watermill channel. Per-subscriber
// ordering is preserved, so deltas for one entity arrive in publish order.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func New(logger watermill.LoggerAdapter) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			// Connect never blocks a publishing service on a slow consumer.
			OutputChannelBuffer: 256,
		}, logger),
	}
}

// Publish implements events.Publisher.
func (b *Bus) Publish(delta events.Delta) error {
	payload, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to marshal delta %s: %w", delta.Type, err)
	}
	return b.pubsub.Publish(outboundTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe returns a channel of decoded deltas. Undecodable payloads are
// acked and skipped.
func (b *Bus) Subscribe(ctx context.Context) (<-chan events.Delta, error) {
	messages, err := b.pubsub.Subscribe(ctx, outboundTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", outboundTopic, err)
	}

	out := make(chan events.Delta)
	go func() {
		defer close(out)
		for msg := range messages {
			var delta events.Delta
			if err := json.Unmarshal(msg.Payload, &delta); err != nil {
				msg.Ack()
				continue
			}
			select {
			case out <- delta:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
