package ledger

// Channel is the means by which a payment was collected. The set is closed:
// unrecognized values are rejected when the payment is recorded, never
// coerced downstream during aggregation.
type Channel string

const (
	ChannelCash     Channel = "efectivo"
	ChannelTransfer Channel = "transferencia"
	ChannelCheck    Channel = "cheque"
)

// Channels lists every accepted channel, in display order.
var Channels = []Channel{ChannelCash, ChannelTransfer, ChannelCheck}

// ParseChannel validates a raw channel value from the request boundary.
func ParseChannel(raw string) (Channel, error) {
	for _, c := range Channels {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", &ValidationError{Reason: "unknown payment channel: " + raw}
}
