package packet

import "log/slog"

// Packet types implement slog.LogValuer with a compact representation
// suited to trace logging: identifiers and sizes, never payload bytes.
// This has no effect on the wire encoding.

// LogValue returns a compact structured representation.
func (c *Connect) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", "CONNECT"),
		slog.String("client_id", c.ClientID),
		slog.Bool("clean_session", c.CleanSession),
		slog.Int("keep_alive", int(c.KeepAlive)),
		slog.Bool("will", c.WillFlag),
		slog.Bool("username", c.UsernameFlag),
	)
}

// LogValue returns a compact structured representation.
func (c *Connack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", "CONNACK"),
		slog.Bool("session_present", c.SessionPresent),
		slog.String("code", c.Code.String()),
	)
}

// LogValue returns a compact structured representation.
func (p *Publish) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", "PUBLISH"),
		slog.String("topic", p.TopicName),
		slog.String("qos", p.Delivery.QoS().String()),
		slog.Bool("dup", p.Dup),
		slog.Bool("retain", p.Retain),
		slog.Int("payload_size", len(p.Payload)),
	}
	if pid, ok := p.Delivery.PID(); ok {
		attrs = append(attrs, slog.Int("packet_id", int(pid)))
	}
	return slog.GroupValue(attrs...)
}

// LogValue returns a compact structured representation.
func (p *Puback) LogValue() slog.Value {
	return ackLogValue("PUBACK", p.PacketID)
}

// LogValue returns a compact structured representation.
func (p *Pubrec) LogValue() slog.Value {
	return ackLogValue("PUBREC", p.PacketID)
}

// LogValue returns a compact structured representation.
func (p *Pubrel) LogValue() slog.Value {
	return ackLogValue("PUBREL", p.PacketID)
}

// LogValue returns a compact structured representation.
func (p *Pubcomp) LogValue() slog.Value {
	return ackLogValue("PUBCOMP", p.PacketID)
}

// LogValue returns a compact structured representation.
func (s *Subscribe) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", "SUBSCRIBE"),
		slog.Int("packet_id", int(s.PacketID)),
		slog.Int("topics", len(s.Topics)),
	)
}

// LogValue returns a compact structured representation.
func (s *Suback) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", "SUBACK"),
		slog.Int("packet_id", int(s.PacketID)),
		slog.Int("return_codes", len(s.ReturnCodes)),
	)
}

// LogValue returns a compact structured representation.
func (u *Unsubscribe) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", "UNSUBSCRIBE"),
		slog.Int("packet_id", int(u.PacketID)),
		slog.Int("topics", len(u.Topics)),
	)
}

// LogValue returns a compact structured representation.
func (u *Unsuback) LogValue() slog.Value {
	return ackLogValue("UNSUBACK", u.PacketID)
}

// LogValue returns a compact structured representation.
func (p *Pingreq) LogValue() slog.Value {
	return slog.GroupValue(slog.String("type", "PINGREQ"))
}

// LogValue returns a compact structured representation.
func (p *Pingresp) LogValue() slog.Value {
	return slog.GroupValue(slog.String("type", "PINGRESP"))
}

// LogValue returns a compact structured representation.
func (d *Disconnect) LogValue() slog.Value {
	return slog.GroupValue(slog.String("type", "DISCONNECT"))
}

func ackLogValue(name string, pid PID) slog.Value {
	return slog.GroupValue(
		slog.String("type", name),
		slog.Int("packet_id", int(pid)),
	)
}
