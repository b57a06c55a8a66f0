package leaudio

import "github.com/ugparu/btaudio/utils/logger"

func matchesQos(qos QosConfiguration, req *QosDirectionRequirement) bool {
	return qos.RetransmissionNum == req.PreferredRetransmissionNum &&
		qos.MaxTransportLatencyMs <= req.MaxTransportLatencyMs
}

// MatchQos returns the QoS of the first template configuration, in catalog order, whose template
// context equals the requested one. Without a direction requirement the first configuration of
// the source direction wins unconditionally and its QoS fills both sides of the pair. With one, the
// configuration must also satisfy the requested ASE configuration and QoS bounds, and only that
// direction of the pair is set.
func (m *Matcher) MatchQos(settings []Setting, req QosRequirement) (QosPair, bool) {
	d, dreq := Source, req.Source
	if req.Sink != nil {
		d, dreq = Sink, req.Sink
	}

	for _, s := range settings {
		if s.AudioContext != req.AudioContext {
			continue
		}
		for _, cfg := range s.Direction(d) {
			if dreq == nil {
				logger.Debugf(m, "QoS %v: first %s configuration of %q", req.AudioContext, d, s.Name)
				return QosPair{Sink: cfg.Qos, Source: cfg.Qos}, true
			}
			if cfg.Qos == nil {
				continue
			}
			if m.matchesAse(cfg.Ase, dreq.Ase) && matchesQos(*cfg.Qos, dreq) {
				logger.Debugf(m, "QoS %v: %s configuration of %q matched", req.AudioContext, d, s.Name)
				if d == Sink {
					return QosPair{Sink: cfg.Qos}, true
				}
				return QosPair{Source: cfg.Qos}, true
			}
		}
	}
	return QosPair{}, false
}
