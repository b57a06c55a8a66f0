package leaudio

import (
	"slices"
	"sync"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/utils/logger"
)

// CodecPriorityDisabled disables a codec: configurations using it never match.
const CodecPriorityDisabled = -1

// capabilityConfigurationTag maps a capability tag to the configuration field it constrains.
var capabilityConfigurationTag = map[CapabilityTag]ConfigurationTag{
	SupportedSamplingFrequencies:  SamplingFrequency,
	SupportedFrameDurations:       FrameDuration,
	SupportedAudioChannelCounts:   AudioChannelAllocation,
	SupportedOctetsPerCodecFrame:  OctetsPerCodecFrame,
	SupportedMaxCodecFramesPerSDU: CodecFrameBlocksPerSDU,
}

// Matcher filters templates against capabilities and requirements. The zero value is not usable,
// create one with NewMatcher. A Matcher is safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	priority map[btaudio.CodecID]int
}

// NewMatcher returns a matcher with every codec enabled.
func NewMatcher() *Matcher {
	return &Matcher{priority: make(map[btaudio.CodecID]int)}
}

func (*Matcher) String() string {
	return "LE_AUDIO_MATCHER"
}

// SetCodecPriority sets the priority of a codec. CodecPriorityDisabled disables it.
func (m *Matcher) SetCodecPriority(id btaudio.CodecID, priority int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priority[id] = priority
	logger.Infof(m, "Codec %v priority set to %d", id, priority)
}

// CodecPriority returns the priority set for a codec.
func (m *Matcher) CodecPriority(id btaudio.CodecID) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.priority[id]
	return p, ok
}

// validCodec reports whether a configuration codec satisfies the requested codec.
func (m *Matcher) validCodec(configured, requested btaudio.CodecID) bool {
	if p, ok := m.CodecPriority(configured); ok && p == CodecPriorityDisabled {
		return false
	}
	return configured == requested
}

// matchesCapabilities reports whether every declared capability accepts the configuration field it
// constrains. A capability whose field the configuration lacks rejects the configuration.
func matchesCapabilities(configuration []ConfigurationField, capabilities []CapabilityField) bool {
	fields := make(map[ConfigurationTag]uint32, len(configuration))
	for _, f := range configuration {
		fields[f.Tag] = f.Value
	}

	for _, c := range capabilities {
		tag, ok := capabilityConfigurationTag[c.Tag]
		if !ok {
			return false
		}
		v, ok := fields[tag]
		if !ok {
			return false
		}

		switch c.Tag {
		case SupportedSamplingFrequencies:
			if !samplingFrequencySupported(v, c.Bitmask) {
				return false
			}
		case SupportedFrameDurations:
			if !frameDurationSupported(v, c.Bitmask) {
				return false
			}
		case SupportedAudioChannelCounts:
			// Channel allocation is not checked against channel counts.
		case SupportedMaxCodecFramesPerSDU:
			if v > c.Max {
				return false
			}
		case SupportedOctetsPerCodecFrame:
			if v < c.Min || v > c.Max {
				return false
			}
		}
	}
	return true
}

// matchesContext reports whether the preferred contexts of a capability record intersect ctx.
// A record without metadata matches any context.
func matchesContext(ctx AudioContext, c *DeviceCapabilities) bool {
	if c.Metadata == nil {
		return true
	}
	return slices.ContainsFunc(c.Metadata, func(md Metadata) bool {
		return md.Tag == PreferredAudioContexts && md.Contexts&ctx != 0
	})
}

// matchesAse reports whether a template configuration satisfies a requested configuration: codec
// (when requested), target latency and every requested field by exact value.
func (m *Matcher) matchesAse(setting, requirement AseConfiguration) bool {
	if requirement.CodecID != nil {
		if setting.CodecID == nil || !m.validCodec(*setting.CodecID, *requirement.CodecID) {
			return false
		}
	}
	if setting.TargetLatency != requirement.TargetLatency {
		return false
	}
	for _, r := range requirement.Configuration {
		f, ok := setting.Field(r.Tag)
		if !ok || f != r {
			return false
		}
	}
	return true
}

func (m *Matcher) filterCapabilities(configs []DirectionConfiguration, c *DeviceCapabilities) []DirectionConfiguration {
	var valid []DirectionConfiguration
	for _, cfg := range configs {
		if cfg.Ase.CodecID == nil || !m.validCodec(*cfg.Ase.CodecID, c.CodecID) {
			continue
		}
		if !matchesCapabilities(cfg.Ase.Configuration, c.Capabilities) {
			continue
		}
		valid = append(valid, cfg)
	}
	return valid
}

func (m *Matcher) filterRequirements(configs []DirectionConfiguration, reqs []DirectionRequirement) []DirectionConfiguration {
	if reqs == nil {
		return slices.Clone(configs)
	}
	var valid []DirectionConfiguration
	for _, cfg := range configs {
		if slices.ContainsFunc(reqs, func(r DirectionRequirement) bool { return m.matchesAse(cfg.Ase, r.Ase) }) {
			valid = append(valid, cfg)
		}
	}
	return valid
}

// MatchCapabilities returns a copy of setting restricted to the configurations of direction d that
// one capability record supports.
func (m *Matcher) MatchCapabilities(setting Setting, d Direction, c *DeviceCapabilities) (Setting, bool) {
	if !matchesContext(setting.AudioContext, c) {
		return Setting{}, false
	}
	configs := setting.Direction(d)
	if configs == nil {
		return Setting{}, false
	}
	valid := m.filterCapabilities(configs, c)
	if len(valid) == 0 {
		return Setting{}, false
	}
	return setting.withDirection(d, valid), true
}

// MatchRequirement returns a copy of setting restricted to the configurations that satisfy req. The
// direction is the sink when the setting has one, the source otherwise.
func (m *Matcher) MatchRequirement(setting Setting, req ConfigurationRequirement) (Setting, bool) {
	if setting.AudioContext != req.AudioContext {
		return Setting{}, false
	}
	d := Source
	if setting.Sink != nil {
		d = Sink
	}
	valid := m.filterRequirements(setting.Direction(d), req.direction(d))
	if len(valid) == 0 {
		return Setting{}, false
	}
	return setting.withDirection(d, valid), true
}

// MatchEndpoints matches every template against every capability record of direction d, then every
// surviving setting against every requirement. Results are not deduplicated: there is one result
// per (template, capability, requirement) triple that matches. Nil capability records are skipped.
func (m *Matcher) MatchEndpoints(
	settings []Setting, d Direction, capabilities []*DeviceCapabilities, reqs []ConfigurationRequirement,
) []Setting {
	var matched []Setting
	for _, s := range settings {
		for _, c := range capabilities {
			if c == nil {
				continue
			}
			if filtered, ok := m.MatchCapabilities(s, d, c); ok {
				matched = append(matched, filtered)
			}
		}
	}

	var result []Setting
	for _, s := range matched {
		for _, r := range reqs {
			if filtered, ok := m.MatchRequirement(s, r); ok {
				result = append(result, filtered)
			}
		}
	}
	logger.Debugf(m, "%s: %d templates, %d capability matches, %d results", d, len(settings), len(matched), len(result))
	return result
}
