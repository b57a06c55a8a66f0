package leaudio

import (
	"slices"

	"github.com/ugparu/btaudio/utils/logger"
)

// BroadcastSettingsFromCodecInfo builds one default broadcast template per codec: a single BIS on
// the 2M PHY, front center allocation, using the first sampling frequency, frame duration and octets
// per frame of the codec. Codecs whose first values have no configuration code are skipped.
func BroadcastSettingsFromCodecInfo(infos []CodecInfo) []BroadcastSetting {
	settings := make([]BroadcastSetting, 0, len(infos))
	for _, info := range infos {
		if len(info.SamplingFrequencyHz) == 0 || len(info.FrameDurationUs) == 0 || len(info.OctetsPerCodecFrame) == 0 {
			logger.Warningf("LE_AUDIO_BROADCAST", "Broadcast codec %v has incomplete info", info.ID)
			continue
		}
		sf, ok := SamplingFrequencyCode(info.SamplingFrequencyHz[0])
		if !ok {
			logger.Warningf("LE_AUDIO_BROADCAST", "Broadcast codec %v: unsupported sampling frequency %d", info.ID, info.SamplingFrequencyHz[0])
			continue
		}
		fd, ok := FrameDurationCode(info.FrameDurationUs[0])
		if !ok {
			logger.Warningf("LE_AUDIO_BROADCAST", "Broadcast codec %v: unsupported frame duration %d", info.ID, info.FrameDurationUs[0])
			continue
		}

		settings = append(settings, BroadcastSetting{
			NumBis: 1,
			Phy:    []Phy{Phy2M},
			Subgroups: []BroadcastSubgroup{{
				Bis: []SubgroupBis{{
					NumBis: 1,
					Bis: BisConfiguration{
						CodecID: info.ID,
						Configuration: []ConfigurationField{
							{Tag: SamplingFrequency, Value: sf},
							{Tag: OctetsPerCodecFrame, Value: uint32(info.OctetsPerCodecFrame[0])}, //nolint:gosec
							{Tag: FrameDuration, Value: fd},
							{Tag: AudioChannelAllocation, Value: LocationFrontCenter},
						},
					},
				}},
			}},
		})
	}
	return settings
}

func (m *Matcher) matchesBis(bis BisConfiguration, c *DeviceCapabilities) bool {
	return m.validCodec(bis.CodecID, c.CodecID) && matchesCapabilities(bis.Configuration, c.Capabilities)
}

// matchBroadcastCapabilities keeps the BIS configurations one capability record supports and drops
// subgroups left empty.
func (m *Matcher) matchBroadcastCapabilities(setting BroadcastSetting, c *DeviceCapabilities) (BroadcastSetting, bool) {
	var subgroups []BroadcastSubgroup
	for _, sg := range setting.Subgroups {
		var bis []SubgroupBis
		for _, b := range sg.Bis {
			if m.matchesBis(b.Bis, c) {
				bis = append(bis, b)
			}
		}
		if len(bis) > 0 {
			subgroups = append(subgroups, BroadcastSubgroup{Bis: bis})
		}
	}
	if len(subgroups) == 0 {
		return BroadcastSetting{}, false
	}
	filtered := setting
	filtered.Phy = slices.Clone(setting.Phy)
	filtered.Subgroups = subgroups
	return filtered, true
}

// MatchBroadcast returns a single broadcast template. Every template is filtered against every
// capability record. Without subgroup requirements the first surviving template is returned,
// otherwise the first one keeping a subgroup whose BIS count some requirement asks for. Unlike
// MatchEndpoints this does not return every match.
func (m *Matcher) MatchBroadcast(
	settings []BroadcastSetting, capabilities []*DeviceCapabilities, req BroadcastRequirement,
) (BroadcastSetting, bool) {
	if capabilities == nil {
		logger.Warningf(m, "Broadcast: no capabilities")
		return BroadcastSetting{}, false
	}

	var filtered []BroadcastSetting
	for _, s := range settings {
		for _, c := range capabilities {
			if c == nil {
				continue
			}
			if f, ok := m.matchBroadcastCapabilities(s, c); ok {
				filtered = append(filtered, f)
			}
		}
	}
	if len(filtered) == 0 {
		logger.Warningf(m, "Broadcast: no template matches the capabilities")
		return BroadcastSetting{}, false
	}

	if len(req.Subgroups) == 0 {
		return filtered[0], true
	}

	for _, s := range filtered {
		var subgroups []BroadcastSubgroup
		for _, sg := range s.Subgroups {
			if slices.ContainsFunc(req.Subgroups, func(r SubgroupRequirement) bool { return r.BisNumPerSubgroup == len(sg.Bis) }) {
				subgroups = append(subgroups, sg)
			}
		}
		if len(subgroups) > 0 {
			s.Subgroups = subgroups
			return s, true
		}
	}
	logger.Warningf(m, "Broadcast: no template matches the requirement")
	return BroadcastSetting{}, false
}
