// Package catalog loads the LE audio template catalog: a configurations file (QoS configurations,
// codec configurations and named configurations combining them) and a scenarios file grouping
// configuration names under an audio context. Both files are YAML; JSON content is accepted too.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/utils"
	"github.com/ugparu/btaudio/utils/logger"
	"gopkg.in/yaml.v3"
)

// Scenario is a named group of templates sharing one audio context.
type Scenario struct {
	Name     string
	Context  leaudio.AudioContext
	Settings []leaudio.Setting
}

// Catalog is a parsed template catalog. It is immutable.
type Catalog struct {
	scenarios []Scenario
	codecs    []leaudio.CodecInfo
}

func (*Catalog) String() string {
	return "LE_AUDIO_CATALOG"
}

type namedConfiguration struct {
	sink, source []leaudio.DirectionConfiguration
}

// Parse builds a catalog from the content of a configurations file and a scenarios file.
// Configurations referencing an unknown codec configuration, or one without subconfigurations, are
// skipped. Scenario entries naming an unknown configuration are skipped.
func Parse(configurations, scenarios []byte, location Location) (*Catalog, error) {
	var cf configurationsFile
	if err := yaml.Unmarshal(configurations, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse configurations: %w", err)
	}
	var sf scenariosFile
	if err := yaml.Unmarshal(scenarios, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	c := &Catalog{}
	named, err := c.buildConfigurations(cf, location)
	if err != nil {
		return nil, err
	}
	if err = c.buildScenarios(sf, named); err != nil {
		return nil, err
	}
	c.codecs = buildBroadcastCodecs(cf.BroadcastCodecs)
	return c, nil
}

func (c *Catalog) buildConfigurations(cf configurationsFile, location Location) (map[string]namedConfiguration, error) {
	switch {
	case len(cf.QosConfigurations) == 0:
		return nil, errors.New("no qos configurations")
	case len(cf.CodecConfigurations) == 0:
		return nil, errors.New("no codec configurations")
	case len(cf.Configurations) == 0:
		return nil, errors.New("no configurations")
	}
	logger.Debugf(c, "%d qos, %d codec configurations, %d configurations",
		len(cf.QosConfigurations), len(cf.CodecConfigurations), len(cf.Configurations))

	named := make(map[string]namedConfiguration, len(cf.Configurations))
	for _, cfg := range cf.Configurations {
		qosSink, qosSource := DefaultQosConfiguration, DefaultQosConfiguration
		if len(cfg.QosConfigName) > 0 {
			qosSink, qosSource = cfg.QosConfigName[0], cfg.QosConfigName[0]
			if len(cfg.QosConfigName) > 1 {
				qosSource = cfg.QosConfigName[1]
			}
		}

		i := slices.IndexFunc(cf.CodecConfigurations, func(cc codecConfiguration) bool { return cc.Name == cfg.CodecConfigName })
		if i < 0 {
			logger.Errorf(c, "No codec config matching key %s found", cfg.CodecConfigName)
			continue
		}
		codec := cf.CodecConfigurations[i]
		if len(codec.Subconfigurations) == 0 {
			logger.Errorf(c, "Configuration %q has no valid subconfigurations", cfg.Name)
			continue
		}

		var nc namedConfiguration
		for _, sub := range codec.Subconfigurations {
			d, err := direction(sub.Direction)
			if err != nil {
				return nil, fmt.Errorf("codec configuration %q: %w", codec.Name, err)
			}
			qosName := qosSource
			if d == leaudio.Sink {
				qosName = qosSink
			}
			j := slices.IndexFunc(cf.QosConfigurations, func(q qosConfiguration) bool { return q.Name == qosName })
			if j < 0 {
				return nil, fmt.Errorf("configuration %q: unknown qos configuration %q", cfg.Name, qosName)
			}

			dc := directionConfiguration(sub, cf.QosConfigurations[j], location)
			if d == leaudio.Sink {
				nc.sink = append(nc.sink, dc)
			} else {
				nc.source = append(nc.source, dc)
			}
		}
		logger.Debugf(c, "Audio set config %s: codec config %s, qos_sink %s, qos_source %s",
			cfg.Name, cfg.CodecConfigName, qosSink, qosSource)
		named[cfg.Name] = nc
	}
	return named, nil
}

func directionConfiguration(sub subconfiguration, qos qosConfiguration, location Location) leaudio.DirectionConfiguration {
	id := sub.CodecID.id()
	ase := leaudio.AseConfiguration{
		TargetLatency: targetLatency(qos.TargetLatency),
		TargetPhy:     leaudio.Phy2M,
		CodecID:       &id,
	}
	if code, ok := leaudio.SamplingFrequencyCode(sub.SamplingFrequencyHz); ok {
		ase.Configuration = append(ase.Configuration, leaudio.ConfigurationField{Tag: leaudio.SamplingFrequency, Value: code})
	}
	if code, ok := leaudio.FrameDurationCode(sub.FrameDurationUs); ok {
		ase.Configuration = append(ase.Configuration, leaudio.ConfigurationField{Tag: leaudio.FrameDuration, Value: code})
	}
	ase.Configuration = append(ase.Configuration,
		leaudio.ConfigurationField{Tag: leaudio.AudioChannelAllocation, Value: sub.AudioChannelAllocation},
		leaudio.ConfigurationField{Tag: leaudio.OctetsPerCodecFrame, Value: sub.OctetsPerCodecFrame},
		leaudio.ConfigurationField{Tag: leaudio.CodecFrameBlocksPerSDU, Value: sub.CodecFrameBlocksPerSDU},
	)

	dp := location.dataPath()
	return leaudio.DirectionConfiguration{
		Ase: ase,
		Qos: &leaudio.QosConfiguration{
			MaxTransportLatencyMs: qos.MaxTransportLatency,
			RetransmissionNum:     qos.RetransmissionNumber,
		},
		DataPath: &dp,
	}
}

func (c *Catalog) buildScenarios(sf scenariosFile, named map[string]namedConfiguration) error {
	if len(sf.Scenarios) == 0 {
		return errors.New("no scenarios")
	}
	for _, s := range sf.Scenarios {
		sc := Scenario{Name: s.Name, Context: scenarioContexts[s.Name]}
		for _, name := range s.Configurations {
			nc, ok := named[name]
			if !ok {
				logger.Debugf(c, "Scenario %s: no configuration %s", s.Name, name)
				continue
			}
			if slices.ContainsFunc(sc.Settings, func(st leaudio.Setting) bool { return st.Name == name }) {
				continue
			}
			sc.Settings = append(sc.Settings, leaudio.Setting{
				Name:         name,
				AudioContext: sc.Context,
				Sink:         nc.sink,
				Source:       nc.source,
			})
		}
		logger.Debugf(c, "Scenario %s: %d templates", s.Name, len(sc.Settings))
		c.scenarios = append(c.scenarios, sc)
	}
	return nil
}

func buildBroadcastCodecs(codecs []broadcastCodec) []leaudio.CodecInfo {
	infos := make([]leaudio.CodecInfo, 0, len(codecs))
	for _, bc := range codecs {
		infos = append(infos, leaudio.CodecInfo{
			ID:                  bc.CodecID.id(),
			Name:                bc.Name,
			SamplingFrequencyHz: bc.SamplingFrequencyHz,
			FrameDurationUs:     bc.FrameDurationUs,
			OctetsPerCodecFrame: bc.OctetsPerCodecFrame,
		})
	}
	return infos
}

// Settings returns every template, scenario by scenario, in file order.
func (c *Catalog) Settings() []leaudio.Setting {
	var settings []leaudio.Setting
	for _, s := range c.scenarios {
		settings = append(settings, s.Settings...)
	}
	return settings
}

// Scenarios returns the scenarios in file order.
func (c *Catalog) Scenarios() []Scenario {
	return slices.Clone(c.scenarios)
}

// Scenario returns the templates of the named scenario. Unknown names fail with
// *utils.UnknownScenarioError.
func (c *Catalog) Scenario(name string) ([]leaudio.Setting, error) {
	i := slices.IndexFunc(c.scenarios, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return nil, &utils.UnknownScenarioError{Name: name}
	}
	return c.scenarios[i].Settings, nil
}

// BroadcastCodecs returns the codecs broadcast templates are derived from.
func (c *Catalog) BroadcastCodecs() []leaudio.CodecInfo {
	return c.codecs
}
