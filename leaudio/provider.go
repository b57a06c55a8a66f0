package leaudio

import (
	"errors"
	"sync"

	"github.com/ugparu/btaudio/utils/logger"
)

// SettingsProvider supplies the unicast templates and the broadcast codecs of the catalog.
// Implementations return immutable data; callers must not modify it.
type SettingsProvider interface {
	Settings() ([]Setting, error)
	BroadcastCodecs() ([]CodecInfo, error)
}

// ScenarioSource is implemented by settings providers grouping templates into named scenarios.
// Unknown names fail with *utils.UnknownScenarioError.
type ScenarioSource interface {
	ScenarioNames() ([]string, error)
	Scenario(name string) ([]Setting, error)
}

// ErrNoScenarios is returned for scenario requests to a provider without scenarios.
var ErrNoScenarios = errors.New("settings provider has no scenarios")

// StaticSettings is a SettingsProvider over in-memory data.
type StaticSettings struct {
	Templates []Setting
	Codecs    []CodecInfo
}

// Settings returns the templates as given.
func (s StaticSettings) Settings() ([]Setting, error) { return s.Templates, nil }

// BroadcastCodecs returns the codecs as given.
func (s StaticSettings) BroadcastCodecs() ([]CodecInfo, error) { return s.Codecs, nil }

// Provider answers LE audio negotiation requests from a catalog. Broadcast templates are derived
// from the catalog codecs on first use and cached.
type Provider struct {
	settings SettingsProvider
	matcher  *Matcher

	broadcastOnce sync.Once
	broadcast     []BroadcastSetting
	broadcastErr  error
}

// NewProvider returns a provider using matcher for every request. A nil matcher gets a new one.
func NewProvider(settings SettingsProvider, matcher *Matcher) *Provider {
	if matcher == nil {
		matcher = NewMatcher()
	}
	return &Provider{settings: settings, matcher: matcher}
}

func (*Provider) String() string {
	return "LE_AUDIO_PROVIDER"
}

// Matcher returns the matcher, e.g. to change codec priorities.
func (p *Provider) Matcher() *Matcher {
	return p.matcher
}

// AseConfiguration matches the catalog against the sink capabilities when sinkCaps is not nil,
// against the source capabilities otherwise.
func (p *Provider) AseConfiguration(
	sinkCaps, sourceCaps []*DeviceCapabilities, reqs []ConfigurationRequirement,
) ([]Setting, error) {
	settings, err := p.settings.Settings()
	if err != nil {
		return nil, err
	}
	return p.matchEndpoints(settings, sinkCaps, sourceCaps, reqs), nil
}

// ScenarioAseConfiguration is AseConfiguration over the templates of one scenario. It fails with
// ErrNoScenarios when the settings provider is not a ScenarioSource.
func (p *Provider) ScenarioAseConfiguration(
	scenario string, sinkCaps, sourceCaps []*DeviceCapabilities, reqs []ConfigurationRequirement,
) ([]Setting, error) {
	src, ok := p.settings.(ScenarioSource)
	if !ok {
		return nil, ErrNoScenarios
	}
	settings, err := src.Scenario(scenario)
	if err != nil {
		return nil, err
	}
	return p.matchEndpoints(settings, sinkCaps, sourceCaps, reqs), nil
}

// Scenarios returns the scenario names of the settings provider, in preference order.
func (p *Provider) Scenarios() ([]string, error) {
	src, ok := p.settings.(ScenarioSource)
	if !ok {
		return nil, ErrNoScenarios
	}
	return src.ScenarioNames()
}

func (p *Provider) matchEndpoints(
	settings []Setting, sinkCaps, sourceCaps []*DeviceCapabilities, reqs []ConfigurationRequirement,
) []Setting {
	d, caps := Source, sourceCaps
	if sinkCaps != nil {
		d, caps = Sink, sinkCaps
	}
	return p.matcher.MatchEndpoints(settings, d, caps, reqs)
}

// AseQosConfiguration matches the catalog against a QoS requirement.
func (p *Provider) AseQosConfiguration(req QosRequirement) (QosPair, bool, error) {
	settings, err := p.settings.Settings()
	if err != nil {
		return QosPair{}, false, err
	}
	pair, ok := p.matcher.MatchQos(settings, req)
	return pair, ok, nil
}

// BroadcastSettings returns the broadcast templates derived from the catalog codecs.
func (p *Provider) BroadcastSettings() ([]BroadcastSetting, error) {
	p.broadcastOnce.Do(func() {
		logger.Info(p, "Loading broadcast settings from codec info")
		var infos []CodecInfo
		if infos, p.broadcastErr = p.settings.BroadcastCodecs(); p.broadcastErr != nil {
			return
		}
		p.broadcast = BroadcastSettingsFromCodecInfo(infos)
		logger.Infof(p, "Loaded %d broadcast settings", len(p.broadcast))
	})
	return p.broadcast, p.broadcastErr
}

// BroadcastConfiguration matches the broadcast templates against sink capabilities and a
// requirement.
func (p *Provider) BroadcastConfiguration(
	sinkCaps []*DeviceCapabilities, req BroadcastRequirement,
) (BroadcastSetting, bool, error) {
	settings, err := p.BroadcastSettings()
	if err != nil {
		return BroadcastSetting{}, false, err
	}
	s, ok := p.matcher.MatchBroadcast(settings, sinkCaps, req)
	return s, ok, nil
}
