package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/utils/logger"
)

var (
	//go:embed defaults/configurations.yaml
	defaultConfigurations []byte
	//go:embed defaults/scenarios.yaml
	defaultScenarios []byte
)

// Default returns the built-in catalog.
func Default(location Location) (*Catalog, error) {
	return Parse(defaultConfigurations, defaultScenarios, location)
}

// FileProvider is a leaudio.SettingsProvider loading a catalog on first use. The result, catalog
// or error, is cached for the lifetime of the provider. Empty paths select the built-in files.
type FileProvider struct {
	configurationsPath string
	scenariosPath      string
	location           Location

	once    sync.Once
	catalog *Catalog
	err     error
}

var (
	_ leaudio.SettingsProvider = (*FileProvider)(nil)
	_ leaudio.ScenarioSource   = (*FileProvider)(nil)
)

// NewFileProvider returns a provider for the given files. Nothing is read until first use.
func NewFileProvider(configurationsPath, scenariosPath string, location Location) *FileProvider {
	return &FileProvider{
		configurationsPath: configurationsPath,
		scenariosPath:      scenariosPath,
		location:           location,
	}
}

func (p *FileProvider) String() string {
	return fmt.Sprintf("CATALOG_FILES location=%s", p.location)
}

func readOr(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, nil
}

// Load parses the catalog files once and returns the cached result afterwards.
func (p *FileProvider) Load() (*Catalog, error) {
	p.once.Do(func() {
		var configurations, scenarios []byte
		if configurations, p.err = readOr(p.configurationsPath, defaultConfigurations); p.err != nil {
			return
		}
		if scenarios, p.err = readOr(p.scenariosPath, defaultScenarios); p.err != nil {
			return
		}
		p.catalog, p.err = Parse(configurations, scenarios, p.location)
	})
	if p.err != nil {
		logger.Errorf(p, "Unable to load le audio set configuration files: %v", p.err)
	} else {
		logger.Trace(p, "Reusing loaded le audio set configuration")
	}
	return p.catalog, p.err
}

// Settings returns every template of the catalog.
func (p *FileProvider) Settings() ([]leaudio.Setting, error) {
	c, err := p.Load()
	if err != nil {
		return nil, err
	}
	return c.Settings(), nil
}

// BroadcastCodecs returns the broadcast codecs of the catalog.
func (p *FileProvider) BroadcastCodecs() ([]leaudio.CodecInfo, error) {
	c, err := p.Load()
	if err != nil {
		return nil, err
	}
	return c.BroadcastCodecs(), nil
}

// ScenarioNames returns the scenario names in file order.
func (p *FileProvider) ScenarioNames() ([]string, error) {
	c, err := p.Load()
	if err != nil {
		return nil, err
	}
	scenarios := c.Scenarios()
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names, nil
}

// Scenario returns the templates of a scenario.
func (p *FileProvider) Scenario(name string) ([]leaudio.Setting, error) {
	c, err := p.Load()
	if err != nil {
		return nil, err
	}
	return c.Scenario(name)
}
