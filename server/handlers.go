package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/a2dp"
	"github.com/ugparu/btaudio/codec/aac"
	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/metrics"
	"github.com/ugparu/btaudio/utils"
	"github.com/ugparu/btaudio/utils/logger"
)

// CodecInfo describes one codec of the factory.
type CodecInfo struct {
	ID                  btaudio.CodecID       `json:"id"`
	Name                string                `json:"name"`
	Capabilities        []byte                `json:"capabilities"`
	SamplingFrequencyHz []int                 `json:"samplingFrequencyHz"`
	ChannelModes        []btaudio.ChannelMode `json:"channelModes"`
	Bitdepth            []int                 `json:"bitdepth"`
}

// ParseRequest is the body of POST /a2dp/parse.
type ParseRequest struct {
	ID            btaudio.CodecID `json:"id"`
	Configuration []byte          `json:"configuration"`
}

// ParseResponse reports the validation status of a configuration record. Parameters carries the
// codec specific fields next to the common ones; AAC adds the AudioSpecificConfig.
type ParseResponse struct {
	Status              string             `json:"status"`
	Parameters          btaudio.Parameters `json:"parameters,omitempty"`
	AudioSpecificConfig []byte             `json:"audioSpecificConfig,omitempty"`
}

// ConfigurationRequest is the body of POST /a2dp/configuration.
type ConfigurationRequest struct {
	Remote []a2dp.RemoteCapabilities `json:"remote"`
	Hint   a2dp.ConfigurationHint    `json:"hint"`
}

// ConfigurationResponse is a negotiated configuration, with the AudioSpecificConfig for AAC.
type ConfigurationResponse struct {
	a2dp.Configuration
	AudioSpecificConfig []byte `json:"audioSpecificConfig,omitempty"`
}

// AseRequest is the body of POST /leaudio/ase. Sink capabilities win when both are given. A
// non-empty Scenario restricts matching to the templates of that catalog scenario.
type AseRequest struct {
	Scenario           string                             `json:"scenario,omitempty"`
	SinkCapabilities   []*leaudio.DeviceCapabilities      `json:"sinkCapabilities,omitempty"`
	SourceCapabilities []*leaudio.DeviceCapabilities      `json:"sourceCapabilities,omitempty"`
	Requirements       []leaudio.ConfigurationRequirement `json:"requirements"`
}

// BroadcastRequest is the body of POST /leaudio/broadcast.
type BroadcastRequest struct {
	SinkCapabilities []*leaudio.DeviceCapabilities `json:"sinkCapabilities"`
	Requirement      leaudio.BroadcastRequirement  `json:"requirement"`
}

// PriorityRequest is the body of PUT /leaudio/priority.
type PriorityRequest struct {
	CodecID  btaudio.CodecID `json:"codecId"`
	Priority int             `json:"priority"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}

func (s *Server) handleCodecs(c *gin.Context) {
	codecs := s.factory.Codecs()
	infos := make([]CodecInfo, 0, len(codecs))
	for _, codec := range codecs {
		info := codec.Info()
		infos = append(infos, CodecInfo{
			ID:                  info.ID,
			Name:                info.Name,
			Capabilities:        info.Capabilities,
			SamplingFrequencyHz: info.SamplingFrequencyHz,
			ChannelModes:        info.ChannelModes,
			Bitdepth:            info.Bitdepth,
		})
	}
	c.JSON(http.StatusOK, gin.H{"factory": s.factory.Name(), "codecs": infos})
}

func (s *Server) handleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := s.factory.Parse(req.ID, req.Configuration)
	var unknown *utils.UnknownCodecError
	if errors.As(err, &unknown) {
		s.metrics.Parse(req.ID.String(), "UNKNOWN_CODEC")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	status := btaudio.StatusOf(err)
	s.metrics.Parse(req.ID.String(), status.String())
	if status != btaudio.OK {
		c.JSON(http.StatusUnprocessableEntity, ParseResponse{Status: status.String()})
		return
	}
	c.JSON(http.StatusOK, ParseResponse{
		Status:              status.String(),
		Parameters:          p,
		AudioSpecificConfig: s.audioSpecificConfig(p),
	})
}

// audioSpecificConfig renders AAC parameters in the form encoders are configured with. Other
// codecs have none.
func (s *Server) audioSpecificConfig(p btaudio.Parameters) []byte {
	ap, ok := p.(aac.Parameters)
	if !ok {
		return nil
	}
	asc, err := ap.AudioSpecificConfig()
	if err != nil {
		logger.Warningf(s, "No AudioSpecificConfig for %v: %v", ap, err)
		return nil
	}
	return asc
}

func (s *Server) handleConfiguration(c *gin.Context) {
	var req ConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cfg, ok := s.factory.GetConfiguration(req.Remote, req.Hint)
	if !ok {
		s.metrics.Negotiation("", false)
		c.JSON(http.StatusNotFound, gin.H{"error": btaudio.ErrNoCommonConfiguration.Error()})
		return
	}
	s.metrics.Negotiation(cfg.ID.String(), true)
	c.JSON(http.StatusOK, ConfigurationResponse{
		Configuration:       cfg,
		AudioSpecificConfig: s.audioSpecificConfig(cfg.Parameters),
	})
}

func (s *Server) handleAse(c *gin.Context) {
	var req AseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		settings []leaudio.Setting
		err      error
	)
	if req.Scenario != "" {
		settings, err = s.provider.ScenarioAseConfiguration(
			req.Scenario, req.SinkCapabilities, req.SourceCapabilities, req.Requirements)
	} else {
		settings, err = s.provider.AseConfiguration(req.SinkCapabilities, req.SourceCapabilities, req.Requirements)
	}
	var unknown *utils.UnknownScenarioError
	switch {
	case errors.As(err, &unknown):
		s.metrics.Match("ase", metrics.OutcomeNoMatch)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, leaudio.ErrNoScenarios):
		s.metrics.Match("ase", metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.metrics.Match("ase", metrics.OutcomeError)
		logger.Errorf(s, "ASE configuration failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	outcome := metrics.OutcomeSelected
	if len(settings) == 0 {
		outcome = metrics.OutcomeNoMatch
	}
	s.metrics.Match("ase", outcome)
	s.metrics.LEAudioMatchedConfig.Observe(float64(len(settings)))
	if settings == nil {
		settings = []leaudio.Setting{}
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (s *Server) handleScenarios(c *gin.Context) {
	names, err := s.provider.Scenarios()
	switch {
	case errors.Is(err, leaudio.ErrNoScenarios):
		c.JSON(http.StatusOK, gin.H{"scenarios": []string{}})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"scenarios": names})
	}
}

func (s *Server) handleQos(c *gin.Context) {
	var req leaudio.QosRequirement
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, ok, err := s.provider.AseQosConfiguration(req)
	switch {
	case err != nil:
		s.metrics.Match("qos", metrics.OutcomeError)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case !ok:
		s.metrics.Match("qos", metrics.OutcomeNoMatch)
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching qos configuration"})
	default:
		s.metrics.Match("qos", metrics.OutcomeSelected)
		c.JSON(http.StatusOK, pair)
	}
}

func (s *Server) handleBroadcastSettings(c *gin.Context) {
	settings, err := s.provider.BroadcastSettings()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (s *Server) handleBroadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	setting, ok, err := s.provider.BroadcastConfiguration(req.SinkCapabilities, req.Requirement)
	switch {
	case err != nil:
		s.metrics.Match("broadcast", metrics.OutcomeError)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case !ok:
		s.metrics.Match("broadcast", metrics.OutcomeNoMatch)
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching broadcast configuration"})
	default:
		s.metrics.Match("broadcast", metrics.OutcomeSelected)
		c.JSON(http.StatusOK, setting)
	}
}

func (s *Server) handlePriority(c *gin.Context) {
	var req PriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Priority < leaudio.CodecPriorityDisabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be -1 or greater"})
		return
	}
	s.provider.Matcher().SetCodecPriority(req.CodecID, req.Priority)
	c.Status(http.StatusNoContent)
}
