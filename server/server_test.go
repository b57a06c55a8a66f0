package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/a2dp"
	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/leaudio/catalog"
	"github.com/ugparu/btaudio/metrics"
	"github.com/ugparu/btaudio/utils/lifecycle"
)

var lc3Capabilities = []*leaudio.DeviceCapabilities{{
	CodecID: btaudio.LC3,
	Capabilities: []leaudio.CapabilityField{
		{Tag: leaudio.SupportedSamplingFrequencies, Bitmask: leaudio.SupportedSamplingFrequencyMask(16000, 48000)},
		{Tag: leaudio.SupportedFrameDurations, Bitmask: leaudio.SupportedFrameDuration10000us},
		{Tag: leaudio.SupportedOctetsPerCodecFrame, Min: 40, Max: 120},
	},
}}

var mediaContext = leaudio.ContextMedia | leaudio.ContextUnspecified | leaudio.ContextAlerts |
	leaudio.ContextInstructional | leaudio.ContextNotifications | leaudio.ContextEmergencyAlarm

func newTestServer(t *testing.T, enablePprof bool) *Server {
	t.Helper()
	provider := leaudio.NewProvider(catalog.NewFileProvider("", "", catalog.LocationHost), nil)
	return New(Options{Addr: "127.0.0.1:0", EnablePprof: enablePprof}, a2dp.Default(), provider, metrics.New())
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodOptions, "/a2dp/parse", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCodecs(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, false), http.MethodGet, "/a2dp/codecs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		Factory string      `json:"factory"`
		Codecs  []CodecInfo `json:"codecs"`
	}](t, rec)
	require.Equal(t, "Offload", resp.Factory)
	require.Len(t, resp.Codecs, 2)
	require.Equal(t, btaudio.AAC, resp.Codecs[0].ID)
	require.Equal(t, btaudio.SBC, resp.Codecs[1].ID)
	require.Equal(t, []byte{0x3f, 0xff, 0x02, 0xfa}, resp.Codecs[1].Capabilities)
}

// wireParameters is the JSON form of codec parameters: common fields next to the codec specific
// ones.
type wireParameters struct {
	SamplingFrequencyHz int    `json:"samplingFrequencyHz"`
	MaxBitrate          int    `json:"maxBitrate"`
	BlockLength         int    `json:"blockLength"`
	Subbands            int    `json:"subbands"`
	AllocationMethod    string `json:"allocationMethod"`
	MinBitpool          int    `json:"minBitpool"`
	MaxBitpool          int    `json:"maxBitpool"`
	ObjectType          string `json:"objectType"`
	VBR                 bool   `json:"vbr"`
}

type wireParse struct {
	Status              string          `json:"status"`
	Parameters          *wireParameters `json:"parameters"`
	AudioSpecificConfig []byte          `json:"audioSpecificConfig"`
}

type wireConfiguration struct {
	RemoteSEID          int             `json:"remoteSeid"`
	ID                  btaudio.CodecID `json:"id"`
	Configuration       []byte          `json:"configuration"`
	Parameters          wireParameters  `json:"parameters"`
	AudioSpecificConfig []byte          `json:"audioSpecificConfig"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	tests := []struct {
		name   string
		req    ParseRequest
		code   int
		status string
	}{
		{"ok", ParseRequest{ID: btaudio.SBC, Configuration: []byte{0x21, 0x19, 0x02, 0x35}}, http.StatusOK, "OK"},
		{"bad_length", ParseRequest{ID: btaudio.SBC, Configuration: []byte{0x21, 0x19, 0x02}}, http.StatusUnprocessableEntity, "BAD_LENGTH"},
		{"unknown_codec", ParseRequest{ID: btaudio.LC3, Configuration: []byte{0x00}}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, s, http.MethodPost, "/a2dp/parse", tt.req)
			require.Equal(t, tt.code, rec.Code)
			if tt.status == "" {
				return
			}
			resp := decode[wireParse](t, rec)
			require.Equal(t, tt.status, resp.Status)
			require.Equal(t, tt.code == http.StatusOK, resp.Parameters != nil)
		})
	}
}

func TestParseCodecParameters(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/a2dp/parse",
		ParseRequest{ID: btaudio.SBC, Configuration: []byte{0x21, 0x19, 0x02, 0x35}})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[wireParse](t, rec)
	require.NotNil(t, resp.Parameters)
	require.Equal(t, 44100, resp.Parameters.SamplingFrequencyHz)
	require.Equal(t, 16, resp.Parameters.BlockLength)
	require.Equal(t, 8, resp.Parameters.Subbands)
	require.Equal(t, "LOUDNESS", resp.Parameters.AllocationMethod)
	require.Equal(t, 2, resp.Parameters.MinBitpool)
	require.Equal(t, 53, resp.Parameters.MaxBitpool)
	require.Empty(t, resp.AudioSpecificConfig)

	rec = do(t, s, http.MethodPost, "/a2dp/parse",
		ParseRequest{ID: btaudio.AAC, Configuration: []byte{0x80, 0x01, 0x08, 0x83, 0xe8, 0x00}})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[wireParse](t, rec)
	require.NotNil(t, resp.Parameters)
	require.Equal(t, "MPEG2_AAC_LC", resp.Parameters.ObjectType)
	require.True(t, resp.Parameters.VBR)
	require.Equal(t, 44100, resp.Parameters.SamplingFrequencyHz)
	require.Equal(t, 256000, resp.Parameters.MaxBitrate)
	// AAC LC, 44.1 kHz, one channel.
	require.Equal(t, []byte{0x12, 0x08}, resp.AudioSpecificConfig)
}

func TestConfiguration(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/a2dp/configuration", ConfigurationRequest{
		Remote: []a2dp.RemoteCapabilities{{SEID: 2, ID: btaudio.SBC, Capabilities: []byte{0xff, 0xff, 0x02, 0x35}}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode[wireConfiguration](t, rec)
	require.Equal(t, 2, cfg.RemoteSEID)
	require.Equal(t, btaudio.SBC, cfg.ID)
	require.Len(t, cfg.Configuration, 4)
	require.Equal(t, 44100, cfg.Parameters.SamplingFrequencyHz)
	require.Equal(t, 16, cfg.Parameters.BlockLength)
	require.Equal(t, 8, cfg.Parameters.Subbands)
	require.NotZero(t, cfg.Parameters.MaxBitpool)
	require.Empty(t, cfg.AudioSpecificConfig)

	rec = do(t, s, http.MethodPost, "/a2dp/configuration", ConfigurationRequest{
		Remote: []a2dp.RemoteCapabilities{{SEID: 3, ID: btaudio.AAC, Capabilities: []byte{0x80, 0x00, 0x84, 0x80, 0x00, 0x00}}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cfg = decode[wireConfiguration](t, rec)
	require.Equal(t, btaudio.AAC, cfg.ID)
	require.Equal(t, "MPEG2_AAC_LC", cfg.Parameters.ObjectType)
	require.NotEmpty(t, cfg.AudioSpecificConfig)

	rec = do(t, s, http.MethodPost, "/a2dp/configuration", ConfigurationRequest{
		Remote: []a2dp.RemoteCapabilities{{SEID: 5, ID: btaudio.LC3, Capabilities: []byte{0x00}}},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/a2dp/configuration", "{")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAse(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	req := AseRequest{
		SinkCapabilities: lc3Capabilities,
		Requirements: []leaudio.ConfigurationRequirement{
			{AudioContext: mediaContext},
			{AudioContext: leaudio.ContextRingtoneAlerts | leaudio.ContextConversational},
		},
	}
	rec := do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Settings []leaudio.Setting `json:"settings"`
	}](t, rec)
	require.Len(t, resp.Settings, 2)
	require.Equal(t, "DualDev_OneChanStereoSnk_48_4_High_Reliability", resp.Settings[0].Name)

	// An empty requirement list filters everything out.
	req.Requirements = []leaudio.ConfigurationRequirement{}
	rec = do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"settings":[]}`, rec.Body.String())
}

func TestAseScenario(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/leaudio/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"scenarios":["Media","Conversational","Live","Game","VoiceAssistants"]}`, rec.Body.String())

	req := AseRequest{
		Scenario:         "Conversational",
		SinkCapabilities: lc3Capabilities,
		Requirements: []leaudio.ConfigurationRequirement{
			{AudioContext: mediaContext},
			{AudioContext: leaudio.ContextRingtoneAlerts | leaudio.ContextConversational},
		},
	}
	rec = do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Settings []leaudio.Setting `json:"settings"`
	}](t, rec)
	require.Len(t, resp.Settings, 1)
	require.Equal(t, "SingleDev_OneChanMonoSnkSrc_16_2_Low_Latency", resp.Settings[0].Name)

	req.Scenario = "Karaoke"
	rec = do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Karaoke")
}

func TestAseWithoutScenarios(t *testing.T) {
	t.Parallel()

	provider := leaudio.NewProvider(leaudio.StaticSettings{}, nil)
	s := New(Options{Addr: "127.0.0.1:0"}, a2dp.Default(), provider, metrics.New())

	rec := do(t, s, http.MethodGet, "/leaudio/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"scenarios":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/leaudio/ase", AseRequest{Scenario: "Media", SinkCapabilities: lc3Capabilities})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriority(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	req := AseRequest{
		SinkCapabilities: lc3Capabilities,
		Requirements: []leaudio.ConfigurationRequirement{
			{AudioContext: mediaContext},
			{AudioContext: leaudio.ContextRingtoneAlerts | leaudio.ContextConversational},
		},
	}
	rec := do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, `{"settings":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodPut, "/leaudio/priority", PriorityRequest{CodecID: btaudio.LC3, Priority: -2})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/leaudio/priority",
		PriorityRequest{CodecID: btaudio.LC3, Priority: leaudio.CodecPriorityDisabled})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodPost, "/leaudio/ase", req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"settings":[]}`, rec.Body.String())
}

func TestQos(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/leaudio/qos", leaudio.QosRequirement{
		AudioContext: leaudio.ContextRingtoneAlerts | leaudio.ContextConversational,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode[leaudio.QosPair](t, rec)
	require.NotNil(t, pair.Sink)
	require.Equal(t, 40, pair.Sink.MaxTransportLatencyMs)
	require.Equal(t, pair.Sink, pair.Source)

	rec = do(t, s, http.MethodPost, "/leaudio/qos", leaudio.QosRequirement{AudioContext: leaudio.ContextSoundEffects})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/leaudio/broadcast", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/leaudio/broadcast", BroadcastRequest{
		SinkCapabilities: []*leaudio.DeviceCapabilities{{
			CodecID: btaudio.LC3,
			Capabilities: []leaudio.CapabilityField{
				{Tag: leaudio.SupportedSamplingFrequencies, Bitmask: leaudio.SupportedSamplingFrequencyMask(48000)},
			},
		}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	setting := decode[leaudio.BroadcastSetting](t, rec)
	require.Equal(t, []leaudio.Phy{leaudio.Phy2M}, setting.Phy)

	rec = do(t, s, http.MethodPost, "/leaudio/broadcast", BroadcastRequest{})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsAndPprof(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, true)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/debug/pprof/", nil).Code)

	rec := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(),
		`btaudio_http_requests_total{method="GET",path="/health",status="200"} 1`))

	require.Equal(t, http.StatusNotFound, do(t, newTestServer(t, false), http.MethodGet, "/debug/pprof/", nil).Code)
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	bad := New(Options{Addr: "127.0.0.1:99999"}, a2dp.Default(), nil, metrics.New())
	require.Error(t, bad.Start())
	var already *lifecycle.StartedAlreadyError
	require.ErrorAs(t, bad.Start(), &already)

	s := newTestServer(t, false)
	s.Close()
	s.Close()
	<-s.Done()
	var afterClose *lifecycle.StartedAfterCloseError
	require.ErrorAs(t, s.Start(), &afterClose)
}
