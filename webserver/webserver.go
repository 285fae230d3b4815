package webserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sync"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

// WebServer exposes the parameters of a live Opus encoder through a REST
// API and pushes every change to the connected websocket clients.
//
// The encoder is owned by the WebServer; every access to it, including
// EncodeFrame, is serialized through the embedded mutex.
type WebServer struct {
	sync.Mutex
	url         string
	port        int
	router      *mux.Router
	srv         *http.Server
	apiVersion  string
	apiMatch    *regexp.Regexp
	encoder     *opus.OpusEncoder
	stats       Stats
	muWsClients sync.Mutex
	wsClients   map[*wsClient]bool
}

// Settings contains the values needed to create a WebServer.
type Settings struct {
	Address string
	Port    int
	Encoder *opus.OpusEncoder
}

// NewWebServer is the constructor method of a WebServer.
func NewWebServer(s Settings) (*WebServer, error) {

	if s.Encoder == nil {
		return nil, fmt.Errorf("encoder is nil")
	}

	web := &WebServer{
		url:        s.Address,
		port:       s.Port,
		router:     mux.NewRouter().StrictSlash(true),
		apiVersion: "1.0",
		apiMatch:   regexp.MustCompile(`api\/v\d\.\d\/`),
		encoder:    s.Encoder,
		wsClients:  make(map[*wsClient]bool),
	}

	web.routes()

	return web, nil
}

// Handler returns the http.Handler serving the API.
func (web *WebServer) Handler() http.Handler {
	return web.apiRedirectRouter(web.router)
}

// Start listens on the configured address and serves the API. It blocks
// until the server is shut down.
func (web *WebServer) Start() error {

	serverURL := fmt.Sprintf("%s:%d", web.url, web.port)

	web.Lock()
	web.srv = &http.Server{
		Addr:    serverURL,
		Handler: web.Handler(),
	}
	srv := web.srv
	web.Unlock()

	log.Printf("webserver listening on http://%s\n", serverURL)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the http server and disconnects all websocket clients.
func (web *WebServer) Shutdown(ctx context.Context) error {
	web.Lock()
	srv := web.srv
	web.Unlock()

	web.muWsClients.Lock()
	for c := range web.wsClients {
		delete(web.wsClients, c)
		close(c.send)
	}
	web.muWsClients.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// EncodeFrame encodes one frame of PCM with the served encoder and updates
// the statistics.
func (web *WebServer) EncodeFrame(pcm []int16, data []byte) (int, error) {
	web.Lock()
	defer web.Unlock()
	return web.encodeFrame(pcm, data)
}

// EncodeFrameFunc asks next for one frame of PCM with the number of samples
// per channel the encoder currently expects and encodes it. The frame size
// can not change between the two steps.
func (web *WebServer) EncodeFrameFunc(next func(samples int) ([]int16, error), data []byte) (int, error) {
	web.Lock()
	defer web.Unlock()

	pcm, err := next(web.encoder.FrameSamples())
	if err != nil {
		return 0, err
	}
	return web.encodeFrame(pcm, data)
}

// encodeFrame must be called with the lock held
func (web *WebServer) encodeFrame(pcm []int16, data []byte) (int, error) {
	n, err := web.encoder.Encode(pcm, data)
	if err != nil {
		return 0, err
	}

	web.stats.Packets++
	web.stats.Bytes += int64(n)
	if bw, err := opus.PacketBandwidth(data[:n]); err == nil {
		web.stats.LastBandwidth = bw.String()
	}
	return n, nil
}

// Stats returns the counters of the packets encoded so far.
func (web *WebServer) Stats() Stats {
	web.Lock()
	defer web.Unlock()
	return web.stats
}

// FrameSamples returns the number of samples per channel EncodeFrame
// expects with the current frame size.
func (web *WebServer) FrameSamples() int {
	web.Lock()
	defer web.Unlock()
	return web.encoder.FrameSamples()
}

// State reads all parameters from the encoder.
func (web *WebServer) State() (EncoderState, error) {
	web.Lock()
	defer web.Unlock()
	return web.state()
}

// state must be called with the lock held
func (web *WebServer) state() (EncoderState, error) {
	h := web.encoder.Handle()
	st := EncoderState{
		Samplerate:  h.SampleRate(),
		Channels:    h.Channels(),
		Application: h.Application().String(),
	}

	for _, p := range opus.Params() {
		v, err := web.encoder.Get(p)
		if err != nil {
			return st, err
		}
		st.Params = append(st.Params, paramValue(p, v))
	}
	return st, nil
}

func paramValue(p opus.Param, v int) ParamValue {
	return ParamValue{
		Param: string(p),
		Value: &v,
		Name:  p.Format(v),
	}
}
