package webserver

// ParamValue is the JSON representation of one encoder parameter. When
// setting a parameter either Value or Name has to be provided.
type ParamValue struct {
	Param string `json:"param,omitempty"`
	Value *int   `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

// EncoderState contains the fixed properties of the encoder and the
// current values of all parameters.
type EncoderState struct {
	Samplerate  int          `json:"samplerate"`
	Channels    int          `json:"channels"`
	Application string       `json:"application"`
	Params      []ParamValue `json:"params"`
}

// Stats contains counters about the packets produced by the encoder.
type Stats struct {
	Packets       int64  `json:"packets"`
	Bytes         int64  `json:"bytes"`
	LastBandwidth string `json:"lastBandwidth,omitempty"`
}

// ErrorMsg is returned by the API when a request fails.
type ErrorMsg struct {
	Error string `json:"error"`
}
