package webserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorMsg{Error: err.Error()})
}

func (web *WebServer) encoderHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	st, err := web.State()
	if err != nil {
		log.Println(err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (web *WebServer) statsHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	writeJSON(w, http.StatusOK, web.Stats())
}

func (web *WebServer) paramHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	p, err := opus.ParseParam(mux.Vars(req)["param"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	switch req.Method {
	case "GET":
		web.Lock()
		v, err := web.encoder.Get(p)
		web.Unlock()
		if err != nil {
			log.Println(err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, paramValue(p, v))

	case "PUT":
		var msg ParamValue
		if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid JSON"))
			return
		}

		var value int
		switch {
		case msg.Value != nil:
			value = *msg.Value
		case msg.Name != "":
			value, err = p.Parse(msg.Name)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		default:
			writeError(w, http.StatusBadRequest, errors.New("value or name required"))
			return
		}

		web.Lock()
		err := web.encoder.Set(p, value)
		web.Unlock()

		var perr *opus.ParamError
		switch {
		case err == nil:
		case errors.As(err, &perr) && errors.Is(err, opus.ErrBadArg):
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		default:
			log.Println(err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		log.Printf("encoder %s set to %s\n", p, p.Format(value))
		web.updateWsClients()
		writeJSON(w, http.StatusOK, paramValue(p, value))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
