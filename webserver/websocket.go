package webserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

type wsClient struct {
	ws           *websocket.Conn
	send         chan []byte
	removeClient func(*wsClient)
}

func (c *wsClient) write() {
	defer c.ws.Close()

	for message := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *wsClient) read() {
	defer func() {
		c.removeClient(c)
		c.ws.Close()
	}()

	for {
		// the API is read only on the websocket; incoming messages are
		// discarded
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (web *WebServer) webSocketHdlr(w http.ResponseWriter, req *http.Request) {

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("unable to open ws for %v\n", req.RemoteAddr)
		return
	}

	c := &wsClient{
		ws:           conn,
		send:         make(chan []byte, 8),
		removeClient: web.removeWsClient,
	}

	web.muWsClients.Lock()
	web.wsClients[c] = true
	web.muWsClients.Unlock()
	log.Println("WebSocket connected")

	go c.write()
	go c.read()

	web.updateWsClients()
}

func (web *WebServer) removeWsClient(c *wsClient) {
	web.muWsClients.Lock()
	defer web.muWsClients.Unlock()

	if _, ok := web.wsClients[c]; ok {
		delete(web.wsClients, c)
		close(c.send)
		log.Println("WebSocket disconnected")
	}
}

// updateWsClients sends the current encoder state to all websocket clients.
// Clients which can not keep up miss the update.
func (web *WebServer) updateWsClients() {
	st, err := web.State()
	if err != nil {
		log.Println(err)
		return
	}

	data, err := json.Marshal(st)
	if err != nil {
		log.Println(err)
		return
	}

	web.muWsClients.Lock()
	defer web.muWsClients.Unlock()

	for c := range web.wsClients {
		select {
		case c.send <- data:
		default:
		}
	}
}
