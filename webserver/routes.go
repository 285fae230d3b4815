package webserver

func (web *WebServer) routes() {
	web.router.HandleFunc("/api/v1.0/encoder", web.encoderHdlr).Methods("GET")
	web.router.HandleFunc("/api/v1.0/encoder/stats", web.statsHdlr).Methods("GET")
	web.router.HandleFunc("/api/v1.0/encoder/{param}", web.paramHdlr).Methods("GET", "PUT")
	web.router.HandleFunc("/ws", web.webSocketHdlr)
}
