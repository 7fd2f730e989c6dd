package mobile

import (
	"log"
	"net/http"

	"xiangqi/internal/agent"
	httpserver "xiangqi/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// simulations: default MCTS playouts per AI move, 0 for the built-in default
func StartServer(webDir string, port string, simulations int) {
	cfg := agent.DefaultMCTSConfig()
	if simulations > 0 {
		cfg.Simulations = simulations
	}
	srv := httpserver.NewServer(httpserver.NewHandler(nil, cfg), webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
