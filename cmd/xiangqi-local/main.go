package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，没有图形界面时失败也无所谓
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "", "directory with index.html / js (empty: API only)")
	sims := flag.Int("sims", 10000, "default MCTS simulations")
	depth := flag.Int("depth", 20, "default MCTS rollout depth")
	explore := flag.Float64("exploration", 5.0, "default MCTS exploration constant")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "MCTS worker goroutines")
	idle := flag.Duration("idle", 2*time.Hour, "drop games idle longer than this")
	browser := flag.Bool("open", true, "open the default browser")
	flag.Parse()

	cfg := agent.MCTSConfig{
		Simulations: *sims,
		Depth:       *depth,
		Exploration: *explore,
		Workers:     *workers,
	}
	games := game.NewManager()
	srv := httpserver.NewServer(httpserver.NewHandler(games, cfg), *webDir)

	if *idle > 0 {
		go func() {
			for range time.Tick(*idle / 4) {
				if n := games.Purge(*idle); n > 0 {
					log.Printf("purged %d idle games", n)
				}
			}
		}()
	}

	log.Printf("listening on %s, web dir %q, mcts %+v", *addr, *webDir, cfg)

	if *browser {
		// 延迟 100ms 打开默认浏览器，否则服务器可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
