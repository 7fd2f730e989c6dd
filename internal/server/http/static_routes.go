package httpserver

import (
	"fmt"
	"net/http"
)

// RegisterStaticRoutes mounts:
// - /web/* -> webDir 下的前端文件
// - /      -> 有前端时跳到 /web/，没有时给一个最简单的说明页
func RegisterStaticRoutes(mux *http.ServeMux, webDir string) {
	if mux == nil {
		return
	}
	if webDir != "" {
		mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			if webDir != "" {
				http.Redirect(w, r, "/web/", http.StatusFound)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, indexPage)
		case "/web":
			http.Redirect(w, r, "/web/", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
}

const indexPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>xiangqi</title></head>
<body>
<h1>xiangqi</h1>
<p>POST /api/new_game, /api/state, /api/play, /api/undo, /api/ai_move, /api/export, /api/restore</p>
<p>GET /api/board.svg?game_id=...</p>
</body></html>
`
