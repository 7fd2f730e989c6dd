package httpserver

import (
	"log"
	"net/http"
	"time"
)

// Server /api/* 交给 Handler，其余交给静态文件
type Server struct {
	mux *http.ServeMux
}

// NewServer webDir 为空时不挂静态页面
func NewServer(h *Handler, webDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	RegisterStaticRoutes(mux, webDir)
	return &Server{mux: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
