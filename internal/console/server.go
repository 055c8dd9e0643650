package console

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Server runs console commands posted over HTTP. The display it was given
// must be safe for concurrent use, since requests are served in parallel.
type Server struct {
	console *Console
	server  http.Server
}

func NewServer(addr string, c *Console) *Server {
	s := &Server{console: c}
	s.server = http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", commandForm)
	mux.HandleFunc("/command", s.runCommand)
	return mux
}

// Listen blocks until the server is closed.
func (s *Server) Listen() error {
	log.Infof("Starting console server on %v.", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	log.Debug("Closing console server...")
	return s.server.Shutdown(ctx)
}

const form = `
<html>
<body style="font-family:monospace; font-size:12pt; background-color: #121212; color: #eee;">
<br><br><br>
<center>
<h1>LCD console</h1>
<br>
<form action="/command" method="post" autocomplete="off" novalidate>
<label for="command">Command</label>
<input type="text" name="command" size="50"/>
<br><br>
<input type="submit" value="Run"/>
</form>
</center>
</body>
</html>
`

func commandForm(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	io.WriteString(w, form)
}

func (s *Server) runCommand(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := req.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if !req.PostForm.Has("command") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	line := req.PostForm.Get("command")
	out, err := s.console.Execute(line)
	if err != nil {
		log.Warnf("Command %q failed: %v", line, err)
		var usage *UsageError
		if errors.As(err, &usage) || errors.Is(err, ErrUnknownCommand) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	io.WriteString(w, out+"\n")
}
