package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// WebServer serves the UI page and the scenario API
type WebServer struct {
	loop *EventLoop
	addr string
	log  *logrus.Logger
}

// NewWebServer creates a new web server instance
func NewWebServer(loop *EventLoop, addr string, logger *logrus.Logger) *WebServer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WebServer{loop: loop, addr: addr, log: logger}
}

// APIResponse is the body of every API reply
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	View    *View  `json:"view,omitempty"`
}

// Router builds the HTTP routes
func (ws *WebServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", ws.handleIndex).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view", ws.handleView).Methods(http.MethodGet)
	api.HandleFunc("/chart.svg", ws.handleChartSVG).Methods(http.MethodGet)
	api.HandleFunc("/scenarios", ws.handleAdd).Methods(http.MethodPost)
	api.HandleFunc("/scenarios/{id}", ws.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/scenarios/{id}", ws.handleRemove).Methods(http.MethodDelete)
	api.HandleFunc("/redraw", ws.handleRedraw).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, APIResponse{Error: "Method not allowed"})
	})
	return r
}

// Start starts the web server and opens the UI in the default browser. It blocks.
func (ws *WebServer) Start() error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}
	ws.log.WithField("addr", listener.Addr().String()).Infof("Opening %s in your browser...", url)
	go openBrowser(url)
	server := &http.Server{Handler: ws.Router(), ReadHeaderTimeout: 10 * time.Second}
	return server.Serve(listener)
}

// StartForEmbedded starts the server and returns the URL and a cleanup function.
// Unlike Start(), this does NOT open the browser and does NOT block.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}
	ws.log.WithField("addr", listener.Addr().String()).Info("Starting embedded web server")

	server := &http.Server{Handler: ws.Router(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ws.log.Errorf("Server error: %v", err)
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			ws.log.Warnf("Server shutdown: %v", err)
		}
	}
	return url, cleanup, nil
}

// listen binds the address (":0" auto-assigns a port) and returns the URL to open
func (ws *WebServer) listen() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return nil, "", err
	}
	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") || strings.HasPrefix(actualAddr, "[::]:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}
	return listener, url, nil
}

// handleIndex serves the main web UI
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, webUIHTML)
}

func (ws *WebServer) handleView(w http.ResponseWriter, r *http.Request) {
	ws.dispatch(w, r, Query{})
}

// handleChartSVG serves the last painted chart
func (ws *WebServer) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	view, err := ws.loop.Dispatch(r.Context(), Query{})
	if err != nil {
		ws.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(view.Chart.SVG)
}

func (ws *WebServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	ws.dispatch(w, r, AddScenario{})
}

func (ws *WebServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := ws.scenarioID(w, r)
	if !ok {
		return
	}
	var fields PanelFields
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	ws.dispatch(w, r, UpdateScenario{ID: id, Fields: fields})
}

func (ws *WebServer) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := ws.scenarioID(w, r)
	if !ok {
		return
	}
	ws.dispatch(w, r, RemoveScenario{ID: id})
}

func (ws *WebServer) handleRedraw(w http.ResponseWriter, r *http.Request) {
	ws.dispatch(w, r, Refresh{})
}

// dispatch runs cmd on the event loop and writes the resulting view.
// Failed commands still return the view so the page can show inline errors.
func (ws *WebServer) dispatch(w http.ResponseWriter, r *http.Request, cmd Command) {
	view, err := ws.loop.Dispatch(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, ErrLoopClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			ws.writeError(w, err)
			return
		}
		status, resp := errorResponse(err)
		resp.View = &view
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, View: &view})
}

func (ws *WebServer) scenarioID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, APIResponse{Error: "Unknown scenario id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError sends a JSON error response
func (ws *WebServer) writeError(w http.ResponseWriter, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		ws.log.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, resp)
}

// errorResponse maps an action error to a status code and message
func errorResponse(err error) (int, APIResponse) {
	resp := APIResponse{Error: err.Error(), Field: errorField(err)}
	if ve, ok := asValidation(err); ok {
		resp.Error = ve.Message
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		resp.Error = fe.Error()
	}
	switch {
	case errors.Is(err, ErrMalformedInput), errors.Is(err, ErrInvalidScenario):
		return http.StatusBadRequest, resp
	case errors.Is(err, ErrScenarioNotFound):
		return http.StatusNotFound, resp
	case errors.Is(err, ErrLoopClosed):
		return http.StatusServiceUnavailable, resp
	}
	return http.StatusInternalServerError, resp
}

func writeJSON(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
