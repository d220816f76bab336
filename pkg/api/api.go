package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/playnet-public/gorcon-dp/pkg/rcon"
	"go.uber.org/zap"
)

//API exposes the rcon client over a small HTTP admin surface
type API struct {
	log    *zap.Logger
	client *rcon.Client
	addr   string
}

type response struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Data    *json.RawMessage `json:"data,omitempty"`
}

type commandRequest struct {
	Command string `json:"command"`
}

//New returns a new API bound to the passed client
func New(log *zap.Logger, client *rcon.Client, addr string) *API {
	return &API{
		log:    log,
		client: client,
		addr:   addr,
	}
}

//Run the HTTP Server
func (a *API) Run() error {
	a.log.Info("HTTP API starting", zap.String("addr", a.addr))
	r := a.Router()
	return http.ListenAndServe(a.addr, r)
}

//Router builds the route table; split out so tests can drive it directly
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", a.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/command", a.handleCommand).Methods(http.MethodPost)
	return r
}

func (a *API) writeResponse(w http.ResponseWriter, status int, success bool, err error, data *json.RawMessage) {
	resp := response{
		Success: success,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	b, merr := json.MarshalIndent(&resp, "", "\t")
	if merr != nil {
		a.log.Error("failed to marshal response", zap.Error(merr))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

//handleStatus reports whether the connection is up and from where
func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	local, err := a.client.LocalAddress()
	if err != nil {
		a.writeResponse(w, http.StatusServiceUnavailable, false, err, nil)
		return
	}
	data := struct {
		LocalAddress string `json:"localAddress"`
	}{
		LocalAddress: local,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		a.writeResponse(w, http.StatusInternalServerError, false, err, nil)
		return
	}
	raw := json.RawMessage(jsonData)
	a.writeResponse(w, http.StatusOK, true, nil, &raw)
}

//handleCommand sends one command over the connection. Responses arrive
//asynchronously on the UDP socket and flow to the attached console.
func (a *API) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		a.writeResponse(w, http.StatusBadRequest, false, err, nil)
		return
	}
	a.log.Info("api command", zap.String("command", req.Command))
	if err := a.client.Exec(req.Command); err != nil {
		a.writeResponse(w, http.StatusServiceUnavailable, false, err, nil)
		return
	}
	a.writeResponse(w, http.StatusOK, true, nil, nil)
}
