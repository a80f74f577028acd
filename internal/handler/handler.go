package handler

import (
	"net/http"
	"strconv"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts all routes on r
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/defaults", h.Defaults).Methods(http.MethodGet)
	api.HandleFunc("/analysis", h.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/forecast", h.Forecast).Methods(http.MethodPost)
	api.HandleFunc("/irr", h.IRR).Methods(http.MethodPost)
	api.HandleFunc("/equity-multiple", h.EquityMultiple).Methods(http.MethodPost)
	api.HandleFunc("/scenario", h.EvaluateScenario).Methods(http.MethodPost)
	api.HandleFunc("/scenario/ranges", h.SliderRanges).Methods(http.MethodPost)
	api.HandleFunc("/reference-rate", h.ReferenceRate).Methods(http.MethodGet)

	api.HandleFunc("/projects", h.ListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", h.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", h.GetProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", h.DeleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id}/analysis", h.ProjectAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/scenarios", h.SaveScenario).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/scenarios/{sid}", h.RemoveScenario).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id}/scenarios/{sid}/apply", h.ApplyScenario).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/report", h.Report).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}/report/email", h.EmailReport).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/share", h.Share).Methods(http.MethodPost)
	api.HandleFunc("/shared/{token}", h.Shared).Methods(http.MethodGet)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Defaults returns the form starting values and the model defaults
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]finance.Input{
		"form":  finance.FormDefaults(),
		"model": finance.NewInput(),
	})
}

// decodeInput reads an input body; omitted assumptions keep the model defaults
func decodeInput(r *http.Request) (finance.Input, error) {
	in := finance.NewInput()
	err := readJSON(r, &in)
	return in, err
}

// Analyze handles a full analysis of a posted input
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	years, err := queryYears(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.svc.Analyze(in, years)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, a)
}

// Forecast handles the yearly projection of a posted input
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	years, err := queryYears(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Forecast(in, years)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string][]finance.ForecastRow{"forecast": rows})
}

type irrRequest struct {
	Cashflows     []float64 `json:"cashflows"`
	MaxIterations int       `json:"max_iterations"`
}

// IRR handles solving the internal rate of return of a series
func (h *Handler) IRR(w http.ResponseWriter, r *http.Request) {
	var req irrRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.IRR(req.Cashflows, req.MaxIterations)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, res)
}

type equityMultipleRequest struct {
	InitialEquity    float64   `json:"initial_equity"`
	PeriodCashflows  []float64 `json:"period_cashflows"`
	TerminalProceeds float64   `json:"terminal_proceeds"`
}

// EquityMultiple handles total distributions over initial equity
func (h *Handler) EquityMultiple(w http.ResponseWriter, r *http.Request) {
	var req equityMultipleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.EquityMultiple(req.InitialEquity, req.PeriodCashflows, req.TerminalProceeds)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]float64{"equity_multiple": m})
}

type scenarioRequest struct {
	Base      finance.Input     `json:"base"`
	Overrides finance.Overrides `json:"overrides"`
}

// EvaluateScenario handles comparing a base input with overrides applied
func (h *Handler) EvaluateScenario(w http.ResponseWriter, r *http.Request) {
	req := scenarioRequest{Base: finance.NewInput()}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cmp, err := h.svc.EvaluateScenario(req.Base, req.Overrides)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, cmp)
}

// SliderRanges handles the scenario bounds for a posted base input
func (h *Handler) SliderRanges(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ranges, err := h.svc.SliderRanges(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string][]finance.SliderRange{"ranges": ranges})
}

// ReferenceRate returns the cached suggested loan rate
func (h *Handler) ReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.ReferenceRate()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, rate)
}

// ListProjects returns the project list
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, projects)
}

// CreateProject saves a posted input as a project
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.CreateProject(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, p)
}

// GetProject opens a project
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, p)
}

// DeleteProject removes a project
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProjectAnalysis analyzes a stored project
func (h *Handler) ProjectAnalysis(w http.ResponseWriter, r *http.Request) {
	years, err := queryYears(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.svc.ProjectAnalysis(mux.Vars(r)["id"], years)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, a)
}

// SaveScenario stores overrides as a scenario of a project
func (h *Handler) SaveScenario(w http.ResponseWriter, r *http.Request) {
	var overrides finance.Overrides
	if err := readJSON(r, &overrides); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, err := h.svc.SaveScenario(mux.Vars(r)["id"], overrides)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, sc)
}

// RemoveScenario deletes a scenario
func (h *Handler) RemoveScenario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.RemoveScenario(vars["id"], vars["sid"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyScenario uses a scenario's input in the project's analysis
func (h *Handler) ApplyScenario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := h.svc.ApplyScenario(vars["id"], vars["sid"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, p)
}

// Report exports a project document as md, html or xml
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Report(mux.Vars(r)["id"], r.URL.Query().Get("format"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(doc.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

type emailRequest struct {
	To string `json:"to"`
}

// EmailReport sends a project report by e-mail
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.EmailReport(mux.Vars(r)["id"], req.To); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusAccepted, map[string]string{"status": "sent"})
}

type shareResponse struct {
	*service.ShareLink
	URL string `json:"url"`
}

// Share issues a read-only link to a project report
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.ShareLink(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, shareResponse{ShareLink: link, URL: "/api/v1/shared/" + link.Token})
}

// Shared serves the HTML report behind a share token
func (h *Handler) Shared(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.ResolveShare(mux.Vars(r)["token"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
