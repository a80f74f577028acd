package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Augustnerdaal/REALestate/internal/config"
	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/models"
	"github.com/Augustnerdaal/REALestate/internal/report"
	"github.com/Augustnerdaal/REALestate/internal/repository"
	"github.com/Augustnerdaal/REALestate/internal/utils/email"
	"github.com/sirupsen/logrus"
)

const (
	// MaxYears bounds the forecast horizon accepted from callers
	MaxYears = 50
	// MaxIRRIterations bounds the bisection steps a caller may ask for
	MaxIRRIterations = 1000
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailDisabled     = errors.New("email delivery is not configured")
	ErrInvalidShareToken = errors.New("invalid or expired share token")
)

// RateSource provides the suggested loan rate
type RateSource interface {
	Latest() (models.ReferenceRate, error)
	Refresh(ctx context.Context) (models.ReferenceRate, error)
}

// Mailer delivers rendered reports
type Mailer interface {
	SendReport(to string, r email.Report) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	rates  RateSource
	mailer Mailer
}

// NewService initializes a new service. mailer may be nil when e-mail is
// not configured.
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, rates RateSource, mailer Mailer) *Service {
	return &Service{repo: repo, log: log, config: cfg, rates: rates, mailer: mailer}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// horizon resolves the requested number of years; 0 means the configured default
func (s *Service) horizon(years int) (int, error) {
	if years == 0 {
		return s.config.ForecastYears, nil
	}
	if years < 1 || years > MaxYears {
		return 0, invalid(fmt.Errorf("years must be between 1 and %d", MaxYears))
	}
	return years, nil
}

// Analyze computes KPIs, forecast, IRR and equity multiple for an input
func (s *Service) Analyze(in finance.Input, years int) (*finance.Analysis, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	n, err := s.horizon(years)
	if err != nil {
		return nil, err
	}
	a := finance.Analyze(in, n)
	if err := a.Finite(); err != nil {
		return nil, invalid(err)
	}
	if a.IRRError != "" {
		s.log.Debugf("IRR unavailable for %q: %s", in.Name, a.IRRError)
	}
	return &a, nil
}

// Forecast returns the yearly projection for an input
func (s *Service) Forecast(in finance.Input, years int) ([]finance.ForecastRow, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	n, err := s.horizon(years)
	if err != nil {
		return nil, err
	}
	rows := finance.Forecast(in, n)
	if err := finance.RowsFinite(rows); err != nil {
		return nil, invalid(err)
	}
	return rows, nil
}

// IRRResult holds the checked IRR and the unchecked bisection value
type IRRResult struct {
	IRR        *float64 `json:"irr"`
	Error      string   `json:"error,omitempty"`
	BestEffort float64  `json:"best_effort"`
}

// IRR solves the internal rate of return of a cash-flow series
func (s *Service) IRR(cashflows []float64, maxIterations int) (*IRRResult, error) {
	if len(cashflows) == 0 {
		return nil, invalid(finance.ErrNoCashflows)
	}
	if maxIterations > MaxIRRIterations {
		return nil, invalid(fmt.Errorf("max_iterations must be at most %d", MaxIRRIterations))
	}
	res := &IRRResult{BestEffort: finance.IRR(cashflows, maxIterations)}
	rate, err := finance.SolveIRR(cashflows, maxIterations)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.IRR = &rate
	return res, nil
}

// EquityMultiple returns total distributions over initial equity
func (s *Service) EquityMultiple(initialEquity float64, periodCashflows []float64, terminalProceeds float64) (float64, error) {
	m := finance.EquityMultiple(initialEquity, periodCashflows, terminalProceeds)
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, invalid(fmt.Errorf("equity_multiple: %w", finance.ErrNotFinite))
	}
	return m, nil
}

// EvaluateScenario applies overrides to a base input and compares the KPIs
func (s *Service) EvaluateScenario(base finance.Input, overrides finance.Overrides) (*models.ScenarioComparison, error) {
	if err := base.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := overrides.Validate(base); err != nil {
		return nil, invalid(err)
	}
	scenarioInput := overrides.Apply(base)
	baseKPIs := finance.ComputeKPIs(base)
	scenarioKPIs := finance.ComputeKPIs(scenarioInput)
	if err := errors.Join(baseKPIs.Finite(), scenarioKPIs.Finite()); err != nil {
		return nil, invalid(err)
	}
	delta := models.KPIDelta{
		NOI:              scenarioKPIs.NOI - baseKPIs.NOI,
		CashFlowAfterTax: scenarioKPIs.CashFlowAfterTax - baseKPIs.CashFlowAfterTax,
		ROI:              scenarioKPIs.ROI - baseKPIs.ROI,
		CapRate:          scenarioKPIs.CapRate - baseKPIs.CapRate,
		LTV:              scenarioKPIs.LTV - baseKPIs.LTV,
		BreakEvenRent:    scenarioKPIs.BreakEvenRent - baseKPIs.BreakEvenRent,
	}
	for _, v := range []float64{delta.NOI, delta.CashFlowAfterTax, delta.ROI, delta.CapRate, delta.LTV, delta.BreakEvenRent} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalid(fmt.Errorf("delta: %w", finance.ErrNotFinite))
		}
	}
	return &models.ScenarioComparison{
		Base:     baseKPIs,
		Scenario: scenarioKPIs,
		Input:    scenarioInput,
		Delta:    delta,
		Ranges:   finance.SliderRanges(base),
	}, nil
}

// SliderRanges returns the adjustable ranges around a base input
func (s *Service) SliderRanges(base finance.Input) ([]finance.SliderRange, error) {
	if err := base.Validate(); err != nil {
		return nil, invalid(err)
	}
	return finance.SliderRanges(base), nil
}

// ReferenceRate returns the cached suggested loan rate
func (s *Service) ReferenceRate() (models.ReferenceRate, error) {
	return s.rates.Latest()
}

// RefreshReferenceRate fetches a new reference rate from upstream
func (s *Service) RefreshReferenceRate(ctx context.Context) error {
	rate, err := s.rates.Refresh(ctx)
	if err != nil {
		return err
	}
	s.log.Infof("Reference rate updated from %s: policy %.2f%%, suggested %.2f%%", rate.Source, rate.PolicyRatePct, rate.SuggestedRatePct)
	return nil
}

// Report renders the stored project's analysis in the given format
func (s *Service) Report(projectID, format string) (*report.Document, error) {
	p, err := s.repo.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	return s.renderProject(p, format)
}

func (s *Service) renderProject(p *models.Project, format string) (*report.Document, error) {
	a := finance.Analyze(p.Input, s.config.ForecastYears)
	if err := a.Finite(); err != nil {
		return nil, invalid(err)
	}
	doc, err := report.Render(format, a, s.config.Currency)
	if err != nil {
		if errors.Is(err, report.ErrUnknownFormat) {
			return nil, invalid(err)
		}
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &doc, nil
}

// EmailReport sends the project's report to a recipient
func (s *Service) EmailReport(projectID, to string) error {
	if s.mailer == nil {
		return ErrEmailDisabled
	}
	if to == "" {
		return invalid(errors.New("recipient is required"))
	}
	p, err := s.repo.FindProjectByID(projectID)
	if err != nil {
		return err
	}
	md, err := s.renderProject(p, report.FormatMarkdown)
	if err != nil {
		return err
	}
	html, err := s.renderProject(p, report.FormatHTML)
	if err != nil {
		return err
	}
	if err := s.mailer.SendReport(to, email.Report{
		PropertyName: p.Name(),
		FileName:     md.FileName,
		Markdown:     string(md.Body),
		HTML:         string(html.Body),
	}); err != nil {
		return err
	}
	s.log.Infof("Report for project %s sent to %s", p.ID, to)
	return nil
}
