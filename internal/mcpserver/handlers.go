package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/drill"
	"github.com/drillq/drillq/internal/spacedrep"
)

// OptionView is one lettered option as shown to the player.
type OptionView struct {
	Letter      string `json:"letter"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ScenarioView is a scenario without its grading.
type ScenarioView struct {
	ID       string       `json:"id"`
	Sport    string       `json:"sport"`
	Level    string       `json:"level"`
	Category string       `json:"category"`
	Position string       `json:"position,omitempty"`
	Prompt   string       `json:"prompt"`
	Options  []OptionView `json:"options"`
}

// NextScenarioResponse is returned by next_scenario.
type NextScenarioResponse struct {
	Available bool             `json:"available"`
	Scenario  *ScenarioView    `json:"scenario,omitempty"`
	Message   string           `json:"message,omitempty"`
	Stats     drill.DrillStats `json:"stats"`
}

// SubmitAnswerResponse is returned by submit_answer.
type SubmitAnswerResponse struct {
	ScenarioID   string    `json:"scenario_id"`
	Outcome      string    `json:"outcome"`
	BestLetter   string    `json:"best_letter"`
	BestLabel    string    `json:"best_label"`
	CoachingCue  string    `json:"coaching_cue"`
	ChosenCue    string    `json:"chosen_cue,omitempty"`
	IntervalDays float64   `json:"interval_days"`
	Ease         float64   `json:"ease"`
	NextDue      time.Time `json:"next_due"`
}

// ResetSessionResponse is returned by reset_session.
type ResetSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleNextScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := s.filterFromArgs(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := NextScenarioResponse{Stats: s.svc.Stats(f)}
	sc, ok := s.svc.Next(f)
	if !ok {
		resp.Message = "No scenario is available right now. Every scenario has been drilled and none is due; reset the session to start over."
		return jsonResult(resp)
	}

	s.presented[sc.ID] = s.now()
	resp.Available = true
	resp.Scenario = viewOf(sc)
	s.logger.Debug("scenario presented", zap.String("scenario_id", sc.ID))
	return jsonResult(resp)
}

func (s *Server) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarioID, _ := request.Params.Arguments["scenario_id"].(string)
	choice, _ := request.Params.Arguments["choice"].(string)
	if scenarioID == "" || choice == "" {
		return mcp.NewToolResultError("scenario_id and choice are required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.svc.Catalog().Get(scenarioID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q, err := sc.QualityForLetter(choice)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("choice must be A, B, C or timeout, got %q", choice)), nil
	}

	var elapsed time.Duration
	if shown, ok := s.presented[scenarioID]; ok {
		elapsed = s.now().Sub(shown)
		delete(s.presented, scenarioID)
	}

	out, err := s.svc.Answer(ctx, scenarioID, q, elapsed)
	if err != nil {
		if errors.Is(err, spacedrep.ErrInvalidQuality) || errors.Is(err, catalog.ErrUnknownScenario) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.Error("submit answer failed", zap.String("scenario_id", scenarioID), zap.Error(err))
		return nil, err
	}

	resp := SubmitAnswerResponse{
		ScenarioID:   scenarioID,
		Outcome:      q.String(),
		BestLabel:    sc.Best.Label,
		CoachingCue:  sc.Best.CoachingCue,
		IntervalDays: out.Progress.Interval,
		Ease:         out.Progress.Ease,
		NextDue:      out.Progress.NextDue,
	}
	for _, c := range sc.Choices() {
		if c.Quality == spacedrep.QualityBest {
			resp.BestLetter = c.Letter
		}
		if c.Quality == q && q != spacedrep.QualityBest {
			resp.ChosenCue = c.Option.CoachingCue
		}
	}
	return jsonResult(resp)
}

func (s *Server) handleDrillStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := s.filterFromArgs(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonResult(s.svc.Stats(f))
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.svc.Reset(ctx); err != nil {
		s.logger.Error("reset session failed", zap.Error(err))
		return nil, err
	}
	clear(s.presented)
	return jsonResult(ResetSessionResponse{SessionID: s.svc.Session().ID})
}

func (s *Server) filterFromArgs(args map[string]interface{}) (catalog.Filter, error) {
	str := func(key string) string {
		v, _ := args[key].(string)
		return v
	}
	f, err := catalog.ParseFilter(str("sport"), str("level"), str("category"), str("position"))
	if err != nil {
		return catalog.Filter{}, err
	}
	return f, s.svc.Catalog().CheckFilter(f)
}

func viewOf(sc catalog.Scenario) *ScenarioView {
	v := &ScenarioView{
		ID:       sc.ID,
		Sport:    string(sc.Sport),
		Level:    string(sc.Level),
		Category: sc.Category,
		Position: string(sc.Position),
		Prompt:   sc.Prompt,
	}
	for _, c := range sc.Choices() {
		v.Options = append(v.Options, OptionView{
			Letter:      c.Letter,
			Label:       c.Option.Label,
			Description: c.Option.Description,
		})
	}
	return v
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
