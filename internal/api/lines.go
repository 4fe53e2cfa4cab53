package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/ledseq/internal/api/models"
	"github.com/smazurov/ledseq/internal/led"
)

// registerLineRoutes registers per-line status and control endpoints.
func (s *Server) registerLineRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-lines",
		Method:      http.MethodGet,
		Path:        "/api/lines",
		Summary:     "List Lines",
		Description: "Get the detected board and the status of both LED lines",
		Tags:        []string{"lines"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.LineListResponse, error) {
		statuses := s.panel.Status()
		lines := make([]models.LineData, 0, len(statuses))
		for _, status := range statuses {
			lines = append(lines, lineData(status))
		}
		return &models.LineListResponse{
			Body: models.LineListData{
				Board: s.options.BoardModel,
				Lines: lines,
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-line",
		Method:      http.MethodGet,
		Path:        "/api/lines/{line}",
		Summary:     "Get Line",
		Description: "Get the status of one LED line",
		Tags:        []string{"lines"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.LineInput) (*models.LineResponse, error) {
		line, err := parseLine(input.Line)
		if err != nil {
			return nil, err
		}
		for _, status := range s.panel.Status() {
			if status.Line == line {
				return &models.LineResponse{Body: lineData(status)}, nil
			}
		}
		return nil, huma.Error404NotFound("line not found")
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "run-sequence",
		Method:        http.MethodPost,
		Path:          "/api/lines/{line}/run",
		Summary:       "Run Sequence",
		Description:   "Start a sequence on a line. The line is switched off before the first step and after the last.",
		Tags:          []string{"lines"},
		Security:      withAuth(),
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{401, 404, 409},
	}, func(_ context.Context, input *models.RunRequest) (*models.RunResponse, error) {
		line, err := parseLine(input.Line)
		if err != nil {
			return nil, err
		}

		repeat := true
		if input.Body.Repeat != nil {
			repeat = *input.Body.Repeat
		}

		run, err := s.panel.Start(input.Body.Sequence, line, repeat)
		if err != nil {
			return nil, mapLEDError(err)
		}

		info := run.Info()
		s.logger.Info("Sequence run requested",
			"line", line.String(), "sequence", info.Sequence, "repeat", repeat, "run_id", info.ID)

		return &models.RunResponse{
			Body: models.RunData{
				RunID:     info.ID,
				Sequence:  info.Sequence,
				Line:      line.String(),
				Repeat:    info.Repeat,
				StartedAt: info.StartedAt,
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "stop-line",
		Method:      http.MethodPost,
		Path:        "/api/lines/{line}/stop",
		Summary:     "Stop Line",
		Description: "Cancel the sequence running on a line. It ends after its current step and leaves the line off.",
		Tags:        []string{"lines"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 504},
	}, func(ctx context.Context, input *models.StopRequest) (*models.StopResponse, error) {
		line, err := parseLine(input.Line)
		if err != nil {
			return nil, err
		}

		run, ok := s.panel.Stop(line)
		if !ok {
			return &models.StopResponse{Body: models.StopData{Stopped: false}}, nil
		}

		data := models.StopData{Stopped: true, RunID: run.ID()}
		if input.Wait {
			if err := run.Wait(ctx); err != nil && errors.Is(err, ctx.Err()) {
				return nil, huma.Error504GatewayTimeout("line did not stop in time", err)
			}
			data.Outcome = string(run.Outcome())
		}

		s.logger.Info("Sequence run stopped", "line", line.String(), "run_id", run.ID())
		return &models.StopResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-line-state",
		Method:      http.MethodPut,
		Path:        "/api/lines/{line}/state",
		Summary:     "Set Line State",
		Description: "Write on or off to a line that has no running sequence",
		Tags:        []string{"lines"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 409},
	}, func(_ context.Context, input *models.StateRequest) (*models.LineResponse, error) {
		line, err := parseLine(input.Line)
		if err != nil {
			return nil, err
		}
		state, err := led.ParseState(input.Body.State)
		if err != nil {
			return nil, mapLEDError(err)
		}
		if err := s.panel.SetState(line, state); err != nil {
			return nil, mapLEDError(err)
		}
		return &models.LineResponse{Body: models.LineData{
			Line:  line.String(),
			Phase: led.PhaseIdle.String(),
		}}, nil
	})
}

func parseLine(value string) (led.Line, error) {
	line, err := led.ParseLine(value)
	if err != nil {
		return 0, huma.Error404NotFound("line not found", err)
	}
	return line, nil
}

func lineData(status led.LineStatus) models.LineData {
	data := models.LineData{
		Line:     status.Line.String(),
		Running:  status.Running,
		RunID:    status.RunID,
		Sequence: status.Sequence,
		Repeat:   status.Repeat,
		Phase:    status.Phase.String(),
	}
	if !status.StartedAt.IsZero() {
		started := status.StartedAt
		data.StartedAt = &started
	}
	return data
}
