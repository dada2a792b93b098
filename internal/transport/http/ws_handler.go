package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"career-fit-service/internal/app"
	"career-fit-service/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AssessmentSessions is the slice of the assessment service the websocket handler drives.
type AssessmentSessions interface {
	Start(ctx context.Context, assessmentID string) (app.SessionInfo, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID string, value domain.Value) (app.AnswerAck, error)
	IsSectionComplete(ctx context.Context, sessionID string, section domain.Section) (bool, error)
	Progress(ctx context.Context, sessionID string) ([]app.SectionProgress, error)
	Finalize(ctx context.Context, sessionID string, overrides domain.Overrides) (domain.AssessmentResult, error)
	Restart(ctx context.Context, sessionID string) (app.SessionInfo, error)
	End(ctx context.Context, sessionID string)
}

const writeWait = 10 * time.Second

type WSHandler struct {
	service  AssessmentSessions
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service AssessmentSessions, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string        `json:"questionId"`
	Value      *domain.Value `json:"value"`
}

type sectionPayload struct {
	Section string `json:"section"`
}

type sectionStatus struct {
	Section  domain.Section `json:"section"`
	Complete bool           `json:"complete"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: domain.CodeOf(err), Message: err.Error()}}
}

func badPayload(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: domain.ErrCodeInvalidResponse, Message: message}}
}

// ServeWS upgrades HTTP requests to websockets and runs one assessment session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.URL.Query().Get("assessmentId")
	if assessmentID == "" {
		http.Error(w, "missing assessmentId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	started, err := h.service.Start(ctx, assessmentID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	sessionID := started.SessionID
	defer func() { h.service.End(context.Background(), sessionID) }()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	// On a write error the connection is closed so the read loop unblocks too.
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.String("assessment_id", assessmentID), zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}()

	// enqueue reports false once the writer has gone away.
	enqueue := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	if enqueue(outboundMessage[any]{Type: "started", Payload: started}) {
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				break
			}
			if !enqueue(h.dispatch(ctx, &sessionID, inbound)) {
				break
			}
		}
	}

	close(send)
	<-writerDone
}

// dispatch runs one inbound message against the session. A restart swaps
// the id in sessionID.
func (h *WSHandler) dispatch(ctx context.Context, sessionID *string, inbound inboundMessage) outboundMessage[any] {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" || payload.Value == nil {
			return badPayload("invalid answer payload")
		}
		ack, err := h.service.SubmitAnswer(ctx, *sessionID, payload.QuestionID, *payload.Value)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "answerAccepted", Payload: ack}
	case "sectionStatus":
		var payload sectionPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return badPayload("invalid sectionStatus payload")
			}
		}
		return h.sectionStatus(ctx, *sessionID, payload.Section)
	case "finalize":
		var overrides domain.Overrides
		if len(inbound.Payload) > 0 && string(inbound.Payload) != "null" {
			if err := json.Unmarshal(inbound.Payload, &overrides); err != nil {
				return badPayload("invalid finalize payload")
			}
		}
		result, err := h.service.Finalize(ctx, *sessionID, overrides)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "result", Payload: result}
	case "restart":
		restarted, err := h.service.Restart(ctx, *sessionID)
		if err != nil {
			return errorMessage(err)
		}
		*sessionID = restarted.SessionID
		return outboundMessage[any]{Type: "started", Payload: restarted}
	default:
		return badPayload("unsupported message type")
	}
}

// sectionStatus answers one section, or every section when section is empty.
func (h *WSHandler) sectionStatus(ctx context.Context, sessionID, raw string) outboundMessage[any] {
	if raw == "" {
		progress, err := h.service.Progress(ctx, sessionID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "sectionStatus", Payload: progress}
	}
	section, err := domain.ParseSection(raw)
	if err != nil {
		return errorMessage(err)
	}
	complete, err := h.service.IsSectionComplete(ctx, sessionID, section)
	if err != nil {
		return errorMessage(err)
	}
	return outboundMessage[any]{Type: "sectionStatus", Payload: sectionStatus{Section: section, Complete: complete}}
}
