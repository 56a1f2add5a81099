package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/diff"
	"github.com/sprite-ai/prsift/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgLoadDiff = "load_diff"
	wsMsgDismiss  = "dismiss"
	wsMsgRestore  = "restore"
	wsMsgFinish   = "finish"
)

// WebSocket message types to client.
const (
	wsMsgParsed   = "parsed"
	wsMsgAnalysis = "analysis"
	wsMsgTriage   = "triage"
	wsMsgSummary  = "summary"
	wsMsgError    = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsLoadDiff is the payload for "load_diff" messages.
type wsLoadDiff struct {
	Diff string `json:"diff"`
}

// wsTriageMsg is the payload for dismiss/restore messages.
type wsTriageMsg struct {
	FindingIndex int `json:"finding_index"`
}

// wsParsedResponse is sent after a diff is loaded.
type wsParsedResponse struct {
	Files []fileJSON    `json:"files"`
	Stats diffStatsJSON `json:"stats"`
}

// wsTriageResponse confirms a triage action.
type wsTriageResponse struct {
	FindingIndex int    `json:"finding_index"`
	State        string `json:"state"`
}

// wsSummaryResponse is sent when the session is finished.
type wsSummaryResponse struct {
	Open      int             `json:"open"`
	Dismissed int             `json:"dismissed"`
	Findings  []model.Finding `json:"findings"`
}

// triageSession holds the state for a WebSocket triage session.
type triageSession struct {
	files     []model.FileChange
	result    *model.Result
	dismissed map[int]bool
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	session := &triageSession{
		dismissed: make(map[int]bool),
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgLoadDiff:
			s.handleWSLoadDiff(conn, r, session, msg.Data)
		case wsMsgDismiss:
			handleWSTriage(conn, session, msg.Data, true)
		case wsMsgRestore:
			handleWSTriage(conn, session, msg.Data, false)
		case wsMsgFinish:
			handleWSFinish(conn, session)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSLoadDiff(conn *websocket.Conn, r *http.Request, session *triageSession, data json.RawMessage) {
	var req wsLoadDiff
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid load_diff data")
		return
	}

	files, err := diff.ParseUnified(req.Diff)
	if err != nil {
		sendWSError(conn, "parsing diff: "+err.Error())
		return
	}

	session.files = files
	session.dismissed = make(map[int]bool)
	session.result = s.analyze(r, files)

	parsed := wsParsedResponse{}
	for _, f := range files {
		parsed.Files = append(parsed.Files, fileJSON{
			Path:         f.Path,
			Status:       f.Status,
			PreviousPath: f.PreviousPath,
			AddedLines:   f.Additions,
			DeletedLines: f.Deletions,
			Skipped:      diff.ShouldSkip(f.Path),
		})
		parsed.Stats.Files++
		parsed.Stats.Added += f.Additions
		parsed.Stats.Deleted += f.Deletions
	}
	sendWS(conn, wsMsgParsed, parsed)

	analysisResp := analyzeResult(files, session.result)
	sendWS(conn, wsMsgAnalysis, analysisResp)
}

func handleWSTriage(conn *websocket.Conn, session *triageSession, data json.RawMessage, dismiss bool) {
	if session.result == nil {
		sendWSError(conn, "no diff loaded")
		return
	}

	var req wsTriageMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid triage data")
		return
	}
	if req.FindingIndex < 0 || req.FindingIndex >= len(session.result.Findings) {
		sendWSError(conn, "finding index out of range")
		return
	}

	state := "open"
	if dismiss {
		session.dismissed[req.FindingIndex] = true
		state = "dismissed"
	} else {
		delete(session.dismissed, req.FindingIndex)
	}

	sendWS(conn, wsMsgTriage, wsTriageResponse{
		FindingIndex: req.FindingIndex,
		State:        state,
	})
}

func handleWSFinish(conn *websocket.Conn, session *triageSession) {
	if session.result == nil {
		sendWSError(conn, "no diff loaded")
		return
	}

	resp := wsSummaryResponse{Dismissed: len(session.dismissed)}
	for i, f := range session.result.Findings {
		if session.dismissed[i] {
			continue
		}
		resp.Findings = append(resp.Findings, f)
	}
	resp.Open = len(resp.Findings)

	sendWS(conn, wsMsgSummary, resp)
}

func sendWS(conn *websocket.Conn, msgType string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Errorf("websocket marshal: %v", err)
		return
	}
	if err := conn.WriteJSON(wsMessage{Type: msgType, Data: payload}); err != nil {
		log.Errorf("websocket write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, msg string) {
	sendWS(conn, wsMsgError, map[string]string{"message": msg})
}
