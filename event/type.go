package event

import "time"

// EventType represents the type of match event
type EventType int

const (
	// EventNone is the zero value and doubles as the FSM tick trigger
	EventNone EventType = iota

	// === Lifecycle Event ===

	// EventEnvironmentReady signals setup finished
	// Trigger: Orchestrator.Enter after environment load | Payload: nil
	EventEnvironmentReady

	// EventCompetitorsPlaced signals every controller is constructed
	// Trigger: Orchestrator.Enter after placement | Payload: nil
	EventCompetitorsPlaced

	// === UI Event ===

	// EventReadyClicked signals the ready control was pressed
	// Trigger: UI click handler | Payload: nil
	EventReadyClicked

	// EventSkipClicked requests the camera sequence be skipped
	// Trigger: UI click handler | Payload: nil
	EventSkipClicked

	// EventHelpClosed hides the help panel
	// Trigger: UI click handler | Payload: nil
	EventHelpClosed

	// EventReplayClicked selects replay on the scoreboard
	// Trigger: UI click handler | Payload: nil
	EventReplayClicked

	// EventContinueClicked selects continue on the scoreboard
	// Trigger: UI click handler | Payload: nil
	EventContinueClicked

	// === Timer Event ===

	// EventCountdownStep shows the next countdown panel
	// Trigger: repeating timer | Payload: int (step index)
	EventCountdownStep

	// EventCountdownHide hides the last countdown panel
	// Trigger: one-shot timer | Payload: nil
	EventCountdownHide

	// EventReveal exposes the playable surface
	// Trigger: one-shot timer | Payload: nil
	EventReveal

	// EventShowScoreboard moves from Ending to ScoreboardShown
	// Trigger: one-shot timer | Payload: nil
	EventShowScoreboard

	// EventShowResults reveals the results panel
	// Trigger: one-shot timer | Payload: nil
	EventShowResults

	// === Match Event ===

	// EventCountdownDone marks the last countdown step; match time starts
	// Trigger: countdown handler | Payload: nil
	EventCountdownDone

	// EventAllFinished signals every competitor crossed its finish volume
	// Trigger: Active update | Payload: nil
	EventAllFinished

	// EventTimeout signals the tier timeout elapsed since match start
	// Trigger: Active update | Payload: nil
	EventTimeout

	// EventPlayableLost signals the presentation layer ended play
	// Trigger: Active update | Payload: nil
	EventPlayableLost
)

var eventNames = map[EventType]string{
	EventNone:              "None",
	EventEnvironmentReady:  "EnvironmentReady",
	EventCompetitorsPlaced: "CompetitorsPlaced",
	EventReadyClicked:      "ReadyClicked",
	EventSkipClicked:       "SkipClicked",
	EventHelpClosed:        "HelpClosed",
	EventReplayClicked:     "ReplayClicked",
	EventContinueClicked:   "ContinueClicked",
	EventCountdownStep:     "CountdownStep",
	EventCountdownHide:     "CountdownHide",
	EventReveal:            "Reveal",
	EventShowScoreboard:    "ShowScoreboard",
	EventShowResults:       "ShowResults",
	EventCountdownDone:     "CountdownDone",
	EventAllFinished:       "AllFinished",
	EventTimeout:           "Timeout",
	EventPlayableLost:      "PlayableLost",
}

// String returns the event name for logs
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent is one queued match event
// At is the match clock reading when the event was produced (zero for UI events)
type GameEvent struct {
	Type    EventType
	Payload any
	At      time.Duration
}
