package messages

import (
	"fmt"
	"log/slog"
)

type ID string

const (
	Start                 ID = "start"
	NoFormula             ID = "no_formula"
	NoSession             ID = "no_session"
	NoReference           ID = "no_reference"
	NothingToToggle       ID = "nothing_to_toggle"
	Toggled               ID = "toggled"
	BadCursor             ID = "bad_cursor"
	BadAnchor             ID = "bad_anchor"
	SessionRemoved        ID = "session_removed"
	NoEditsYet            ID = "no_edits"
	EditsHeader           ID = "edits_header"
	FormulaHeader         ID = "formula_header"
	ReferenceLine         ID = "reference_line"
	NoReferenceLine       ID = "no_reference_line"
	UnknownCommand        ID = "unknown_command"
	UnknownAction         ID = "unknown_action"
	UnsuccessfulOperation ID = "unsuccessful_operation"
)

var en = map[ID]string{
	Start: "Send me a formula and I will keep it as your buffer.\n" +
		"/new [x y] <formula> - start editing the formula of cell (x, y)\n" +
		"/cursor <n> - move the cursor to character n\n" +
		"/anchor <x> <y> - change the cell the formula belongs to\n" +
		"/f4 - toggle the reference S[x, y] under the cursor between absolute and relative\n" +
		"/get - show the buffer\n" +
		"/list - recent toggles\n" +
		"/del - drop the buffer",
	NoFormula:             "No formula given. Usage: /new [x y] <formula>",
	NoSession:             "No formula yet. Send one or use /new [x y] <formula>",
	NoReference:           "No S[x, y] reference in the formula",
	NothingToToggle:       "Neither coordinate of the reference can be toggled",
	Toggled:               "Toggled",
	BadCursor:             "Usage: /cursor <position>",
	BadAnchor:             "Usage: /anchor <x> <y>",
	SessionRemoved:        "Formula dropped",
	NoEditsYet:            "No toggles yet",
	EditsHeader:           "Recent toggles:",
	FormulaHeader:         "<b>Cell (%d, %d)</b>",
	ReferenceLine:         "Reference at %d: %s",
	NoReferenceLine:       "No reference under the cursor",
	UnknownCommand:        "Unknown command /%s. See /start",
	UnknownAction:         "Unknown action",
	UnsuccessfulOperation: "Could not complete the operation",
}

func T(id ID, args ...any) string {
	reply, ok := en[id]
	if !ok {
		slog.Warn("missing text", "id", string(id))
		return "Error"
	}

	if len(args) == 0 {
		return reply
	}

	return fmt.Sprintf(reply, args...)
}
