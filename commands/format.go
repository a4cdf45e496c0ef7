package commands

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/model"
	"github.com/maxBezel/formulabot/refcycle"
)

const cycleCallback = "cycle"

// renderSession prints the buffer in a monospace block with a | at the
// cursor.
func renderSession(sess *model.Session) string {
	cur := sess.Cursor
	if cur < 0 || cur > len(sess.Text) {
		cur = len(sess.Text)
	}

	var b strings.Builder
	b.WriteString(msgs.T(msgs.FormulaHeader, sess.AnchorX, sess.AnchorY))
	b.WriteString("\n<pre>")
	b.WriteString(html.EscapeString(sess.Text[:cur]))
	b.WriteByte('|')
	b.WriteString(html.EscapeString(sess.Text[cur:]))
	b.WriteString("</pre>")
	return b.String()
}

func cycleKeyboard() api.InlineKeyboardMarkup {
	btn := api.NewInlineKeyboardButtonData("F4", cycleCallback)
	return api.NewInlineKeyboardMarkup(api.NewInlineKeyboardRow(btn))
}

// formulaMessage sends an HTML body with the F4 button under it.
func formulaMessage(chatID int64, body string) api.MessageConfig {
	out := api.NewMessage(chatID, body)
	out.ParseMode = "HTML"
	out.ReplyMarkup = cycleKeyboard()
	return out
}

func anchorOf(sess *model.Session) refcycle.Anchor {
	return refcycle.Anchor{X: sess.AnchorX, Y: sess.AnchorY}
}

func userID(msg *api.Message) int64 {
	if msg.From == nil {
		return 0
	}
	return msg.From.ID
}

// runeToByte converts a character position into a byte offset of s,
// clamped to the string.
func runeToByte(s string, n int) int {
	if n <= 0 {
		return 0
	}
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

func byteToRune(s string, off int) int {
	if off > len(s) {
		off = len(s)
	}
	return utf8.RuneCountInString(s[:off])
}

// cutField splits off the first blank-separated field of s.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t\n")
	i := strings.IndexAny(s, " \t\n")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t\n")
}

// parseAnchorPrefix reads an optional "x y" prefix in front of a formula.
func parseAnchorPrefix(args string, def refcycle.Anchor) (refcycle.Anchor, string) {
	xs, rest := cutField(args)
	ys, formula := cutField(rest)

	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil || strings.TrimSpace(formula) == "" {
		return def, args
	}
	return refcycle.Anchor{X: x, Y: y}, formula
}
