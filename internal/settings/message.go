package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/theme"
)

// Keys understood in inbound messages.
const (
	KeyHourlyVibe      = "HourlyVibe"
	KeyConnectionVibe  = "ConnectionVibe"
	KeyHealthVibe      = "HealthVibe"
	KeyBackgroundColor = "BackgroundColor"
	KeyInvert          = "Invert"
	KeyTimeFormat      = "TimeFormat"
)

// Message is one inbound companion-app message: a JSON object carrying any
// subset of the known keys. Values may be JSON strings, numbers or bools.
type Message map[string]json.RawMessage

// DecodeMessage parses one JSON line.
func DecodeMessage(line []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

// ApplyMessage returns s with the message's keys applied and whether
// anything changed. A message with any invalid value is rejected whole.
// Unknown keys are ignored.
func ApplyMessage(s domain.Settings, msg Message) (domain.Settings, bool, error) {
	next := s
	for key, raw := range msg {
		v := scalar(raw)
		var err error
		switch key {
		case KeyHourlyVibe:
			next.HourlyVibe, err = parseBool(v)
		case KeyConnectionVibe:
			vs, ok := domain.VibeStateFromString(v)
			if !ok {
				err = domain.ErrInvalidSetting
			}
			next.ConnectionVibe = vs
		case KeyHealthVibe:
			next.HealthVibe, err = parseBool(v)
		case KeyBackgroundColor:
			next.Background, err = theme.ParseColor(v)
		case KeyInvert:
			next.Invert, err = parseBool(v)
		case KeyTimeFormat:
			tf, ok := domain.TimeFormatFromString(v)
			if !ok {
				err = domain.ErrInvalidSetting
			}
			next.TimeFormat = tf
		default:
			continue
		}
		if err != nil {
			return s, false, fmt.Errorf("message key %s=%s: %w", key, v, err)
		}
	}
	return next, next != s, nil
}

// scalar returns a JSON string's contents, or the raw literal for numbers
// and bools.
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var str string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &str) == nil {
		return str
	}
	return string(raw)
}

func parseBool(v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, domain.ErrInvalidSetting
	}
	return b, nil
}
