package transport

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region encode
func readingToMap(r state.ReadingRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":       r.ID,
		"question": r.Question,
		"response": map[string]interface{}{
			"id":          r.Response.ID,
			"tone":        string(r.Response.Tone),
			"title":       r.Response.Title,
			"description": r.Response.Description,
			"color":       r.Response.Color,
		},
		"timestamp": state.FormatTimestamp(r.Timestamp),
	}
}

func stateToMap(s state.ApplicationState) map[string]interface{} {
	history := make([]interface{}, len(s.History))
	for i, r := range s.History {
		history[i] = readingToMap(r)
	}
	var active interface{}
	if s.Active != nil {
		active = readingToMap(*s.Active)
	}
	return map[string]interface{}{
		"history":       history,
		"activeReading": active,
	}
}

// #endregion encode

// #region decode
func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

func optionalString(s *structpb.Struct, key string) string {
	if v, ok := s.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func readingFromMap(m map[string]interface{}) (state.ReadingRecord, error) {
	var r state.ReadingRecord
	var err error
	if r.ID, err = stringField(m, "id"); err != nil {
		return r, err
	}
	if r.Question, err = stringField(m, "question"); err != nil {
		return r, err
	}
	ts, err := stringField(m, "timestamp")
	if err != nil {
		return r, err
	}
	if r.Timestamp, err = state.ParseTimestamp(ts); err != nil {
		return r, err
	}

	resp, ok := m["response"].(map[string]interface{})
	if !ok {
		return r, fmt.Errorf("reading %s: missing response", r.ID)
	}
	fields := []struct {
		key string
		dst *string
	}{
		{"id", &r.Response.ID},
		{"title", &r.Response.Title},
		{"description", &r.Response.Description},
		{"color", &r.Response.Color},
	}
	for _, f := range fields {
		if *f.dst, err = stringField(resp, f.key); err != nil {
			return r, fmt.Errorf("reading %s response: %w", r.ID, err)
		}
	}
	tone, err := stringField(resp, "tone")
	if err != nil {
		return r, fmt.Errorf("reading %s response: %w", r.ID, err)
	}
	if r.Response.Tone, err = catalog.ParseTone(tone); err != nil {
		return r, fmt.Errorf("reading %s response: %w", r.ID, err)
	}
	return r, nil
}

func stateFromMap(m map[string]interface{}) (state.ApplicationState, error) {
	s := state.Empty()
	raw, _ := m["history"].([]interface{})
	for i, item := range raw {
		rm, ok := item.(map[string]interface{})
		if !ok {
			return s, fmt.Errorf("history[%d]: expected object, got %T", i, item)
		}
		r, err := readingFromMap(rm)
		if err != nil {
			return s, fmt.Errorf("history[%d]: %w", i, err)
		}
		s.History = append(s.History, r)
	}
	if am, ok := m["activeReading"].(map[string]interface{}); ok {
		r, err := readingFromMap(am)
		if err != nil {
			return s, fmt.Errorf("activeReading: %w", err)
		}
		s.Active = &r
	}
	return s, nil
}

func versionFromMap(m map[string]interface{}) int64 {
	f, _ := m["version"].(float64)
	return int64(f)
}

// #endregion decode
