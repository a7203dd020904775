package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// looseID accepts an identifier written as a JSON string or number. Numbers
// keep their literal text, so 1700000000000 becomes "1700000000000".
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = looseID(x)
	case json.Number:
		*id = looseID(x.String())
	default:
		return fmt.Errorf("id must be a string or number, got %T", v)
	}
	return nil
}

// decodeRoot parses a boards payload. Boards and tasks that fail their
// shape check are dropped one by one; only a broken envelope fails.
func decodeRoot(data []byte, log logrus.FieldLogger) (*rawRoot, error) {
	if err := checkShape(compiledRoot, data); err != nil {
		return nil, err
	}

	var env *rawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if env == nil {
		return nil, nil
	}

	root := &rawRoot{
		BackgroundURL:    env.BackgroundURL,
		BackgroundPreset: env.BackgroundPreset,
		Boards:           make([]rawBoard, 0, len(env.Boards)),
	}
	for i, msg := range env.Boards {
		blog := log.WithField("board", i)
		if err := checkShape(compiledBoard, msg); err != nil {
			blog.WithError(err).Warn("dropping unreadable board")
			continue
		}
		var rb rawBoard
		if err := json.Unmarshal(msg, &rb); err != nil {
			blog.WithError(err).Warn("dropping unreadable board")
			continue
		}
		rb.tasks = decodeTasks(rb.Tasks, blog)
		root.Boards = append(root.Boards, rb)
	}
	return root, nil
}

// decodeLegacyList parses the flat task list, dropping unreadable entries.
func decodeLegacyList(data []byte, log logrus.FieldLogger) ([]rawTask, error) {
	if err := checkShape(compiledLegacy, data); err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return decodeTasks(items, log), nil
}

func decodeTasks(items []json.RawMessage, log logrus.FieldLogger) []rawTask {
	tasks := make([]rawTask, 0, len(items))
	for i, msg := range items {
		var rt rawTask
		err := checkShape(compiledTask, msg)
		if err == nil {
			err = json.Unmarshal(msg, &rt)
		}
		if err != nil {
			log.WithError(err).WithField("task", i).Warn("dropping unreadable task")
			continue
		}
		tasks = append(tasks, rt)
	}
	return tasks
}
