package layout

import (
	"encoding/json"
	"fmt"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/history"
)

// Record is the serialized form of one command.
type Record struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeCommand serializes a command created by this package.
func EncodeCommand(cmd history.Command) (Record, error) {
	c, ok := cmd.(Command)
	if !ok {
		return Record{}, errors.New(errors.ErrCodeUnsupported, "command %T is not a layout command", cmd)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s command: %w", c.Kind(), err)
	}
	return Record{Kind: c.Kind(), Payload: payload}, nil
}

// DecodeCommand rebuilds a command from rec and binds it to l. It does not
// execute or validate it.
func DecodeCommand(l *Layout, rec Record) (history.Command, error) {
	var cmd Command
	switch rec.Kind {
	case KindAddType:
		cmd = &AddTypeCommand{}
	case KindRemoveType:
		cmd = &RemoveTypeCommand{}
	case KindPlace:
		cmd = &PlaceCommand{}
	case KindMove:
		cmd = &MoveCommand{}
	case KindRemove:
		cmd = &RemoveCommand{}
	case KindRename:
		cmd = &RenameCommand{}
	case KindResize:
		cmd = &ResizeCommand{}
	case KindConfigure:
		cmd = &ConfigureCommand{}
	case KindReplace, KindClear, KindReset:
		cmd = &SnapshotCommand{}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown command kind %q", rec.Kind)
	}
	if err := json.Unmarshal(rec.Payload, cmd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s command", rec.Kind)
	}
	if s, ok := cmd.(*SnapshotCommand); ok && s.Op != rec.Kind {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "snapshot command kind %q does not match record %q", s.Op, rec.Kind)
	}
	cmd.bind(l)
	return cmd, nil
}

// EncodeCommands serializes a slice of commands in order.
func EncodeCommands(cmds []history.Command) ([]Record, error) {
	out := make([]Record, 0, len(cmds))
	for _, c := range cmds {
		rec, err := EncodeCommand(c)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeCommands rebuilds a slice of commands bound to l.
func DecodeCommands(l *Layout, recs []Record) ([]history.Command, error) {
	out := make([]history.Command, 0, len(recs))
	for _, rec := range recs {
		c, err := DecodeCommand(l, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
