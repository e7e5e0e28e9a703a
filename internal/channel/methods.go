package channel

import (
	"encoding/json"
	"fmt"

	"github.com/kobzarvs/richfield/internal/textfield"
)

type textArgs struct {
	Text            string `json:"text"`
	BackSpaceLength int    `json:"backSpaceLength"`
}

type blockArgs struct {
	Name            string         `json:"name"`
	Data            string         `json:"data"`
	TextStyle       map[string]any `json:"textStyle"`
	Prefix          string         `json:"prefix"`
	Separator       string         `json:"separator"`
	BackSpaceLength int            `json:"backSpaceLength"`
}

type nameArgs struct {
	Name      string         `json:"name"`
	TextStyle map[string]any `json:"textStyle"`
}

type selectionArgs struct {
	Text           string `json:"text"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
}

type editArgs struct {
	Location int    `json:"location"`
	Length   int    `json:"length"`
	Text     string `json:"text"`
}

// Dispatch runs one method against the field. Mutating methods return
// whether the buffer changed.
func (s *Server) Dispatch(method string, raw json.RawMessage) (any, error) {
	f := s.field
	switch method {
	case "setText":
		text, err := decode[string](raw)
		if err != nil {
			return nil, err
		}
		f.SetText(text)
		return true, nil
	case "insertText":
		args, err := decode[textArgs](raw)
		if err != nil {
			return nil, err
		}
		return f.InsertText(args.Text, args.BackSpaceLength), nil
	case "insertBlock":
		args, err := decode[blockArgs](raw)
		if err != nil {
			return nil, err
		}
		return f.InsertToken(textfield.TokenInsert{
			Display:   args.Name,
			Payload:   args.Data,
			Style:     textfield.StyleFromArgs(args.TextStyle, f.Options().TokenStyle),
			Prefix:    args.Prefix,
			Separator: args.Separator,
			Backspace: args.BackSpaceLength,
		}), nil
	case "insertAtName":
		return s.insertName(raw, s.tokens.MentionPrefix)
	case "insertChannelName":
		return s.insertName(raw, s.tokens.ChannelPrefix)
	case "replace":
		args, err := decode[selectionArgs](raw)
		if err != nil {
			return nil, err
		}
		return f.Replace(args.Text, rangeOf(args)), nil
	case "edit":
		args, err := decode[editArgs](raw)
		if err != nil {
			return nil, err
		}
		return f.Edit(textfield.Range{Location: args.Location, Length: args.Length}, args.Text), nil
	case "setSelection":
		args, err := decode[selectionArgs](raw)
		if err != nil {
			return nil, err
		}
		f.SetSelection(rangeOf(args))
		return f.Value(), nil
	case "updateFocus":
		focused, err := decode[bool](raw)
		if err != nil {
			return nil, err
		}
		f.Focus(focused)
		return nil, nil
	case "submitText":
		f.Submit()
		return nil, nil
	case "hideKeyboard":
		f.HideKeyboard()
		return nil, nil
	case "getValue":
		return f.Value(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}

func (s *Server) insertName(raw json.RawMessage, prefix string) (any, error) {
	args, err := decode[nameArgs](raw)
	if err != nil {
		return nil, err
	}
	f := s.field
	return f.InsertToken(textfield.TokenInsert{
		Display:   args.Name,
		Payload:   prefix + args.Name,
		Style:     textfield.StyleFromArgs(args.TextStyle, f.Options().TokenStyle),
		Prefix:    prefix,
		Separator: s.tokens.Separator,
	}), nil
}

func rangeOf(args selectionArgs) textfield.Range {
	return textfield.Range{Location: args.SelectionStart, Length: args.SelectionEnd - args.SelectionStart}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, fmt.Errorf("%w: missing", ErrBadArguments)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return v, nil
}
