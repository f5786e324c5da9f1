package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/zhouzirui/ollama-chat/backend/internal/model/chat"
)

// Generator turns one prompt into one completion.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// Command is one discrete user action against a Store.
type Command interface {
	command()
}

// NewSession starts a fresh conversation and focuses it.
type NewSession struct{}

// SelectSession focuses an existing conversation.
type SelectSession struct {
	Label string
}

// SubmitText sends typed text to the model.
type SubmitText struct {
	Text string
}

// SubmitFile sends the content of an uploaded csv or log file to the model.
// Only the file name is shown in the conversation.
type SubmitFile struct {
	Name    string
	Content []byte
}

func (NewSession) command()    {}
func (SelectSession) command() {}
func (SubmitText) command()    {}
func (SubmitFile) command()    {}

// Submission picks the command for a form that may carry text, a file or
// both. An attached file takes precedence and the text is dropped.
func Submission(text string, file *SubmitFile) Command {
	if file != nil {
		return *file
	}
	return SubmitText{Text: text}
}

// Result describes the session a command acted on.
type Result struct {
	Label string      `json:"label"`
	Turns []chat.Turn `json:"turns"`
}

// Dispatcher applies commands to a Store, calling the model for every
// user-originated turn.
type Dispatcher struct {
	generator Generator
}

// NewDispatcher wires a dispatcher to the given generator.
func NewDispatcher(generator Generator) *Dispatcher {
	return &Dispatcher{generator: generator}
}

// Dispatch executes cmd against store. When the model call fails the user
// turn stays recorded and no agent turn is added.
func (d *Dispatcher) Dispatch(ctx context.Context, store *Store, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case NewSession:
		session := store.CreateSession(ctx)
		log.Printf("[chat] created %s", session.Label)
		return d.result(ctx, store, session.Label)

	case SelectSession:
		if err := store.SelectSession(ctx, c.Label); err != nil {
			return Result{}, err
		}
		return d.result(ctx, store, c.Label)

	case SubmitText:
		label, ok := store.Active(ctx)
		if !ok {
			return Result{}, ErrNoActiveSession
		}
		if c.Text == "" {
			return Result{}, ErrEmptyInput
		}
		if err := store.AppendUserTurn(ctx, label, c.Text); err != nil {
			return Result{}, err
		}
		if err := d.reply(ctx, store, label, c.Text); err != nil {
			return Result{}, err
		}
		return d.result(ctx, store, label)

	case SubmitFile:
		label, ok := store.Active(ctx)
		if !ok {
			return Result{}, ErrNoActiveSession
		}
		content, err := decodeUpload(c.Name, c.Content)
		if err != nil {
			return Result{}, err
		}
		if err := store.AppendUserTurn(ctx, label, FileLabel(c.Name)); err != nil {
			return Result{}, err
		}
		if content != "" {
			if err := d.reply(ctx, store, label, content); err != nil {
				return Result{}, err
			}
		}
		return d.result(ctx, store, label)

	default:
		return Result{}, fmt.Errorf("unknown command %T", cmd)
	}
}

func (d *Dispatcher) reply(ctx context.Context, store *Store, label, input string) error {
	response, err := d.generator.Generate(ctx, input)
	if err != nil {
		return fmt.Errorf("generate reply for %s: %w", label, err)
	}

	log.Printf("[chat] reply for %s, length=%d", label, len(response))
	return store.AppendAgentTurn(ctx, label, response)
}

func (d *Dispatcher) result(ctx context.Context, store *Store, label string) (Result, error) {
	turns, err := store.GetTurns(ctx, label)
	if err != nil {
		return Result{}, err
	}
	return Result{Label: label, Turns: turns}, nil
}
