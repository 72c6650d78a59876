package confirm

import (
	"context"
	"fmt"
)

// Prompt is the question shown before a destructive action.
type Prompt struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	ConfirmLabel string `json:"confirm_label"`
	CancelLabel  string `json:"cancel_label"`
	Count        int    `json:"count"`
}

// DeletePrompt builds the prompt asking to delete count records of noun.
func DeletePrompt(noun string, count int) Prompt {

	message := fmt.Sprintf("Are you sure you want to delete this %s?", noun)
	if count != 1 {
		message = fmt.Sprintf("Are you sure you want to delete %d %s records?", count, noun)
	}

	return Prompt{
		Title:        "Confirm deletion",
		Message:      message,
		ConfirmLabel: "Delete",
		CancelLabel:  "Cancel",
		Count:        count,
	}
}

// Confirmer answers a prompt. Declining is reported as false, never as an error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

type ConfirmerFunc func(ctx context.Context, prompt Prompt) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt Prompt) (bool, error) {
	return f(ctx, prompt)
}

// Always answers every prompt with accepted.
func Always(accepted bool) Confirmer {

	return ConfirmerFunc(func(context.Context, Prompt) (bool, error) {
		return accepted, nil
	})
}
