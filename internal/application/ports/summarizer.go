package ports

import "context"

type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
