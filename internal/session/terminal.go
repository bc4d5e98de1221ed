package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"travel-agent/internal/domain"
)

const (
	cmdQuit    = "/quit"
	cmdHistory = "/history"
	prompt     = "You: "
	botPrefix  = "Assistant: "
)

// Run drives s from lines read on in until EOF, /quit or ctx is done.
// /history prints the transcript so far.
func Run(ctx context.Context, s *Session, in io.Reader, out io.Writer) error {
	if turns := s.Turns(); len(turns) > 0 && turns[0].Role == domain.RoleAssistant {
		fmt.Fprintln(out, botPrefix+turns[0].Content)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case cmdQuit:
			return nil
		case cmdHistory:
			printHistory(out, s.Turns())
			continue
		}

		reply, err := s.Submit(ctx, line)
		if errors.Is(err, ErrEmptyInput) {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, botPrefix+reply)
	}
}

func printHistory(out io.Writer, turns []domain.Turn) {
	for i, t := range turns {
		fmt.Fprintf(out, "%3d %-9s %s\n", i+1, t.Role, t.Content)
	}
}
