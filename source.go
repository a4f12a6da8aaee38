package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"voxkey/log"
)

// lineSource delivers one utterance per non-blank input line until r is
// exhausted or ctx is done. It stands in for a speech recognizer that
// writes its results line by line.
func lineSource(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Errorf("input: %v", err)
		}
	}()
	return out
}
