package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/seaspect/coda-resonance/resonance"
)

// ParseTranscript reads a "Name: text" transcript into attributed turns.
// A line starting with either participant's name and a colon opens a new
// turn; other lines continue the current turn. Text before the first
// speaker tag is ignored.
func ParseTranscript(r io.Reader, human, agent string) ([]resonance.Turn, error) {
	humanPrefix := human + ":"
	agentPrefix := agent + ":"

	var turns []resonance.Turn
	var speaker string
	var body []string

	flush := func() {
		if speaker != "" {
			turns = append(turns, resonance.Turn{
				Speaker: speaker,
				Text:    strings.TrimSpace(strings.Join(body, "\n")),
			})
		}
		body = body[:0]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, humanPrefix):
			flush()
			speaker = human
			body = append(body, strings.TrimSpace(strings.TrimPrefix(trimmed, humanPrefix)))
		case strings.HasPrefix(trimmed, agentPrefix):
			flush()
			speaker = agent
			body = append(body, strings.TrimSpace(strings.TrimPrefix(trimmed, agentPrefix)))
		case speaker != "":
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return turns, nil
}
