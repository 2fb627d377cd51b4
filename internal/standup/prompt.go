package standup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Answers are the two sections of a note.
type Answers struct {
	Yesterday string
	Today     string
}

// Prompt asks both questions on w and reads multi-line answers from r. An
// answer ends at an empty line or end of input.
func Prompt(r io.Reader, w io.Writer) (Answers, error) {
	reader := bufio.NewReader(r)

	yesterday, err := ask(reader, w, "What did you do yesterday?")
	if err != nil {
		return Answers{}, err
	}
	today, err := ask(reader, w, "What are you planning to do today?")
	if err != nil {
		return Answers{}, err
	}
	return Answers{Yesterday: yesterday, Today: today}, nil
}

func ask(reader *bufio.Reader, w io.Writer, question string) (string, error) {
	fmt.Fprintf(w, "\n%s (finish with an empty line)\n", question)

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err == io.EOF {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}
