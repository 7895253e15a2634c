package console

import (
	"fmt"
	"strconv"
	"strings"
)

// Prompt helpers return (value, ok). ok=false signals cancellation (a blank
// line or closed input), which never travels through the value itself.

func (s *Shell) readLine(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return "", false
	}
	line := strings.TrimSpace(s.in.Text())
	if line == "" {
		return "", false
	}
	return line, true
}

// promptChoice reads a menu selection in [1, max], re-prompting on anything
// else.
func (s *Shell) promptChoice(label string, max int) (int, bool) {
	for {
		raw, ok := s.readLine(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > max {
			fmt.Fprintf(s.out, "Please enter a number between 1 and %d.\n", max)
			continue
		}
		return n, true
	}
}

func (s *Shell) promptString(label string) (string, bool) {
	return s.readLine(label + " (blank to cancel)")
}

func (s *Shell) promptFloat(label string) (float64, bool) {
	for {
		raw, ok := s.promptString(label)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid number, try again.")
			continue
		}
		return v, true
	}
}

func (s *Shell) promptInt64(label string) (int64, bool) {
	for {
		raw, ok := s.promptString(label)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid id, try again.")
			continue
		}
		return v, true
	}
}

// confirm asks a yes/no question; anything but y/yes is no.
func (s *Shell) confirm(label string) bool {
	raw, ok := s.readLine(label + " [y/N]")
	if !ok {
		return false
	}
	switch strings.ToLower(raw) {
	case "y", "yes":
		return true
	}
	return false
}
