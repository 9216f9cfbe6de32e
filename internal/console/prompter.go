package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInputClosed is returned once the input stream is exhausted.
var ErrInputClosed = errors.New("console input closed")

var amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Prompter reads one answer per line and re-asks until the answer is valid.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Line prints prompt and returns the next trimmed input line.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("reading console input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// Ask repeats prompt until parse accepts the answer. A rejected answer
// prints the message returned by parse.
func Ask[T any](p *Prompter, prompt string, parse func(string) (T, string)) (T, error) {
	for {
		answer, err := p.Line(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, complaint := parse(answer)
		if complaint == "" {
			return v, nil
		}
		p.Println(complaint)
	}
}

// MaxRecords asks for the record ceiling used to build the registry.
func (p *Prompter) MaxRecords() (int, error) {
	return Ask(p, "Enter maximum number of loan records: ", func(s string) (int, string) {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return 0, "Invalid input. Please enter a positive number."
		}
		return n, ""
	})
}

func parseAmount(s string) (float64, string) {
	if !amountPattern.MatchString(s) {
		return 0, "Invalid input. Please enter a number."
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "Invalid input. Please enter a number."
	}
	return v, ""
}

// parseFinite rejects the spellings strconv accepts but the registry cannot
// hold: NaN, Inf and values beyond float64 range.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parsePositiveFloat(what string) func(string) (float64, string) {
	return func(s string) (float64, string) {
		v, ok := parseFinite(s)
		if !ok {
			return 0, "Invalid input. Please enter a numeric value."
		}
		if v <= 0 {
			return 0, fmt.Sprintf("%s must be positive. Please enter a valid value.", what)
		}
		return v, ""
	}
}

func parsePositiveInt(what string) func(string) (int, string) {
	return func(s string) (int, string) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, "Invalid input. Please enter a numeric value."
		}
		if v <= 0 {
			return 0, fmt.Sprintf("%s must be positive. Please enter a valid value.", what)
		}
		return v, ""
	}
}

func parseOverpayment(s string) (float64, string) {
	v, ok := parseFinite(s)
	if !ok {
		return 0, "Invalid input. Please enter a numeric value."
	}
	if v < 0 {
		return 0, "Overpayment cannot be negative. Please enter a valid amount."
	}
	return v, ""
}
