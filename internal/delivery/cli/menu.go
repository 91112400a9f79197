package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/user/linkrank/internal/keyword"
	"github.com/user/linkrank/internal/ranking"
	"github.com/user/linkrank/internal/usecase"
)

var ErrUnknownOption = errors.New("option out of range")

const (
	optionExit       = "0"
	optionCrawl      = "1"
	optionKeywords   = "2"
	optionChangeSeed = "3"
	optionShowSeed   = "4"
)

const banner = "========== LINKRANK =========="

// CycleRunner runs a fresh crawl cycle.
type CycleRunner interface {
	Run(ctx context.Context, seed string) (*usecase.Cycle, error)
}

// Searcher ranks a cycle against a keyword.
type Searcher interface {
	Search(ctx context.Context, cycle *usecase.Cycle, kw string) (*usecase.SearchResult, error)
	ResetStore(ctx context.Context) error
	Policy() ranking.Policy
}

// Menu is the interactive loop. Every crawl option runs a new cycle.
type Menu struct {
	runner   CycleRunner
	searcher Searcher
	seed     string
	keywords []string
	in       *bufio.Scanner
	out      io.Writer
	logger   *zap.Logger
}

func NewMenu(runner CycleRunner, searcher Searcher, seed string, keywords []string, in io.Reader, out io.Writer, logger *zap.Logger) *Menu {
	return &Menu{
		runner:   runner,
		searcher: searcher,
		seed:     seed,
		keywords: keywords,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
	}
}

// Seed returns the current seed URL.
func (m *Menu) Seed() string {
	return m.seed
}

// Run loops until the exit option is chosen or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		option, err := m.prompt(">> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		exit, err := m.Handle(ctx, option)
		switch {
		case exit:
			fmt.Fprintln(m.out, "Program finished. See you next time!")
			return nil
		case errors.Is(err, ErrUnknownOption):
			fmt.Fprintf(m.out, "Option %q is out of range: 0 to 4\n", option)
		case errors.Is(err, io.EOF):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			m.logger.Error("menu option failed", zap.String("option", option), zap.Error(err))
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

// Handle runs a single menu option and reports whether the loop should stop.
func (m *Menu) Handle(ctx context.Context, option string) (bool, error) {
	switch strings.TrimSpace(option) {
	case optionExit:
		return true, nil
	case optionCrawl:
		return false, m.crawlWithKeyword(ctx)
	case optionKeywords:
		return false, m.crawlWithFixedKeyword(ctx)
	case optionChangeSeed:
		return false, m.changeSeed(ctx)
	case optionShowSeed:
		fmt.Fprintf(m.out, "===== Current seed URL =====\n%s\n\n", m.seed)
		return false, nil
	default:
		return false, fmt.Errorf("%q: %w", option, ErrUnknownOption)
	}
}

func (m *Menu) crawlWithKeyword(ctx context.Context) error {
	cycle, err := m.runner.Run(ctx, m.seed)
	if err != nil {
		return err
	}
	kw, err := m.prompt("Please type the keyword >> ")
	if err != nil {
		return err
	}
	return m.search(ctx, cycle, keyword.Normalize(kw))
}

func (m *Menu) crawlWithFixedKeyword(ctx context.Context) error {
	cycle, err := m.runner.Run(ctx, m.seed)
	if err != nil {
		return err
	}
	kw, err := m.chooseKeyword()
	if err != nil {
		return err
	}
	return m.search(ctx, cycle, kw)
}

// chooseKeyword asks for a position in the keyword list until a valid one is given.
func (m *Menu) chooseKeyword() (string, error) {
	choices := make([]string, 0, len(m.keywords))
	for i, kw := range m.keywords {
		choices = append(choices, fmt.Sprintf("%d. %s", i+1, kw))
	}

	for {
		fmt.Fprintf(m.out, "======= KEYWORDS =======\n%s\n", strings.Join(choices, " || "))
		answer, err := m.prompt("Pick one of the keywords by number >> ")
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= 1 && n <= len(m.keywords) {
			return m.keywords[n-1], nil
		}
	}
}

func (m *Menu) search(ctx context.Context, cycle *usecase.Cycle, kw string) error {
	res, err := m.searcher.Search(ctx, cycle, kw)
	if err != nil {
		return err
	}

	if kw != "" {
		fmt.Fprintf(m.out, "===== Occurrences of: %s =====\n", strings.ToUpper(kw))
		PrintKeywordTable(m.out, res.Report.Keywords)
		fmt.Fprintln(m.out)
	}
	PrintRankTable(m.out, res.Report.Entries, m.searcher.Policy())
	return nil
}

func (m *Menu) changeSeed(ctx context.Context) error {
	seed, err := m.prompt("Type the new seed URL >> ")
	if err != nil {
		return err
	}
	if err := m.searcher.ResetStore(ctx); err != nil {
		return err
	}
	m.seed = strings.TrimSpace(seed)
	m.logger.Info("seed URL changed", zap.String("seed", m.seed))
	fmt.Fprintln(m.out, "Seed URL changed")
	return nil
}

func (m *Menu) printMenu() {
	fmt.Fprintf(m.out, `
%s
OPTIONS
0 - exit
1 - crawl the seed URL
2 - crawl the seed URL + fixed keywords
3 - change the seed URL
4 - show the current seed URL
`, banner)
}

// prompt prints label and reads one line. io.EOF is returned when input ends.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}
