package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/engine"
	gspec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	tspec "github.com/bianca-ap01/ParserLR1/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

// Tester runs test cases against a grammar. Cases run on Workers goroutines, one when
// Workers is not positive; results keep the order of Cases.
type Tester struct {
	Grammar  *gspec.CompiledGrammar
	Cases    []*TestCaseWithMetadata
	MaxSteps int
	Workers  int
}

func (t *Tester) Run() []*TestResult {
	rs := make([]*TestResult, len(t.Cases))
	workers := t.Workers
	if workers <= 0 {
		workers = 1
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				rs[i] = t.runTest(t.Cases[i])
			}
		}()
	}
	for i := range t.Cases {
		next <- i
	}
	close(next)
	wg.Wait()

	return rs
}

func (t *Tester) runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	res, err := engine.Trace(t.Grammar, engine.Input{
		Source:   string(c.TestCase.Source),
		MaxSteps: t.MaxSteps,
	})

	if c.TestCase.Outcome == tspec.OutcomeReject {
		var parseErr *driver.ParseError
		if errors.As(err, &parseErr) {
			return &TestResult{
				TestCasePath: c.FilePath,
			}
		}
		if err != nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the input was accepted but must be rejected"),
		}
	}

	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	if c.TestCase.Outcome == tspec.OutcomeAccept {
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	diffs := tspec.DiffTree(c.TestCase.Output, genTree(res.Tree).Fill())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func genTree(dTree *driver.Node) *tspec.Tree {
	if dTree.Text != "" {
		return tspec.NewTerminalNode(dTree.KindName, dTree.Text)
	}
	var children []*tspec.Tree
	if len(dTree.Children) > 0 {
		children = make([]*tspec.Tree, len(dTree.Children))
		for i, c := range dTree.Children {
			children[i] = genTree(c)
		}
	}
	return tspec.NewNonTerminalTree(dTree.KindName, children...)
}
