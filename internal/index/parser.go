package index

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"maintbot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"
)

// languageParser wraps a tree-sitter parser and the language-specific
// extraction walk that turns a syntax tree into class models.
type languageParser struct {
	name    string
	parser  *tree_sitter.Parser
	extract func(root *tree_sitter.Node, source []byte) []*model.ClassModel
	mu      sync.Mutex // Protects parser (tree-sitter parsers are not thread-safe)
}

// Indexer builds SourceUnit models from raw submission text.
// Parsing is wrapped in a bounded timeout to guard against pathological
// inputs; a timeout surfaces as a ParseError, not a retryable condition.
type Indexer struct {
	parsers map[string]*languageParser
	timeout time.Duration
	logger  *zap.Logger
}

// NewIndexer creates an indexer with all supported language parsers
func NewIndexer(timeout time.Duration, logger *zap.Logger) (*Indexer, error) {
	csharp, err := newCSharpParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create C# parser: %w", err)
	}

	java, err := newJavaParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Java parser: %w", err)
	}

	return &Indexer{
		parsers: map[string]*languageParser{
			csharp.name: csharp,
			java.name:   java,
		},
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Languages returns the names of the supported submission languages
func (ix *Indexer) Languages() []string {
	names := make([]string, 0, len(ix.parsers))
	for name := range ix.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build parses one submission into its structural model.
// The returned SourceUnit is an immutable snapshot; all checker
// evaluations for the submission share it read-only.
func (ix *Indexer) Build(ctx context.Context, language string, source []byte) (*model.SourceUnit, error) {
	lp, ok := ix.parsers[language]
	if !ok {
		return nil, &ParseError{Language: language, Reason: "unsupported language"}
	}

	ctx, cancel := context.WithTimeout(ctx, ix.timeout)
	defer cancel()

	type buildResult struct {
		unit *model.SourceUnit
		err  error
	}

	resultChan := make(chan buildResult, 1)
	go func() {
		unit, err := ix.buildUnit(lp, source)
		resultChan <- buildResult{unit: unit, err: err}
	}()

	select {
	case result := <-resultChan:
		if result.err != nil {
			return nil, result.err
		}
		ix.logger.Debug("Indexed submission",
			zap.String("language", language),
			zap.Int("classes", len(result.unit.Classes)))
		return result.unit, nil
	case <-ctx.Done():
		ix.logger.Warn("Indexing timed out",
			zap.String("language", language),
			zap.Duration("timeout", ix.timeout))
		return nil, &ParseError{Language: language, Reason: "indexing timed out"}
	}
}

func (ix *Indexer) buildUnit(lp *languageParser, source []byte) (*model.SourceUnit, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	tree := lp.parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Language: lp.name, Reason: "parser returned no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Language: lp.name, Reason: "syntax error in submission"}
	}

	classes := lp.extract(root, source)
	if len(classes) == 0 {
		return nil, &ParseError{Language: lp.name, Reason: "no class declarations found"}
	}

	return &model.SourceUnit{
		Language: lp.name,
		Classes:  classes,
	}, nil
}

// walkNodes walks a subtree and invokes visit on every node
func walkNodes(node *tree_sitter.Node, visit func(n *tree_sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		walkNodes(node.Child(i), visit)
	}
}
