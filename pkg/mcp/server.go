package mcp

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"maintbot/internal/config"
	"maintbot/internal/report"
	"maintbot/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// CheckerServer exposes the maintainability checker as MCP tools so
// that agent-based tutors can evaluate submissions directly
type CheckerServer struct {
	server     *mcp.Server
	evaluation *service.EvaluationService
	generator  *report.Generator
	config     *config.Config
	logger     *zap.Logger
	handler    *mcp.StreamableHTTPHandler
}

type EvaluateSubmissionParams struct {
	Language string `json:"language" jsonschema:"the submission language, csharp or java"`
	Source   string `json:"source" jsonschema:"the raw source text of one compilation unit"`
}

type ListCheckersParams struct{}

func NewCheckerServer(evaluation *service.EvaluationService, cfg *config.Config, logger *zap.Logger) *CheckerServer {
	server := &CheckerServer{
		evaluation: evaluation,
		generator:  report.NewGenerator(),
		config:     cfg,
		logger:     logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "MaintainabilityChecker",
		Version: "1.0.0",
	}, nil)

	// Register the evaluateSubmission tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "evaluateSubmission",
		Description: "Evaluate one source submission against the configured maintainability checkers. Returns per-checker pass/fail verdicts with measured values and hints",
	}, server.handleEvaluateSubmission)

	// Register the listCheckers tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "listCheckers",
		Description: "List the configured maintainability checkers and the supported submission languages",
	}, server.handleListCheckers)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *CheckerServer) handleEvaluateSubmission(ctx context.Context, req *mcp.CallToolRequest, args EvaluateSubmissionParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling evaluateSubmission request", zap.String("language", args.Language))

	result, err := s.evaluation.Evaluate(ctx, "", args.Language, []byte(args.Source), nil)
	if err != nil {
		s.logger.Error("Evaluation failed", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Evaluation failed: %v", err)}},
		}, nil, nil
	}

	text, err := s.generator.Generate(result, "text")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Failed to render report: %v", err)}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func (s *CheckerServer) handleListCheckers(ctx context.Context, req *mcp.CallToolRequest, args ListCheckersParams) (*mcp.CallToolResult, any, error) {
	var sb strings.Builder

	sb.WriteString("Supported languages: ")
	sb.WriteString(strings.Join(s.evaluation.Languages(), ", "))
	sb.WriteString("\n\nConfigured checkers:\n")

	for _, cfg := range s.evaluation.Checkers() {
		switch cfg.Kind {
		case "metric":
			sb.WriteString(fmt.Sprintf("- %s: %s on %s, range [%g, %g]\n",
				cfg.ID, cfg.MetricName, cfg.SnippetID, cfg.Low, cfg.High))
		default:
			sb.WriteString(fmt.Sprintf("- %s: %s words {%s} on %s\n",
				cfg.ID, cfg.Kind, strings.Join(cfg.Words, ", "), cfg.SnippetID))
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: sb.String()}},
	}, nil, nil
}

// Serve starts the MCP listener on its own port
func (s *CheckerServer) Serve() {
	go func() {
		address := s.config.Mcp.GetAddress()
		log.Printf("MCP Server going to listen on %s", address)
		if err := http.ListenAndServe(address, s.handler); err != nil {
			log.Fatalf("MCP Server failed: %v", err)
		}
	}()
}
