package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nldoc/foliospec/blob"
	"github.com/nldoc/foliospec/config"
	"github.com/nldoc/foliospec/converter"
)

// Server identity constants.
const (
	serverName    = "foliospec"
	serverVersion = "0.1.0"
)

// MCP tool parameter key constants — shared between schema definitions and
// argument extraction so a typo in one place is caught by the other.
const (
	argBucket    = "bucket"
	argFilename  = "filename"
	argTarget    = "target_file_type"
	argPageCount = "page_count"
)

func main() {
	cfg := config.Load()
	store := blob.NewDir(cfg.BlobDir)
	conv := converter.New(store, cfg)

	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, conv, cfg)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v\n", err)
	}
}

// registerTools binds MCP tool definitions to their handlers. It accepts the
// Pipeline interface so tests can inject a stub.
func registerTools(s *server.MCPServer, conv converter.Pipeline, cfg *config.Config) {
	// convert_document — run the full conversion pipeline for one stored file
	s.AddTool(
		mcp.NewTool("convert_document",
			mcp.WithDescription("Convert a stored PDF or DOCX document to the canonical spec tree "+
				"plus rendered HTML, and optionally TipTap JSON ("+converter.TargetTipTap+") "+
				"or Markdown ("+converter.TargetMarkdown+")."),
			mcp.WithString(argFilename,
				mcp.Required(),
				mcp.Description("Object key of the input document in the files bucket"),
			),
			mcp.WithString(argBucket,
				mcp.Description("Bucket holding the input document (defaults to the files bucket)"),
			),
			mcp.WithString(argTarget,
				mcp.Description("Additional target content type: "+converter.TargetTipTap+" or "+converter.TargetMarkdown),
			),
			mcp.WithNumber(argPageCount,
				mcp.Description("Expected page count, used in the fallback placeholder when extraction fails"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			filename, ok := req.Params.Arguments[argFilename].(string)
			if !ok || filename == "" {
				return mcp.NewToolResultError(argFilename + " is required"), nil
			}
			job := converter.Job{Filename: filename}
			if bucket, ok := req.Params.Arguments[argBucket].(string); ok {
				job.Bucket = bucket
			}
			if target, ok := req.Params.Arguments[argTarget].(string); ok {
				job.TargetFileType = target
			}
			if pages, ok := req.Params.Arguments[argPageCount].(float64); ok {
				job.PageCount = int(pages)
			}

			res, err := conv.Convert(ctx, job)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			out, err := json.Marshal(res)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(out)), nil
		},
	)

	// detect_file_type — sniff a stored file's magic bytes
	s.AddTool(
		mcp.NewTool("detect_file_type",
			mcp.WithDescription("Classify a stored document as pdf, docx or unknown from its magic bytes."),
			mcp.WithString(argFilename,
				mcp.Required(),
				mcp.Description("Object key of the document"),
			),
			mcp.WithString(argBucket,
				mcp.Description("Bucket holding the document (defaults to the files bucket)"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			filename, ok := req.Params.Arguments[argFilename].(string)
			if !ok || filename == "" {
				return mcp.NewToolResultError(argFilename + " is required"), nil
			}
			bucket, _ := req.Params.Arguments[argBucket].(string)
			if bucket == "" {
				bucket = cfg.FilesBucket
			}
			return mcp.NewToolResultText(string(conv.DetectFileType(ctx, bucket, filename))), nil
		},
	)

	// get_conversion_info — describe formats, targets and configuration
	s.AddTool(
		mcp.NewTool("get_conversion_info",
			mcp.WithDescription("Return supported input formats, output targets, and active configuration."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(conversionInfo(cfg)), nil
		},
	)
}

func conversionInfo(cfg *config.Config) string {
	return `# Foliospec Conversion Info

## Input formats (sniffed by magic bytes)
- pdf
- docx

## Output targets
- ` + converter.TargetHTML + ` (always written, together with the canonical spec JSON)
- ` + converter.TargetTipTap + `
- ` + converter.TargetMarkdown + `

## Configuration
- Blob directory: ` + cfg.BlobDir + `
- Files bucket: ` + cfg.FilesBucket + `
- Output bucket: ` + cfg.OutputBucket
}
