package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/mark3labs/txcompanion/internal/sdcard"
	"github.com/mark3labs/txcompanion/internal/wizard"
	"github.com/mark3labs/txcompanion/internal/wizard/script"
)

// stringArg returns a trimmed string argument, or "" when absent.
func stringArg(request mcp.CallToolRequest, key string) string {
	args := request.GetArguments()
	if args == nil {
		return ""
	}
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// radioArg returns the requested board, defaulting to the configured one.
func (s *Server) radioArg(request mcp.CallToolRequest) (*radio.Board, error) {
	id := stringArg(request, "radio")
	if id == "" {
		id = s.cfg.Radio
	}
	return radio.Lookup(id)
}

func (s *Server) handleListRadios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var lines []string
	for _, b := range radio.Boards() {
		lines = append(lines, fmt.Sprintf("%s: %s (sd family %s, name %d chars)", b.ID, b.Name, b.Family, b.ModelNameLen))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.radioArg(request)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	models, err := s.store.List(ctx, b.ID)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	if len(models) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No models stored for %s", b.ID)), nil
	}

	lines := make([]string, 0, len(models))
	for _, m := range models {
		category := m.Category
		if category == "" {
			category = "-"
		}
		lines = append(lines, fmt.Sprintf("%s  %-15s  %-12s  slot %d  %s  %d mixes",
			m.ID[:min(8, len(m.ID))], m.Name, category, m.Slot, m.Vehicle.Label(), len(m.Mixes)))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleShowModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := stringArg(request, "model")
	if ref == "" {
		return mcp.NewToolResultText("error: missing 'model' parameter"), nil
	}
	b, err := s.radioArg(request)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	e, err := s.store.Get(ctx, b.ID, ref)
	if errors.Is(err, library.ErrNotFound) {
		return mcp.NewToolResultText(fmt.Sprintf("No model matching %q on %s", ref, b.ID)), nil
	}
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	out, err := library.Export(e.Model)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleRunWizard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := stringArg(request, "answers")
	if doc == "" {
		return mcp.NewToolResultText("error: missing 'answers' parameter"), nil
	}
	save, _ := request.GetArguments()["save"].(bool)

	answers, err := script.Parse([]byte(doc))
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	id := answers.Radio
	if id == "" {
		id = s.cfg.Radio
	}
	b, err := radio.Lookup(id)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	res, err := script.Run(wizard.NewSession(b, s.cfg, answers.Original()), answers)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	cfg := res.Config
	var previous *model.Configuration
	if save {
		if cfg, previous, err = s.store.Upsert(ctx, cfg); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: failed to save model: %v", err)), nil
		}
	}
	out, err := library.Export(cfg)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(res.Summary)
	if len(res.Unused) > 0 {
		fmt.Fprintf(&sb, "\nIgnored answers for pages not visited: %s\n", strings.Join(res.Unused, ", "))
	}
	switch {
	case previous != nil:
		fmt.Fprintf(&sb, "\nRebuilt %s in place\n", cfg.ID)
	case save:
		fmt.Fprintf(&sb, "\nSaved as %s\n", cfg.ID)
	}
	sb.WriteString("\n")
	sb.Write(out)
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSDCardStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := sdcard.TargetFor(s.cfg)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	st, err := s.card.Status(target)
	if errors.Is(err, sdcard.ErrNoSDPath) {
		return mcp.NewToolResultText("No SD card folder configured. Set sd_path with `txcompanion setup`."), nil
	}
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
