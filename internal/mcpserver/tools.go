package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list-radios",
			mcp.WithDescription("List the transmitter boards the wizard can build models for"),
		),
		s.handleListRadios,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-models",
			mcp.WithDescription("List the models stored in the library for a radio"),
			mcp.WithString("radio",
				mcp.Description("Board id, e.g. x9d+ (default: the configured radio)"),
			),
		),
		s.handleListModels,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("show-model",
			mcp.WithDescription("Show one stored model as YAML"),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model id, id prefix (8+ characters) or name"),
			),
			mcp.WithString("radio",
				mcp.Description("Board id (default: the configured radio)"),
			),
		),
		s.handleShowModel,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("run-wizard",
			mcp.WithDescription("Run the model wizard from an answers document and return the channel summary and resulting model"),
			mcp.WithString("answers", mcp.Required(),
				mcp.Description("Answers document in YAML: version, radio, model {name, category, slot} and pages {page: {field: value}}"),
			),
			mcp.WithBoolean("save",
				mcp.Description("Store the resulting model in the library (default: false)"),
			),
		),
		s.handleRunWizard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("sdcard-status",
			mcp.WithDescription("Compare the installed SD card image with the one the configured firmware needs"),
		),
		s.handleSDCardStatus,
	)
}
