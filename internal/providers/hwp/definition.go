package hwp

import "github.com/GriffinCanCode/litepro/internal/shared/types"

// ServiceID prefixes every tool ID of this provider
const ServiceID = "hwp"

func tool(name, title, desc string, params ...types.Parameter) types.Tool {
	return types.Tool{
		ID:          ServiceID + "." + name,
		Name:        title,
		Description: desc,
		Parameters:  params,
		Returns:     "object",
	}
}

func param(name, typ, desc string, required bool) types.Parameter {
	return types.Parameter{Name: name, Type: typ, Description: desc, Required: required}
}

var equationParams = []types.Parameter{
	param("font_size", "number", "Equation font size in points", false),
	param("font_name", "string", "Equation font", false),
	param("treat_as_char", "boolean", "Flow the equation inline with text", false),
	param("ensure_newline", "boolean", "Break the paragraph before the equation", false),
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          ServiceID,
		Name:        "HWP Document Automation",
		Description: "Type formatted content into the running word processor",
		Category:    types.CategoryDocument,
		Capabilities: []string{
			"text",
			"equations",
			"tables",
			"boxes",
			"templates",
			"images",
			"placeholders",
			"formatting",
		},
		Tools: []types.Tool{
			tool("connect", "Connect", "Attach to the running word processor"),
			tool("activate_window", "Activate Window", "Make the document whose title contains target active",
				param("target", "string", "Title substring; empty selects the foreground document", false)),
			tool("state", "State", "Report the session and typing context"),

			tool("insert_text", "Insert Text", "Type text at the cursor",
				param("text", "string", "Text to type; newlines break paragraphs", true)),
			tool("insert_enter", "Insert Enter", "Break the paragraph"),
			tool("insert_space", "Insert Space", "Type one space"),
			tool("insert_paragraph", "Insert Paragraph", "Break the paragraph twice"),

			tool("insert_equation", "Insert Equation", "Insert an equation from script markup",
				append([]types.Parameter{param("markup", "string", "Equation script", true)}, equationParams...)...),
			tool("insert_latex_equation", "Insert LaTeX Equation", "Translate LaTeX and insert it as an equation",
				append([]types.Parameter{param("latex", "string", "LaTeX source", true)}, equationParams...)...),

			tool("align_right_next_line", "Align Right Next Line", "Right-align the next line"),
			tool("align_justify_next_line", "Justify Next Line", "Justify the next line"),

			tool("set_bold", "Set Bold", "Turn bold on or off",
				param("enabled", "boolean", "Bold state", true)),
			tool("set_underline", "Set Underline", "Turn underline on or off, or toggle it",
				param("enabled", "boolean", "Underline state; omitted toggles", false)),
			tool("set_char_width_ratio", "Set Character Width", "Set the character width ratio",
				param("percent", "integer", "Width ratio in percent", true)),
			tool("set_font_size", "Set Font Size", "Set the font size",
				param("size", "number", "Size in points", true)),
			tool("set_font_name", "Set Font", "Set the font face",
				param("name", "string", "Font name", true)),
			tool("set_table_border_white", "White Table Border", "Hide the borders of the current cell"),

			tool("insert_box", "Insert Box", "Insert a bordered box and move into it"),
			tool("insert_view_box", "Insert View Box", "Insert a box headed by the view heading and move into it"),
			tool("exit_box", "Exit Box", "Leave the current box"),
			tool("insert_table", "Insert Table", "Insert a table and fill its cells",
				param("rows", "integer", "Row count", true),
				param("cols", "integer", "Column count", true),
				param("cells", "array", "Row-major grid, or a flat list chunked by cols", false),
				param("align_center", "boolean", "Center cell contents", false),
				param("exit", "boolean", "Leave the table afterwards (default true)", false)),
			tool("exit_table", "Exit Table", "Leave the current table"),

			tool("insert_template", "Insert Template", "Insert a template document at the cursor",
				param("name", "string", "Template file name relative to the template directory", true)),
			tool("list_templates", "List Templates", "List available templates"),

			tool("set_source_image", "Set Source Image", "Select the image used for cropping",
				param("path", "string", "Image file", true)),
			tool("insert_cropped_image", "Insert Cropped Image", "Crop the source image and insert it",
				param("x1", "number", "Left edge, 0 to 1", true),
				param("y1", "number", "Top edge, 0 to 1", true),
				param("x2", "number", "Right edge, 0 to 1", true),
				param("y2", "number", "Bottom edge, 0 to 1", true)),
			tool("insert_image", "Insert Image", "Scale an image and insert it",
				param("path", "string", "Image file", true)),

			tool("focus_placeholder", "Focus Placeholder", "Move the cursor to a placeholder marker",
				param("marker", "string", "Marker text such as ###, @@@ or &&&", true)),
			tool("cleanup_placeholders", "Cleanup Placeholders", "Delete known placeholder markers",
				param("near_cursor", "boolean", "Only delete markers near the cursor", false)),
		},
	}
}
