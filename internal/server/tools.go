package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var modeProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"gray", "gray-rgb", "color", "raw"},
	"default":     "gray",
	"description": "Post-processing of the rectified page: equalized grayscale (default), grayscale stored as RGB, lightness-equalized color, or the unprocessed warp",
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Where to save the rectified page. The format follows the extension (jpg, png, tif, bmp, gif). When omitted the page is returned as base64-encoded PNG",
}

var pointProperty = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x": map[string]interface{}{"type": "number"},
		"y": map[string]interface{}{"type": "number"},
	},
	"required": []string{"x", "y"},
}

var cornersProperty = map[string]interface{}{
	"type":        "array",
	"items":       pointProperty,
	"minItems":    4,
	"maxItems":    4,
	"description": "The four page corners in any order",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size. The decoded image is cached for subsequent scans.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_scan",
			Description: "Find the paper document in a photo and return it as a flat, upright scan. The two widest four-sided outlines must agree in width; otherwise the status is not_found and diagnostics explain why.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty,
					"output_path": outputPathProperty,
					"mode":        modeProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the scan to this width (requires height)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the scan to this height (requires width)",
					},
					"width_tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Accepted relative width difference between the two widest outlines (default: configured value, 0 = exact)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale of the returned base64 preview",
						"default":     1.0,
					},
					"ocr": map[string]interface{}{
						"type":        "boolean",
						"description": "Also recognize the text of the scanned page",
						"default":     false,
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_order_corners",
			Description: "Label four points as top-left, top-right, bottom-right and bottom-left. Top-left has the smallest x+y, bottom-right the largest, top-right the smallest y-x and bottom-left the largest.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": cornersProperty,
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "document_rectify",
			Description: "Warp the quadrilateral given by four corners onto an upright rectangle. Use this when the page outline is known, for example after adjusting corners returned by document_scan.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty,
					"corners":     cornersProperty,
					"output_path": outputPathProperty,
					"mode":        modeProperty,
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale of the returned base64 preview",
						"default":     1.0,
					},
				},
				"required": []string{"path", "corners"},
			},
		},
		{
			Name:        "document_ocr",
			Description: "Extract text and word bounding boxes from an image, typically a page saved by document_scan. Requires a build with Tesseract support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
