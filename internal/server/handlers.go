package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/geometry"
	"github.com/ironsheep/image-to-scan/internal/imaging"
	"github.com/ironsheep/image-to-scan/internal/ocr"
	"github.com/ironsheep/image-to-scan/internal/scan"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "document_scan").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A scan that finds no document is not an error; its result has status
// "not_found".
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool finished", "tool", params.Name, "elapsed", time.Since(start))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "document_scan":
		return s.handleDocumentScan(args)
	case "document_order_corners":
		return s.handleOrderCorners(args)
	case "document_rectify":
		return s.handleRectify(args)
	case "document_ocr":
		return s.handleOCR(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ScanResult is returned by document_scan and document_rectify.
type ScanResult struct {
	Status scan.Status `json:"status"`

	// Width and Height are the size of the returned or saved page.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Corners *geometry.OrderedCorners `json:"corners,omitempty"`

	// OutputPath is set when the page was saved to disk; Image otherwise.
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`

	Text     *ocr.Result `json:"text,omitempty"`
	OCRError string      `json:"ocr_error,omitempty"`

	Diagnostics *scan.Diagnostics `json:"diagnostics,omitempty"`
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Document Handlers ===

type documentScanArgs struct {
	Path           string   `json:"path"`
	OutputPath     string   `json:"output_path"`
	Mode           string   `json:"mode"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	WidthTolerance *float64 `json:"width_tolerance"`
	Scale          float64  `json:"scale"`
	OCR            bool     `json:"ocr"`
	Language       string   `json:"language"`
}

func (s *Server) handleDocumentScan(args json.RawMessage) (interface{}, error) {
	var a documentScanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := s.opts
	if a.Mode != "" {
		mode, err := scan.ParseMode(a.Mode)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode
	}
	if a.Width != 0 || a.Height != 0 {
		opts.OutputSize = image.Pt(a.Width, a.Height)
	}
	if a.WidthTolerance != nil {
		opts.WidthTolerance = *a.WidthTolerance
	}

	p, err := scan.New(opts)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := p.Scan(img)
	if err != nil {
		return nil, err
	}
	if !out.Found() {
		s.logger.Info("no document found", "path", a.Path, "reason", out.Diagnostics.Reason)
		return &ScanResult{Status: out.Status, Diagnostics: &out.Diagnostics}, nil
	}

	res := &ScanResult{
		Status:      out.Status,
		Corners:     out.Diagnostics.Corners,
		Diagnostics: &out.Diagnostics,
	}
	if err := s.deliver(res, out.Frame.Image, a.OutputPath, a.Scale); err != nil {
		return nil, err
	}
	if a.OCR {
		text, err := ocr.ExtractText(out.Frame.Image, a.Language)
		if err != nil {
			res.OCRError = err.Error()
		} else {
			res.Text = text
		}
	}
	return res, nil
}

type pointArg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func quadFromArgs(pts []pointArg) ([4]geometry.Point, error) {
	var q [4]geometry.Point
	if len(pts) != 4 {
		return q, fmt.Errorf("exactly 4 points are required, got %d", len(pts))
	}
	for i, p := range pts {
		q[i] = geometry.Pt(p.X, p.Y)
	}
	return q, nil
}

type orderCornersArgs struct {
	Points []pointArg `json:"points"`
}

type orderCornersResult struct {
	TopLeft     geometry.Point `json:"top_left"`
	TopRight    geometry.Point `json:"top_right"`
	BottomRight geometry.Point `json:"bottom_right"`
	BottomLeft  geometry.Point `json:"bottom_left"`
}

func (s *Server) handleOrderCorners(args json.RawMessage) (interface{}, error) {
	var a orderCornersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	q, err := quadFromArgs(a.Points)
	if err != nil {
		return nil, err
	}
	c := geometry.OrderCorners(q)
	return &orderCornersResult{
		TopLeft:     c.TL(),
		TopRight:    c.TR(),
		BottomRight: c.BR(),
		BottomLeft:  c.BL(),
	}, nil
}

type rectifyArgs struct {
	Path       string     `json:"path"`
	Corners    []pointArg `json:"corners"`
	OutputPath string     `json:"output_path"`
	Mode       string     `json:"mode"`
	Scale      float64    `json:"scale"`
}

func (s *Server) handleRectify(args json.RawMessage) (interface{}, error) {
	var a rectifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	q, err := quadFromArgs(a.Corners)
	if err != nil {
		return nil, err
	}

	r := s.opts.Rectifier()
	if a.Mode != "" {
		if r.Mode, err = scan.ParseMode(a.Mode); err != nil {
			return nil, err
		}
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	corners := geometry.OrderCorners(q)
	frame, err := r.Rectify(corners, img)
	if errors.Is(err, detection.ErrNotFound) {
		return &ScanResult{
			Status:      scan.StatusNotFound,
			Corners:     &corners,
			Diagnostics: &scan.Diagnostics{Corners: &corners, Reason: err.Error()},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &ScanResult{Status: scan.StatusRectified, Corners: &frame.Corners}
	if err := s.deliver(res, frame.Image, a.OutputPath, a.Scale); err != nil {
		return nil, err
	}
	return res, nil
}

// deliver saves page to outputPath, or embeds it as a PNG preview when no
// path is given.
func (s *Server) deliver(res *ScanResult, page image.Image, outputPath string, scale float64) error {
	b := page.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()

	if outputPath != "" {
		if err := imaging.Save(page, outputPath, imaging.DefaultJPEGQuality); err != nil {
			return err
		}
		s.logger.Info("saved scan", "path", outputPath, "width", res.Width, "height", res.Height)
		res.OutputPath = outputPath
		return nil
	}

	if scale == 0 {
		scale = 1.0
	}
	enc, err := imaging.EncodePNG(page, scale)
	if err != nil {
		return err
	}
	res.Image = enc
	return nil
}

type ocrArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.ExtractText(img, a.Language)
}
