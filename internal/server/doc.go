// Package server implements an MCP (Model Context Protocol) server exposing
// the document scanner as tools.
//
// # Protocol
//
// The server communicates using JSON-RPC 2.0, one message per line:
//   - Input: JSON-RPC requests (stdin for Run, any reader for Serve)
//   - Output: JSON-RPC responses (stdout for Run, any writer for Serve)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its metadata
//   - document_scan: Detect and rectify the document in a photo
//   - document_order_corners: Label four points as page corners
//   - document_rectify: Rectify a photo from caller-supplied corners
//   - document_ocr: Recognize text in an image
//
// document_scan and document_rectify either save the page to output_path or
// return it inline as base64-encoded PNG. A photo without a usable document
// yields status "not_found" together with diagnostics rather than an error.
//
// # Image Caching
//
// Decoded source images are cached by path for the lifetime of the server,
// so repeated scans of one photo with different settings skip decoding.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(scan.DefaultOptions(), logger)
//	if err := srv.Run(); err != nil {
//	    logger.Error("server stopped", "error", err)
//	}
package server
