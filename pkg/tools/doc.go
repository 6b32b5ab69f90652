// Package tools exposes calculator operations to external hosts.
//
// Sub-packages:
//   - [github.com/germanamz/abacus/pkg/tools/toolbox]: the Tool type and a ToolBox for registering, listing and calling tools
//   - [github.com/germanamz/abacus/pkg/tools/mcpserver]: serves a ToolBox over stdio with the official MCP Go SDK
package tools
