// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the BIG-IP expiring-certificate report over the
// [MCP] stdio transport, so assistants can query an appliance for expired or
// soon-to-expire certificates, list virtual servers, and run shell commands.
// Connection settings come from the same BIGIP_* environment variables and
// config files as the CLI.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
