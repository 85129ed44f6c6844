// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// bigip-cert-reporter is a command-line tool for reporting expired and
// soon-to-expire SSL certificates on an F5 BIG-IP appliance, cross-referenced
// with the client-ssl profiles and virtual servers using them, and for
// managing certificate, key, and profile objects over the iControl REST API.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/bigip-cert-reporter/cmd/bigip-cert-reporter@latest
//
// # Usage
//
//	bigip-cert-reporter COMMAND [FLAGS]
//
// # Commands
//
//	report           Report expired and soon-to-expire certificates
//	cert upload      Upload a certificate file to the appliance
//	cert install     Upload a certificate and install it as a named object
//	key install      Upload a private key and install it as a named object
//	profile create   Create a client-ssl profile
//	profile update   Update the cert, key, or chain of a client-ssl profile
//	virtuals         List virtual servers
//	pools            List pools
//	nodes            List nodes
//	bash             Run a shell command on the appliance
//
// # Connection flags
//
//	-c, --config     Path to a JSON or YAML config file
//	    --host       Appliance management address
//	-u, --username   iControl REST username
//	-p, --password   iControl REST password
//	-k, --insecure   Skip TLS verification of the management endpoint
//	    --timeout    Per-request timeout in seconds
//
// Connection settings can also come from the BIGIP_HOST, BIGIP_USERNAME,
// BIGIP_PASSWORD, and BIGIP_CONFIG_FILE environment variables.
//
// # Examples
//
// Report certificates expiring within two weeks as JSON:
//
//	bigip-cert-reporter report --host bigip.example.com -u admin -p secret \
//	  -k --expires-in-days 14 --format json
//
// Install a renewed certificate and point its profile at it:
//
//	bigip-cert-reporter cert install site.com-2026 site.com.crt
//	bigip-cert-reporter key install site.com-2026 site.com.key
//	bigip-cert-reporter profile update /Common/site.com-profile \
//	  --cert /Common/site.com-2026 --key /Common/site.com-2026
package main
