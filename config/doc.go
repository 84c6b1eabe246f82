// Package config loads and edits the weburl CLI configuration file.
//
// The file is YAML (default name .weburl.yaml):
//
//	location: https://app.example.com/dashboard
//	defaultScheme: https
//	output: json
//	strict: false
//	metrics: true
//	cache:
//	  maxEntries: 256
//	  ttl: 10m
//
// Load looks for the file named by --config, then WEBURL_CONFIG, then the
// working directory, then the home directory. WEBURL_LOCATION and
// WEBURL_DEBUG override the file. Unknown fields are rejected.
//
// Set edits one dotted key in place and keeps comments; Save rewrites the
// whole file. Both replace the file atomically.
package config
